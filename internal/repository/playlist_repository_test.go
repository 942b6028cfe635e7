package repository

import (
	"context"
	"testing"
	"time"

	"spotfolio/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPlaylistRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &model.Playlist{})
	repo := NewGormPlaylistRepository()

	older := &model.Playlist{
		PlaylistID: uuid.New(),
		UserID:     "identity-1",
		Name:       "Old favourites",
		CreatedAt:  time.Now().Add(-2 * time.Hour),
	}
	newer := &model.Playlist{
		PlaylistID: uuid.New(),
		UserID:     "identity-1",
		Name:       "Tokyo cafes",
		CreatedAt:  time.Now().Add(-time.Hour),
	}
	other := &model.Playlist{
		PlaylistID: uuid.New(),
		UserID:     "identity-2",
		Name:       "Someone else's",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.Create([]*model.Playlist{older, newer, other}).Error)

	playlists, err := repo.ListByUserID(ctx, db, "identity-1")
	require.NoError(t, err)
	require.Len(t, playlists, 2)
	assert.Equal(t, "Tokyo cafes", playlists[0].Name)
	assert.Equal(t, "Old favourites", playlists[1].Name)

	empty, err := repo.ListByUserID(ctx, db, "identity-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
