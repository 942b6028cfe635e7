package service

import (
	"context"
	"errors"
	"testing"

	"spotfolio/internal/model"
	placesmocks "spotfolio/internal/places/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_spotService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("passes results through untouched", func(t *testing.T) {
		searcher := new(placesmocks.Searcher)
		want := []model.Spot{
			{SpotID: "place-1", Name: "Blue Bottle", Address: "Tokyo", Rating: 4.5},
		}
		searcher.On("TextSearch", ctx, "coffee tokyo").Return(want, nil).Once()

		spotService := NewSpotService(searcher)
		got, err := spotService.Search(ctx, "coffee tokyo")

		require.NoError(t, err)
		assert.Equal(t, want, got)
		searcher.AssertExpectations(t)
	})

	t.Run("empty query is forwarded, not rejected", func(t *testing.T) {
		searcher := new(placesmocks.Searcher)
		searcher.On("TextSearch", ctx, "").Return([]model.Spot{}, nil).Once()

		spotService := NewSpotService(searcher)
		got, err := spotService.Search(ctx, "")

		require.NoError(t, err)
		assert.Empty(t, got)
		searcher.AssertExpectations(t)
	})

	t.Run("upstream failure becomes a generic server error", func(t *testing.T) {
		searcher := new(placesmocks.Searcher)
		searcher.On("TextSearch", ctx, "coffee").
			Return(nil, errors.New("REQUEST_DENIED: key invalid")).Once()

		spotService := NewSpotService(searcher)
		got, err := spotService.Search(ctx, "coffee")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		// Upstream detail must not reach the caller-facing message.
		assert.Equal(t, "Failed to search places.", appErr.Detail.Message)
		assert.NotContains(t, appErr.Detail.Message, "REQUEST_DENIED")
	})
}
