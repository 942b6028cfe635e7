package service

import (
	"context"

	"spotfolio/internal/middleware"
	"spotfolio/internal/model"
	"spotfolio/internal/places"
)

//go:generate mockery --name SpotService --output ./mocks --outpkg mocks --case=underscore
type SpotService interface {
	// Search forwards the query upstream and returns the reshaped results.
	Search(ctx context.Context, query string) ([]model.Spot, error)
}

type spotService struct {
	searcher places.Searcher
}

func NewSpotService(searcher places.Searcher) SpotService {
	return &spotService{searcher: searcher}
}

func (s *spotService) Search(ctx context.Context, query string) ([]model.Spot, error) {
	logger := middleware.GetLogger(ctx)

	spots, err := s.searcher.TextSearch(ctx, query)
	if err != nil {
		// Upstream detail stays in the log; the client sees a generic failure.
		logger.Error("Spot search failed upstream", "error", err)
		return nil, model.NewAppError("SPOT_SEARCH_FAILED", "Failed to search places.", "", model.ErrInternalServer)
	}
	return spots, nil
}
