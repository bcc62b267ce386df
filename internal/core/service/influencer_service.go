package service

import (
	"context"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

type InfluencerService struct {
	repo ports.InfluencerRepository
}

func NewInfluencerService(repo ports.InfluencerRepository) *InfluencerService {
	return &InfluencerService{repo: repo}
}

func (s *InfluencerService) Get(ctx context.Context, id string) (*domain.Influencer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InfluencerService) List(ctx context.Context, filter ports.InfluencerFilter) (*ports.ListInfluencersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListInfluencersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
