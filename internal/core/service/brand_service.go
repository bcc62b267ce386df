package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type BrandService struct {
	repo   ports.BrandRepository
	logger zerolog.Logger
}

func NewBrandService(repo ports.BrandRepository, logger zerolog.Logger) *BrandService {
	return &BrandService{repo: repo, logger: logger}
}

func (s *BrandService) Create(ctx context.Context, input ports.CreateBrandInput) (*domain.Brand, error) {
	now := time.Now().UTC()
	brand := &domain.Brand{
		UserID:      input.UserID,
		CompanyName: input.CompanyName,
		Industry:    input.Industry,
		WebsiteURL:  input.WebsiteURL,
		LogoURL:     input.LogoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, brand)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create brand")
		return nil, err
	}

	s.logger.Info().Str("brand_id", created.ID).Str("company_name", created.CompanyName).Msg("brand created")
	return created, nil
}

func (s *BrandService) Get(ctx context.Context, id string) (*domain.Brand, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BrandService) List(ctx context.Context, filter ports.BrandFilter) (*ports.ListBrandsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListBrandsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *BrandService) Update(ctx context.Context, id string, upd ports.BrandUpdate) (*domain.Brand, error) {
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("brand_id", id).Msg("brand updated")
	return updated, nil
}

// normalizePage clamps pagination inputs to sane values.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
