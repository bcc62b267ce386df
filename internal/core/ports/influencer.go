package ports

import (
	"context"
	"time"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// InfluencerFilter carries all query parameters for listing roster records.
type InfluencerFilter struct {
	Search string // optional: partial match on display_name or handle
	Tier   string // optional: exact tier match
	Page   int    // 1-based
	Limit  int    // rows per page (capped at 100 by the service)
}

// InfluencerRepository defines persistence operations for roster records.
type InfluencerRepository interface {
	Create(ctx context.Context, i *domain.Influencer) (*domain.Influencer, error)
	FindByID(ctx context.Context, id string) (*domain.Influencer, error)
	List(ctx context.Context, filter InfluencerFilter) ([]*domain.Influencer, int64, error)

	// ListDueForRefresh returns up to limit records eligible for an external
	// refresh at now (auto-update on, active, staleness over the tier
	// threshold or never updated), ordered by tier rank ascending, last
	// updated ascending with never-updated first, update priority descending,
	// then active campaign count descending.
	ListDueForRefresh(ctx context.Context, now time.Time, limit int) ([]*domain.Influencer, error)

	// CountDueByTier returns the number of refresh-eligible records per tier
	// at now. Computed fresh on every call.
	CountDueByTier(ctx context.Context, now time.Time) (map[domain.Tier]int64, error)

	// MarkRefreshed stores the provider report on the record and stamps
	// last_updated with at.
	MarkRefreshed(ctx context.Context, id string, report *ProviderReport, at time.Time) error
}

// ListInfluencersResult is returned by the roster list use case.
type ListInfluencersResult struct {
	Items      []*domain.Influencer
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// InfluencerService defines use-case operations for the roster.
type InfluencerService interface {
	Get(ctx context.Context, id string) (*domain.Influencer, error)
	List(ctx context.Context, filter InfluencerFilter) (*ListInfluencersResult, error)
}
