package ports

import (
	"context"
	"time"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// CreditUsage is the provider's quota snapshot.
type CreditUsage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// ProviderReport is the refreshed profile data returned by the external
// social-data provider for a single influencer handle.
type ProviderReport struct {
	Followers      int64     `json:"followers"`
	EngagementRate float64   `json:"engagement_rate"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// ProviderClient is the credit-metered external social-data API. Every
// FetchProfileReport call consumes one credit.
type ProviderClient interface {
	CreditUsage(ctx context.Context) (*CreditUsage, error)
	FetchProfileReport(ctx context.Context, handle string) (*ProviderReport, error)
}

// SyncResult aggregates the outcome of a single sync run.
type SyncResult struct {
	Successful  int                 `json:"successful"`
	Failed      int                 `json:"failed"`
	CreditsUsed int                 `json:"credits_used"`
	ByTier      map[domain.Tier]int `json:"by_tier"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	NextRun     time.Time           `json:"next_run"`
}

// SyncStatus is a read-only snapshot of the sync job.
type SyncStatus struct {
	IsRunning     bool                  `json:"is_running"`
	LastRun       *time.Time            `json:"last_run,omitempty"`
	NextRun       time.Time             `json:"next_run"`
	CreditUsage   *CreditUsage          `json:"credit_usage"`
	PendingByTier map[domain.Tier]int64 `json:"pending_updates_by_tier"`
}

// SyncService drives tiered refreshes of roster records against the provider.
type SyncService interface {
	// RunSync refreshes eligible records until maxCredits is exhausted.
	// Returns domain.ErrSyncAlreadyRunning when a run is in flight and
	// domain.ErrProviderUnavailable when the credit balance cannot be read.
	RunSync(ctx context.Context, maxCredits int) (*SyncResult, error)

	// JobStatus reports the current job state; pending counts are recomputed
	// on every call.
	JobStatus(ctx context.Context) (*SyncStatus, error)

	// UpdateSpecific is the manual override path: it bypasses the eligibility
	// filter and treats every given id as refreshed.
	UpdateSpecific(ctx context.Context, ids []string) (*SyncResult, error)
}
