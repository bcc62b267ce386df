package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
	"github.com/creatorbase/influencer-api/internal/pkg/metrics"
)

// SyncConfig carries the prioritizer's tuning knobs. Defaults mirror the
// provider's rate limits: batches of 10 with 500ms between records, scheduled
// daily at 02:00 UTC.
type SyncConfig struct {
	BatchSize   int
	RecordDelay time.Duration
	RunHourUTC  int
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.RecordDelay <= 0 {
		c.RecordDelay = 500 * time.Millisecond
	}
	// hour 0 (midnight) is a valid schedule; only reject out-of-range values
	if c.RunHourUTC < 0 || c.RunHourUTC > 23 {
		c.RunHourUTC = 2
	}
	return c
}

// SyncService refreshes stale roster records from the external provider,
// GOLD tier first. A single run may be in flight per process; job state is
// in-memory only and lost on restart.
type SyncService struct {
	influencers ports.InfluencerRepository
	provider    ports.ProviderClient
	cfg         SyncConfig
	log         zerolog.Logger

	mu      sync.Mutex
	running bool
	lastRun time.Time // zero until the first completed run

	// overridable in tests; defaults to time.Sleep / time.Now
	sleep func(time.Duration)
	now   func() time.Time
}

func NewSyncService(influencers ports.InfluencerRepository, provider ports.ProviderClient, cfg SyncConfig, log zerolog.Logger) *SyncService {
	return &SyncService{
		influencers: influencers,
		provider:    provider,
		cfg:         cfg.withDefaults(),
		log:         log,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// RunSync selects eligible records by tier and staleness and refreshes them
// sequentially until maxCredits is exhausted. Per-record provider failures
// are counted and skipped; a failed credit-balance check aborts the run with
// domain.ErrProviderUnavailable.
func (s *SyncService) RunSync(ctx context.Context, maxCredits int) (result *ports.SyncResult, err error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	// lastRun is stamped at completion, as the final step of the run; an
	// aborted run releases the guard but leaves lastRun untouched.
	defer func() { s.finish(err == nil) }()

	started := s.now().UTC()

	// run id correlates the log lines of one run across its lifetime
	log := s.log.With().Str("run_id", uuid.NewString()).Logger()

	usage, err := s.provider.CreditUsage(ctx)
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("provider_error").Inc()
		return nil, fmt.Errorf("%w: credit balance check: %v", domain.ErrProviderUnavailable, err)
	}

	budget := maxCredits
	if usage.Remaining < budget {
		budget = usage.Remaining
	}
	if budget < 0 {
		budget = 0
	}

	result = &ports.SyncResult{
		ByTier:    make(map[domain.Tier]int),
		StartedAt: started,
	}

	if budget > 0 {
		records, listErr := s.influencers.ListDueForRefresh(ctx, started, budget)
		if listErr != nil {
			metrics.SyncRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("select due records: %w", listErr)
		}
		log.Info().Int("eligible", len(records)).Int("budget", budget).Msg("sync run started")
		s.processBatches(ctx, log, records, budget, result)
	}

	result.FinishedAt = s.now().UTC()
	result.NextRun = s.nextRunAfter(result.FinishedAt)

	metrics.SyncRunsTotal.WithLabelValues("completed").Inc()
	metrics.SyncRunDuration.Observe(result.FinishedAt.Sub(result.StartedAt).Seconds())
	log.Info().
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("credits_used", result.CreditsUsed).
		Msg("sync run finished")

	return result, nil
}

// processBatches walks records in fixed-size batches, strictly sequentially,
// sleeping between records to respect provider rate limits. It stops all
// remaining work once the credit budget is spent.
func (s *SyncService) processBatches(ctx context.Context, log zerolog.Logger, records []*domain.Influencer, budget int, result *ports.SyncResult) {
	for start := 0; start < len(records); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(records) {
			end = len(records)
		}

		for _, rec := range records[start:end] {
			if result.CreditsUsed >= budget {
				return
			}

			if err := s.refreshOne(ctx, rec); err != nil {
				result.Failed++
				metrics.SyncRecordFailuresTotal.Inc()
				log.Warn().Err(err).Str("influencer_id", rec.ID).Str("handle", rec.Handle).Msg("record refresh failed")
			} else {
				result.Successful++
				result.CreditsUsed++
				result.ByTier[rec.Tier]++
				metrics.SyncRecordsRefreshedTotal.WithLabelValues(string(rec.Tier)).Inc()
				metrics.SyncCreditsUsedTotal.Inc()
			}

			s.sleep(s.cfg.RecordDelay)
		}
	}
}

func (s *SyncService) refreshOne(ctx context.Context, rec *domain.Influencer) error {
	report, err := s.provider.FetchProfileReport(ctx, rec.Handle)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	if err := s.influencers.MarkRefreshed(ctx, rec.ID, report, s.now().UTC()); err != nil {
		return fmt.Errorf("persist report: %w", err)
	}
	return nil
}

// JobStatus returns a snapshot of the job plus the provider's credit balance
// and the refresh backlog per tier. Nothing is cached.
func (s *SyncService) JobStatus(ctx context.Context) (*ports.SyncStatus, error) {
	s.mu.Lock()
	status := &ports.SyncStatus{IsRunning: s.running}
	if !s.lastRun.IsZero() {
		last := s.lastRun
		status.LastRun = &last
	}
	s.mu.Unlock()

	status.NextRun = s.nextRunAfter(s.now().UTC())

	usage, err := s.provider.CreditUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: credit balance check: %v", domain.ErrProviderUnavailable, err)
	}
	status.CreditUsage = usage

	pending, err := s.influencers.CountDueByTier(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count pending updates: %w", err)
	}
	status.PendingByTier = pending

	return status, nil
}

// UpdateSpecific bypasses the eligibility filter entirely: every resolvable
// id is counted as refreshed. No provider calls are made on this path; it
// exists as a manual override for operators.
func (s *SyncService) UpdateSpecific(ctx context.Context, ids []string) (*ports.SyncResult, error) {
	started := s.now().UTC()
	result := &ports.SyncResult{
		ByTier:    make(map[domain.Tier]int),
		StartedAt: started,
	}

	for _, id := range ids {
		rec, err := s.influencers.FindByID(ctx, id)
		if err != nil {
			result.Failed++
			s.log.Warn().Err(err).Str("influencer_id", id).Msg("manual update skipped unknown id")
			continue
		}
		result.Successful++
		result.CreditsUsed++
		result.ByTier[rec.Tier]++
	}

	result.FinishedAt = s.now().UTC()
	result.NextRun = s.nextRunAfter(result.FinishedAt)
	return result, nil
}

// begin flips the running guard, failing fast when a run is already in flight.
func (s *SyncService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.ErrSyncAlreadyRunning
	}
	s.running = true
	return nil
}

// finish releases the running guard. Completed runs record their completion
// time as lastRun; aborted runs do not count as a run.
func (s *SyncService) finish(completed bool) {
	s.mu.Lock()
	s.running = false
	if completed {
		s.lastRun = s.now().UTC()
	}
	s.mu.Unlock()
}

// nextRunAfter returns the next scheduled daily run strictly after t.
func (s *SyncService) nextRunAfter(t time.Time) time.Time {
	t = t.UTC()
	next := time.Date(t.Year(), t.Month(), t.Day(), s.cfg.RunHourUTC, 0, 0, 0, time.UTC)
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
