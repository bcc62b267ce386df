package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubInfluencerRepo struct {
	mu      sync.Mutex
	records map[string]*domain.Influencer
	listErr error
}

func newStubInfluencerRepo(records ...*domain.Influencer) *stubInfluencerRepo {
	r := &stubInfluencerRepo{records: make(map[string]*domain.Influencer)}
	for _, rec := range records {
		clone := *rec
		r.records[rec.ID] = &clone
	}
	return r
}

func (r *stubInfluencerRepo) Create(_ context.Context, i *domain.Influencer) (*domain.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *i
	if clone.ID == "" {
		clone.ID = "generated-id"
	}
	r.records[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubInfluencerRepo) FindByID(_ context.Context, id string) (*domain.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrInfluencerNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubInfluencerRepo) List(_ context.Context, f ports.InfluencerFilter) ([]*domain.Influencer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Influencer
	for _, rec := range r.records {
		clone := *rec
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

// ListDueForRefresh mirrors the real aggregation pipeline: eligibility filter,
// then tier rank ascending, last updated ascending with never-updated first,
// priority and campaign count descending, capped at limit.
func (r *stubInfluencerRepo) ListDueForRefresh(_ context.Context, now time.Time, limit int) ([]*domain.Influencer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []*domain.Influencer
	for _, rec := range r.records {
		if rec.RefreshDue(now) {
			clone := *rec
			due = append(due, &clone)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() < b.Tier.Rank()
		}
		switch {
		case a.LastUpdated == nil && b.LastUpdated != nil:
			return true
		case a.LastUpdated != nil && b.LastUpdated == nil:
			return false
		case a.LastUpdated != nil && b.LastUpdated != nil && !a.LastUpdated.Equal(*b.LastUpdated):
			return a.LastUpdated.Before(*b.LastUpdated)
		}
		if a.UpdatePriority != b.UpdatePriority {
			return a.UpdatePriority > b.UpdatePriority
		}
		return a.ActiveCampaigns > b.ActiveCampaigns
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *stubInfluencerRepo) CountDueByTier(_ context.Context, now time.Time) (map[domain.Tier]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.Tier]int64)
	for _, rec := range r.records {
		if rec.RefreshDue(now) {
			counts[rec.Tier]++
		}
	}
	return counts, nil
}

func (r *stubInfluencerRepo) MarkRefreshed(_ context.Context, id string, report *ports.ProviderReport, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return domain.ErrInfluencerNotFound
	}
	rec.Followers = report.Followers
	rec.EngagementRate = report.EngagementRate
	ts := at
	rec.LastUpdated = &ts
	return nil
}

// ---------------------------------------------------------------------------
// Stub provider
// ---------------------------------------------------------------------------

type stubProvider struct {
	mu       sync.Mutex
	usage    ports.CreditUsage
	usageErr error
	fetchErr map[string]error // per-handle failures
	fetched  []string         // handles in call order

	// when set, CreditUsage signals creditCheckStarted then blocks on release
	creditCheckStarted chan struct{}
	release            chan struct{}
}

func newStubProvider(remaining int) *stubProvider {
	return &stubProvider{
		usage:    ports.CreditUsage{Used: 0, Limit: remaining, Remaining: remaining},
		fetchErr: make(map[string]error),
	}
}

func (p *stubProvider) CreditUsage(_ context.Context) (*ports.CreditUsage, error) {
	if p.creditCheckStarted != nil {
		p.creditCheckStarted <- struct{}{}
		<-p.release
	}
	if p.usageErr != nil {
		return nil, p.usageErr
	}
	usage := p.usage
	return &usage, nil
}

func (p *stubProvider) FetchProfileReport(_ context.Context, handle string) (*ports.ProviderReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.fetchErr[handle]; ok {
		return nil, err
	}
	p.fetched = append(p.fetched, handle)
	return &ports.ProviderReport{Followers: 1000, EngagementRate: 3.5, FetchedAt: time.Now().UTC()}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSyncService(repo *stubInfluencerRepo, provider *stubProvider) *SyncService {
	s := NewSyncService(repo, provider, SyncConfig{RunHourUTC: 2}, zerolog.Nop())
	s.sleep = func(time.Duration) {} // no real throttling in tests
	s.now = func() time.Time { return testNow }
	return s
}

func influencer(id string, tier domain.Tier) *domain.Influencer {
	return &domain.Influencer{
		ID:                id,
		Handle:            "@" + id,
		Tier:              tier,
		AutoUpdateEnabled: true,
		IsActive:          true,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRunSync_ProcessesGoldBeforeSilverBeforeBronze(t *testing.T) {
	// All never-updated, inserted out of order.
	repo := newStubInfluencerRepo(
		influencer("b1", domain.TierBronze),
		influencer("g1", domain.TierGold),
		influencer("s1", domain.TierSilver),
	)
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 100)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.Successful != 3 {
		t.Fatalf("successful = %d, want 3", result.Successful)
	}

	want := []string{"@g1", "@s1", "@b1"}
	if len(provider.fetched) != len(want) {
		t.Fatalf("fetched %v, want %v", provider.fetched, want)
	}
	for i, h := range want {
		if provider.fetched[i] != h {
			t.Fatalf("fetch order %v, want %v", provider.fetched, want)
		}
	}
}

func TestRunSync_StopsAtCreditBudget(t *testing.T) {
	var recs []*domain.Influencer
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		recs = append(recs, influencer(id, domain.TierGold))
	}
	repo := newStubInfluencerRepo(recs...)
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 3)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.Successful != 3 {
		t.Fatalf("successful = %d, want 3", result.Successful)
	}
	if result.CreditsUsed != 3 {
		t.Fatalf("creditsUsed = %d, want 3", result.CreditsUsed)
	}
	if result.Failed != 0 {
		t.Fatalf("failed = %d, want 0", result.Failed)
	}
	if len(provider.fetched) != 3 {
		t.Fatalf("provider calls = %d, want 3", len(provider.fetched))
	}
}

func TestRunSync_ClampsBudgetToRemainingCredits(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("g2", domain.TierGold),
		influencer("g3", domain.TierGold),
	)
	provider := newStubProvider(2)
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 10)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.CreditsUsed != 2 {
		t.Fatalf("creditsUsed = %d, want 2 (clamped to remaining)", result.CreditsUsed)
	}
}

func TestRunSync_PerRecordFailureDoesNotAbort(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("g2", domain.TierGold),
		influencer("g3", domain.TierGold),
	)
	provider := newStubProvider(100)
	provider.fetchErr["@g2"] = errors.New("rate limited")
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 100)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.Successful != 2 {
		t.Fatalf("successful = %d, want 2", result.Successful)
	}
	if result.Failed != 1 {
		t.Fatalf("failed = %d, want 1", result.Failed)
	}
	// Failures never consume credits.
	if result.CreditsUsed != 2 {
		t.Fatalf("creditsUsed = %d, want 2", result.CreditsUsed)
	}
}

func TestRunSync_CreditCheckFailureIsFatal(t *testing.T) {
	repo := newStubInfluencerRepo(influencer("g1", domain.TierGold))
	provider := newStubProvider(100)
	provider.usageErr = errors.New("502 bad gateway")
	svc := newTestSyncService(repo, provider)

	_, err := svc.RunSync(context.Background(), 10)
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(provider.fetched) != 0 {
		t.Fatalf("no records may be processed after a failed credit check")
	}
}

func TestRunSync_RejectsOverlappingRuns(t *testing.T) {
	repo := newStubInfluencerRepo(influencer("g1", domain.TierGold))
	provider := newStubProvider(100)
	provider.creditCheckStarted = make(chan struct{})
	provider.release = make(chan struct{})
	svc := newTestSyncService(repo, provider)

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunSync(context.Background(), 10)
		done <- err
	}()

	<-provider.creditCheckStarted // first run is now inside the guard

	if _, err := svc.RunSync(context.Background(), 10); !errors.Is(err, domain.ErrSyncAlreadyRunning) {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}

	close(provider.release)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Guard is released after the run; a fresh run is accepted again.
	provider.creditCheckStarted = nil
	if _, err := svc.RunSync(context.Background(), 10); err != nil {
		t.Fatalf("run after release: %v", err)
	}
}

func TestRunSync_TalliesByTier(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("g2", domain.TierGold),
		influencer("p1", domain.TierPartnered),
	)
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 100)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.ByTier[domain.TierGold] != 2 || result.ByTier[domain.TierPartnered] != 1 {
		t.Fatalf("byTier = %v", result.ByTier)
	}
}

func TestRunSync_SkipsIneligibleRecords(t *testing.T) {
	fresh := influencer("fresh", domain.TierGold)
	updated := testNow.AddDate(0, 0, -1)
	fresh.LastUpdated = &updated

	disabled := influencer("disabled", domain.TierGold)
	disabled.AutoUpdateEnabled = false

	repo := newStubInfluencerRepo(fresh, disabled, influencer("due", domain.TierGold))
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	result, err := svc.RunSync(context.Background(), 100)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}
	if result.Successful != 1 {
		t.Fatalf("successful = %d, want 1", result.Successful)
	}
	if len(provider.fetched) != 1 || provider.fetched[0] != "@due" {
		t.Fatalf("fetched %v, want [@due]", provider.fetched)
	}
}

func TestJobStatus(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("b1", domain.TierBronze),
	)
	provider := newStubProvider(50)
	svc := newTestSyncService(repo, provider)

	status, err := svc.JobStatus(context.Background())
	if err != nil {
		t.Fatalf("JobStatus: %v", err)
	}
	if status.IsRunning {
		t.Fatalf("expected not running")
	}
	if status.LastRun != nil {
		t.Fatalf("lastRun must be nil before the first run")
	}
	if status.CreditUsage.Remaining != 50 {
		t.Fatalf("remaining = %d, want 50", status.CreditUsage.Remaining)
	}
	if status.PendingByTier[domain.TierGold] != 1 || status.PendingByTier[domain.TierBronze] != 1 {
		t.Fatalf("pendingByTier = %v", status.PendingByTier)
	}

	// testNow is 12:00 UTC; the next 02:00 run falls on the following day.
	wantNext := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	if !status.NextRun.Equal(wantNext) {
		t.Fatalf("nextRun = %v, want %v", status.NextRun, wantNext)
	}

	if _, err := svc.RunSync(context.Background(), 10); err != nil {
		t.Fatalf("RunSync: %v", err)
	}

	status, err = svc.JobStatus(context.Background())
	if err != nil {
		t.Fatalf("JobStatus after run: %v", err)
	}
	if status.LastRun == nil || !status.LastRun.Equal(testNow) {
		t.Fatalf("lastRun = %v, want %v", status.LastRun, testNow)
	}
}

func TestRunSync_AbortedRunLeavesLastRunUnset(t *testing.T) {
	repo := newStubInfluencerRepo(influencer("g1", domain.TierGold))
	provider := newStubProvider(100)
	provider.usageErr = errors.New("502 bad gateway")
	svc := newTestSyncService(repo, provider)

	if _, err := svc.RunSync(context.Background(), 10); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	provider.usageErr = nil
	status, err := svc.JobStatus(context.Background())
	if err != nil {
		t.Fatalf("JobStatus: %v", err)
	}
	// A run that never processed anything is not a run.
	if status.LastRun != nil {
		t.Fatalf("lastRun = %v, want nil after an aborted run", status.LastRun)
	}
	// The guard must still be released so the next run can start.
	if status.IsRunning {
		t.Fatalf("running guard not released after an aborted run")
	}
	if _, err := svc.RunSync(context.Background(), 10); err != nil {
		t.Fatalf("run after aborted run: %v", err)
	}
}

func TestRunSync_LastRunIsCompletionTime(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("g2", domain.TierGold),
	)
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	// Advancing clock: each observation is a minute later, so the start and
	// completion timestamps are distinguishable.
	clock := testNow
	svc.now = func() time.Time {
		now := clock
		clock = clock.Add(time.Minute)
		return now
	}

	result, err := svc.RunSync(context.Background(), 10)
	if err != nil {
		t.Fatalf("RunSync: %v", err)
	}

	status, err := svc.JobStatus(context.Background())
	if err != nil {
		t.Fatalf("JobStatus: %v", err)
	}
	if status.LastRun == nil {
		t.Fatalf("lastRun not recorded after a completed run")
	}
	if !status.LastRun.After(result.StartedAt) {
		t.Fatalf("lastRun = %v, must be later than start %v", status.LastRun, result.StartedAt)
	}
	if status.LastRun.Before(result.FinishedAt) {
		t.Fatalf("lastRun = %v, must not precede completion %v", status.LastRun, result.FinishedAt)
	}
}

func TestNextRunHonoursMidnightHour(t *testing.T) {
	svc := NewSyncService(newStubInfluencerRepo(), newStubProvider(10), SyncConfig{RunHourUTC: 0}, zerolog.Nop())
	svc.now = func() time.Time { return testNow }

	next := svc.nextRunAfter(testNow)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("nextRun = %v, want %v (midnight schedule)", next, want)
	}
}

func TestUpdateSpecific(t *testing.T) {
	repo := newStubInfluencerRepo(
		influencer("g1", domain.TierGold),
		influencer("b1", domain.TierBronze),
	)
	provider := newStubProvider(100)
	svc := newTestSyncService(repo, provider)

	result, err := svc.UpdateSpecific(context.Background(), []string{"g1", "missing", "b1"})
	if err != nil {
		t.Fatalf("UpdateSpecific: %v", err)
	}
	if result.Successful != 2 {
		t.Fatalf("successful = %d, want 2", result.Successful)
	}
	if result.Failed != 1 {
		t.Fatalf("failed = %d, want 1", result.Failed)
	}
	if result.ByTier[domain.TierGold] != 1 || result.ByTier[domain.TierBronze] != 1 {
		t.Fatalf("byTier = %v", result.ByTier)
	}
	// The manual path never touches the provider.
	if len(provider.fetched) != 0 {
		t.Fatalf("provider calls = %d, want 0", len(provider.fetched))
	}
}
