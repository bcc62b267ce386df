package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
	"github.com/creatorbase/influencer-api/internal/pkg/metrics"
)

// OnboardingConfig carries the step-save retry policy.
type OnboardingConfig struct {
	SaveMaxRetries uint64
	SaveBaseDelay  time.Duration
}

func (c OnboardingConfig) withDefaults() OnboardingConfig {
	if c.SaveMaxRetries == 0 {
		c.SaveMaxRetries = 3
	}
	if c.SaveBaseDelay <= 0 {
		c.SaveBaseDelay = 200 * time.Millisecond
	}
	return c
}

// OnboardingService drives the influencer onboarding wizard. Step payloads
// accumulate in the draft store until Complete materialises the roster record.
type OnboardingService struct {
	drafts      ports.DraftStore
	influencers ports.InfluencerRepository
	cfg         OnboardingConfig
	log         zerolog.Logger
}

func NewOnboardingService(drafts ports.DraftStore, influencers ports.InfluencerRepository, cfg OnboardingConfig, log zerolog.Logger) *OnboardingService {
	return &OnboardingService{
		drafts:      drafts,
		influencers: influencers,
		cfg:         cfg.withDefaults(),
		log:         log,
	}
}

func (s *OnboardingService) Draft(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	return s.drafts.Get(ctx, userID)
}

// SaveStep merges one wizard step into the caller's draft. The store write is
// retried with exponential backoff so a transient store hiccup does not lose
// the step.
func (s *OnboardingService) SaveStep(ctx context.Context, userID string, step int, data map[string]any) (*domain.OnboardingDraft, error) {
	if step < 1 || step > domain.OnboardingStepCount {
		return nil, fmt.Errorf("%w: step %d", domain.ErrInvalidStep, step)
	}

	draft, err := s.drafts.Get(ctx, userID)
	if err == domain.ErrDraftNotFound {
		draft = &domain.OnboardingDraft{
			UserID: userID,
			Steps:  make(map[int]map[string]any),
		}
	} else if err != nil {
		return nil, err
	}

	draft.Steps[step] = data
	draft.UpdatedAt = time.Now().UTC()

	backoff := retry.WithMaxRetries(s.cfg.SaveMaxRetries, retry.NewExponential(s.cfg.SaveBaseDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if putErr := s.drafts.Put(ctx, draft); putErr != nil {
			return retry.RetryableError(putErr)
		}
		return nil
	})
	if err != nil {
		metrics.OnboardingStepSavesTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("user_id", userID).Int("step", step).Msg("draft save exhausted retries")
		return nil, fmt.Errorf("save onboarding step: %w", err)
	}

	metrics.OnboardingStepSavesTotal.WithLabelValues("ok").Inc()
	return draft, nil
}

// Complete validates the draft, creates the roster record, and discards the
// draft. New records start on BRONZE with auto-update enabled so the nightly
// sync picks them up.
func (s *OnboardingService) Complete(ctx context.Context, userID string) (*domain.Influencer, error) {
	draft, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !draft.Complete() {
		return nil, domain.ErrOnboardingIncomplete
	}

	now := time.Now().UTC()
	inf := &domain.Influencer{
		UserID:            userID,
		DisplayName:       stepString(draft, 1, "display_name"),
		Handle:            stepString(draft, 2, "handle"),
		Tier:              domain.TierBronze,
		AutoUpdateEnabled: true,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.influencers.Create(ctx, inf)
	if err != nil {
		return nil, fmt.Errorf("create roster record: %w", err)
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		// The record exists; a stale draft is harmless and expires with the TTL.
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to delete completed draft")
	}

	s.log.Info().Str("user_id", userID).Str("influencer_id", created.ID).Msg("onboarding completed")
	return created, nil
}

func stepString(d *domain.OnboardingDraft, step int, key string) string {
	if v, ok := d.Steps[step][key].(string); ok {
		return v
	}
	return ""
}
