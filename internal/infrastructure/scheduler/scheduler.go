package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
	"github.com/creatorbase/influencer-api/internal/infrastructure/config"
)

// Scheduler runs the tiered sync job on a daily cron. All times are UTC so
// the run hour does not drift with the host timezone.
type Scheduler struct {
	cron   *cron.Cron
	sync   ports.SyncService
	budget int
	log    zerolog.Logger
}

// New wires the sync service onto a cron scheduler using the configured
// run hour and daily credit budget.
func New(sync ports.SyncService, cfg config.SyncConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		sync:   sync,
		budget: cfg.DailyCreditBudget,
		log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the daily job and launches the cron loop. It returns an
// error only when the cron expression cannot be parsed.
func (s *Scheduler) Start(runHourUTC int) error {
	spec := fmt.Sprintf("0 %d * * *", runHourUTC)
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return fmt.Errorf("schedule sync job: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("cron", spec).Int("budget", s.budget).Msg("sync schedule registered")
	return nil
}

// Stop halts the cron loop and waits for an in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	result, err := s.sync.RunSync(context.Background(), s.budget)
	if err != nil {
		// An overlapping run means the previous day's job is still going;
		// skip quietly rather than error out.
		if errors.Is(err, domain.ErrSyncAlreadyRunning) {
			s.log.Warn().Msg("previous sync run still in flight, skipping")
			return
		}
		s.log.Error().Err(err).Msg("scheduled sync run failed")
		return
	}

	s.log.Info().
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("credits_used", result.CreditsUsed).
		Msg("scheduled sync run finished")
}
