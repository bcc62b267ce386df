// Package metrics defines and registers all custom Prometheus metrics for the
// influencer platform API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load time; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "creatorbase"

// ── Sync metrics ──────────────────────────────────────────────────────────────

// SyncRunsTotal counts sync run outcomes.
// Label:
//   - result: "completed", "error", or "provider_error"
var SyncRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of tiered sync runs, labelled by outcome.",
	},
	[]string{"result"},
)

// SyncRecordsRefreshedTotal counts roster records successfully refreshed.
// Label:
//   - tier: the record's tier at refresh time (e.g. "GOLD")
var SyncRecordsRefreshedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_records_refreshed_total",
		Help:      "Total number of influencer records refreshed from the provider, by tier.",
	},
	[]string{"tier"},
)

// SyncRecordFailuresTotal counts per-record refresh failures. Failures never
// abort a run; they are skipped and surface here.
var SyncRecordFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_record_failures_total",
		Help:      "Total number of per-record refresh failures during sync runs.",
	},
)

// SyncCreditsUsedTotal counts provider credits consumed by sync runs.
var SyncCreditsUsedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_credits_used_total",
		Help:      "Total number of provider credits consumed refreshing records.",
	},
)

// SyncRunDuration measures wall-clock duration of a full sync run.
var SyncRunDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_run_duration_seconds",
		Help:      "Duration of a sync run from guard acquisition to completion.",
		Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
	},
)

// ── Onboarding metrics ────────────────────────────────────────────────────────

// OnboardingStepSavesTotal counts wizard step saves after the retry policy
// has run its course.
// Label:
//   - result: "ok" or "error"
var OnboardingStepSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_step_saves_total",
		Help:      "Total number of onboarding step saves, labelled by final result.",
	},
	[]string{"result"},
)
