package ports

import (
	"context"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// DraftStore is the durable backup for partially completed onboarding
// wizards. Entries expire after the store's configured TTL.
type DraftStore interface {
	// Get returns the draft for userID, or domain.ErrDraftNotFound.
	Get(ctx context.Context, userID string) (*domain.OnboardingDraft, error)
	Put(ctx context.Context, draft *domain.OnboardingDraft) error
	Delete(ctx context.Context, userID string) error
}

// OnboardingService drives the multi-step influencer onboarding wizard.
type OnboardingService interface {
	// Draft returns the caller's in-progress draft.
	Draft(ctx context.Context, userID string) (*domain.OnboardingDraft, error)
	// SaveStep persists one wizard step, retrying the store write according
	// to the configured backoff policy.
	SaveStep(ctx context.Context, userID string, step int, data map[string]any) (*domain.OnboardingDraft, error)
	// Complete materialises the roster record from a finished draft and
	// discards the draft.
	Complete(ctx context.Context, userID string) (*domain.Influencer, error)
}
