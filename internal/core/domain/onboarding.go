package domain

import (
	"errors"
	"time"
)

var (
	ErrDraftNotFound        = errors.New("onboarding draft not found")
	ErrOnboardingIncomplete = errors.New("onboarding has unfinished steps")
	ErrInvalidStep          = errors.New("invalid onboarding step")
)

// OnboardingStepCount is the number of wizard steps an influencer completes
// before a roster record is created: profile, socials, audience, agreement.
const OnboardingStepCount = 4

// OnboardingDraft is the durable backup of a partially completed wizard.
// Steps are keyed by 1-based step number; each holds the raw form payload of
// that step. Drafts expire from the draft store after a configured TTL.
type OnboardingDraft struct {
	UserID    string                 `json:"user_id"`
	Steps     map[int]map[string]any `json:"steps"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Complete reports whether every wizard step has been saved.
func (d *OnboardingDraft) Complete() bool {
	for step := 1; step <= OnboardingStepCount; step++ {
		if _, ok := d.Steps[step]; !ok {
			return false
		}
	}
	return true
}
