package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// DraftStore keeps onboarding wizard drafts in Redis with a sliding TTL.
// Key format: onboarding:draft:<user_id>
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a DraftStore wrapping the given Redis client.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &DraftStore{client: client, ttl: ttl}
}

// Get returns the stored draft, or domain.ErrDraftNotFound when the key is
// absent or expired.
func (s *DraftStore) Get(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft domain.OnboardingDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

// Put stores the draft and resets its TTL, so active wizards never expire
// mid-flow.
func (s *DraftStore) Put(ctx context.Context, draft *domain.OnboardingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key(draft.UserID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

// Delete removes the draft; deleting an absent draft is not an error.
func (s *DraftStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *DraftStore) key(userID string) string {
	return "onboarding:draft:" + userID
}
