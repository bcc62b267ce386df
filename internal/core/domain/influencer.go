package domain

import (
	"errors"
	"time"
)

// Tier is the coarse influencer-quality classification driving refresh
// priority and business treatment.
type Tier string

const (
	TierGold      Tier = "GOLD"
	TierSilver    Tier = "SILVER"
	TierPartnered Tier = "PARTNERED"
	TierBronze    Tier = "BRONZE"
)

// tierRanks orders tiers for refresh prioritisation; lower rank refreshes first.
var tierRanks = map[Tier]int{
	TierGold:      1,
	TierSilver:    2,
	TierPartnered: 3,
	TierBronze:    4,
}

// Rank returns the refresh priority rank of t. Unknown tiers sort last.
func (t Tier) Rank() int {
	if r, ok := tierRanks[t]; ok {
		return r
	}
	return len(tierRanks) + 1
}

// StalenessThreshold returns how old a record's external data may get before
// it becomes due for a refresh.
func (t Tier) StalenessThreshold() time.Duration {
	switch t {
	case TierGold:
		return 28 * 24 * time.Hour
	case TierSilver, TierPartnered:
		return 42 * 24 * time.Hour
	default: // BRONZE and unknown
		return 56 * 24 * time.Hour
	}
}

var (
	ErrInfluencerNotFound  = errors.New("influencer not found")
	ErrSyncAlreadyRunning  = errors.New("sync already running")
	ErrProviderUnavailable = errors.New("social data provider unavailable")
)

// Influencer is a roster record tracked against the external social-data
// provider. LastUpdated is nil until the first successful refresh.
type Influencer struct {
	ID                string     `json:"id" bson:"_id,omitempty"`
	UserID            string     `json:"user_id" bson:"user_id"`
	DisplayName       string     `json:"display_name" bson:"display_name"`
	Handle            string     `json:"handle" bson:"handle"`
	Tier              Tier       `json:"tier" bson:"tier"`
	Followers         int64      `json:"followers" bson:"followers"`
	EngagementRate    float64    `json:"engagement_rate" bson:"engagement_rate"`
	UpdatePriority    int        `json:"update_priority" bson:"update_priority"`
	ActiveCampaigns   int        `json:"active_campaigns" bson:"active_campaigns"`
	AutoUpdateEnabled bool       `json:"auto_update_enabled" bson:"auto_update_enabled"`
	IsActive          bool       `json:"is_active" bson:"is_active"`
	LastUpdated       *time.Time `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
}

// RefreshDue reports whether the record is eligible for an external refresh
// at now: auto-update must be on, the record active, and its data older than
// the tier threshold. Never-updated records are always due.
func (i *Influencer) RefreshDue(now time.Time) bool {
	if !i.AutoUpdateEnabled || !i.IsActive {
		return false
	}
	if i.LastUpdated == nil {
		return true
	}
	return now.Sub(*i.LastUpdated) > i.Tier.StalenessThreshold()
}
