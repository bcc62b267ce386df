package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

const collectionInfluencers = "influencers"

type InfluencerRepository struct {
	col *mongo.Collection
}

func NewInfluencerRepository(db *mongo.Database) *InfluencerRepository {
	return &InfluencerRepository{col: db.Collection(collectionInfluencers)}
}

type mongoInfluencer struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	DisplayName       string             `bson:"display_name"`
	Handle            string             `bson:"handle"`
	Tier              string             `bson:"tier"`
	Followers         int64              `bson:"followers"`
	EngagementRate    float64            `bson:"engagement_rate"`
	UpdatePriority    int                `bson:"update_priority"`
	ActiveCampaigns   int                `bson:"active_campaigns"`
	AutoUpdateEnabled bool               `bson:"auto_update_enabled"`
	IsActive          bool               `bson:"is_active"`
	LastUpdated       *time.Time         `bson:"last_updated,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (mi *mongoInfluencer) toDomain() *domain.Influencer {
	return &domain.Influencer{
		ID:                mi.ID.Hex(),
		UserID:            mi.UserID,
		DisplayName:       mi.DisplayName,
		Handle:            mi.Handle,
		Tier:              domain.Tier(mi.Tier),
		Followers:         mi.Followers,
		EngagementRate:    mi.EngagementRate,
		UpdatePriority:    mi.UpdatePriority,
		ActiveCampaigns:   mi.ActiveCampaigns,
		AutoUpdateEnabled: mi.AutoUpdateEnabled,
		IsActive:          mi.IsActive,
		LastUpdated:       mi.LastUpdated,
		CreatedAt:         mi.CreatedAt,
		UpdatedAt:         mi.UpdatedAt,
	}
}

func fromDomain(i *domain.Influencer) mongoInfluencer {
	return mongoInfluencer{
		UserID:            i.UserID,
		DisplayName:       i.DisplayName,
		Handle:            i.Handle,
		Tier:              string(i.Tier),
		Followers:         i.Followers,
		EngagementRate:    i.EngagementRate,
		UpdatePriority:    i.UpdatePriority,
		ActiveCampaigns:   i.ActiveCampaigns,
		AutoUpdateEnabled: i.AutoUpdateEnabled,
		IsActive:          i.IsActive,
		LastUpdated:       i.LastUpdated,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func (r *InfluencerRepository) Create(ctx context.Context, i *domain.Influencer) (*domain.Influencer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomain(i))
	if err != nil {
		return nil, err
	}
	out := *i
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *InfluencerRepository) FindByID(ctx context.Context, id string) (*domain.Influencer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInfluencerNotFound
	}

	var mi mongoInfluencer
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInfluencerNotFound
		}
		return nil, err
	}
	return mi.toDomain(), nil
}

// List returns a page of roster records matching filter plus the total count.
func (r *InfluencerRepository) List(ctx context.Context, f ports.InfluencerFilter) ([]*domain.Influencer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"display_name": bson.M{"$regex": f.Search, "$options": "i"}},
			{"handle": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Tier != "" {
		filter["tier"] = f.Tier
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items, err := decodeInfluencers(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// eligibilityFilter selects records due for a refresh at now: auto-update on,
// active, and either never updated or staler than the tier threshold.
func eligibilityFilter(now time.Time) bson.M {
	return bson.M{
		"auto_update_enabled": true,
		"is_active":           true,
		"$or": []bson.M{
			{"last_updated": nil},
			{"tier": string(domain.TierGold), "last_updated": bson.M{"$lte": now.Add(-domain.TierGold.StalenessThreshold())}},
			{"tier": bson.M{"$in": []string{string(domain.TierSilver), string(domain.TierPartnered)}},
				"last_updated": bson.M{"$lte": now.Add(-domain.TierSilver.StalenessThreshold())}},
			{"tier": string(domain.TierBronze), "last_updated": bson.M{"$lte": now.Add(-domain.TierBronze.StalenessThreshold())}},
		},
	}
}

// tierRankField derives a sortable numeric rank from the tier string.
func tierRankField() bson.M {
	return bson.M{
		"$switch": bson.M{
			"branches": []bson.M{
				{"case": bson.M{"$eq": []any{"$tier", string(domain.TierGold)}}, "then": 1},
				{"case": bson.M{"$eq": []any{"$tier", string(domain.TierSilver)}}, "then": 2},
				{"case": bson.M{"$eq": []any{"$tier", string(domain.TierPartnered)}}, "then": 3},
			},
			"default": 4,
		},
	}
}

// ListDueForRefresh implements the prioritised selection: tier rank ascending,
// oldest data first with never-updated leading (missing fields sort before
// values in ascending Mongo sorts), then priority score and campaign count
// descending. Result size is capped at limit.
func (r *InfluencerRepository) ListDueForRefresh(ctx context.Context, now time.Time, limit int) ([]*domain.Influencer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: eligibilityFilter(now)}},
		{{Key: "$addFields", Value: bson.M{"tier_rank": tierRankField()}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "tier_rank", Value: 1},
			{Key: "last_updated", Value: 1},
			{Key: "update_priority", Value: -1},
			{Key: "active_campaigns", Value: -1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeInfluencers(ctx, cur)
}

// CountDueByTier groups the eligibility count by tier, computed fresh per call.
func (r *InfluencerRepository) CountDueByTier(ctx context.Context, now time.Time) (map[domain.Tier]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: eligibilityFilter(now)}},
		{{Key: "$group", Value: bson.M{"_id": "$tier", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.Tier]int64)
	for cur.Next(ctx) {
		var row struct {
			Tier  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[domain.Tier(row.Tier)] = row.Count
	}
	return counts, cur.Err()
}

// MarkRefreshed stores the provider report and stamps last_updated.
func (r *InfluencerRepository) MarkRefreshed(ctx context.Context, id string, report *ports.ProviderReport, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInfluencerNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"followers":       report.Followers,
		"engagement_rate": report.EngagementRate,
		"last_updated":    at,
		"updated_at":      at,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInfluencerNotFound
	}
	return nil
}

func decodeInfluencers(ctx context.Context, cur *mongo.Cursor) ([]*domain.Influencer, error) {
	var items []*domain.Influencer
	for cur.Next(ctx) {
		var mi mongoInfluencer
		if err := cur.Decode(&mi); err != nil {
			return nil, err
		}
		items = append(items, mi.toDomain())
	}
	return items, cur.Err()
}

// EnsureIndexes creates the indexes the roster queries depend on.
func (r *InfluencerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tier", Value: 1}, {Key: "last_updated", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "handle", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
