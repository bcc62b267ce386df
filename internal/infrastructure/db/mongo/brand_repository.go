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

const collectionBrands = "brands"

type BrandRepository struct {
	col *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{col: db.Collection(collectionBrands)}
}

type mongoBrand struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	CompanyName string             `bson:"company_name"`
	Industry    string             `bson:"industry,omitempty"`
	WebsiteURL  string             `bson:"website_url,omitempty"`
	LogoURL     string             `bson:"logo_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mb *mongoBrand) toDomain() *domain.Brand {
	return &domain.Brand{
		ID:          mb.ID.Hex(),
		UserID:      mb.UserID,
		CompanyName: mb.CompanyName,
		Industry:    mb.Industry,
		WebsiteURL:  mb.WebsiteURL,
		LogoURL:     mb.LogoURL,
		CreatedAt:   mb.CreatedAt,
		UpdatedAt:   mb.UpdatedAt,
	}
}

// Create inserts a new brand document and returns it with the generated id.
func (r *BrandRepository) Create(ctx context.Context, b *domain.Brand) (*domain.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBrand{
		UserID:      b.UserID,
		CompanyName: b.CompanyName,
		Industry:    b.Industry,
		WebsiteURL:  b.WebsiteURL,
		LogoURL:     b.LogoURL,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	out := *b
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *BrandRepository) FindByID(ctx context.Context, id string) (*domain.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBrandNotFound
	}

	var mb mongoBrand
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, err
	}
	return mb.toDomain(), nil
}

// List returns a page of brands matching filter plus the total match count.
func (r *BrandRepository) List(ctx context.Context, f ports.BrandFilter) ([]*domain.Brand, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		filter["company_name"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Industry != "" {
		filter["industry"] = f.Industry
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

	var items []*domain.Brand
	for cur.Next(ctx) {
		var mb mongoBrand
		if err := cur.Decode(&mb); err != nil {
			return nil, 0, err
		}
		items = append(items, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies the non-nil fields of upd and returns the updated document.
func (r *BrandRepository) Update(ctx context.Context, id string, upd ports.BrandUpdate) (*domain.Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBrandNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.CompanyName != nil {
		set["company_name"] = *upd.CompanyName
	}
	if upd.Industry != nil {
		set["industry"] = *upd.Industry
	}
	if upd.WebsiteURL != nil {
		set["website_url"] = *upd.WebsiteURL
	}
	if upd.LogoURL != nil {
		set["logo_url"] = *upd.LogoURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mb mongoBrand
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, err
	}
	return mb.toDomain(), nil
}

// EnsureIndexes creates the indexes the brand queries depend on.
func (r *BrandRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "company_name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
