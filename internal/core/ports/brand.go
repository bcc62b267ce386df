package ports

import (
	"context"

	"github.com/creatorbase/influencer-api/internal/core/domain"
)

// BrandFilter carries all query parameters for listing brands.
type BrandFilter struct {
	Search   string // optional: partial match on company_name
	Industry string // optional: exact match
	Page     int    // 1-based
	Limit    int    // rows per page (capped at 100 by the service)
}

// BrandUpdate holds the patchable brand fields; nil means "leave unchanged".
type BrandUpdate struct {
	CompanyName *string
	Industry    *string
	WebsiteURL  *string
	LogoURL     *string
}

// BrandRepository defines persistence operations for brands.
type BrandRepository interface {
	Create(ctx context.Context, b *domain.Brand) (*domain.Brand, error)
	FindByID(ctx context.Context, id string) (*domain.Brand, error)
	// List returns a page of brands matching filter and the total count.
	List(ctx context.Context, filter BrandFilter) ([]*domain.Brand, int64, error)
	Update(ctx context.Context, id string, upd BrandUpdate) (*domain.Brand, error)
}

// CreateBrandInput carries all data needed to create a brand account.
type CreateBrandInput struct {
	UserID      string
	CompanyName string
	Industry    string
	WebsiteURL  string
	LogoURL     string
}

// ListBrandsResult is returned by ListBrands.
type ListBrandsResult struct {
	Items      []*domain.Brand
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BrandService defines use-case operations for brands.
type BrandService interface {
	Create(ctx context.Context, input CreateBrandInput) (*domain.Brand, error)
	Get(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context, filter BrandFilter) (*ListBrandsResult, error)
	Update(ctx context.Context, id string, upd BrandUpdate) (*domain.Brand, error)
}
