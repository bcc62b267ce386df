package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub brand repository
// ---------------------------------------------------------------------------

type stubBrandRepo struct {
	brands     []*domain.Brand
	lastFilter ports.BrandFilter
}

func (r *stubBrandRepo) Create(_ context.Context, b *domain.Brand) (*domain.Brand, error) {
	clone := *b
	clone.ID = "brand-" + strconv.Itoa(len(r.brands)+1)
	r.brands = append(r.brands, &clone)
	out := clone
	return &out, nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id string) (*domain.Brand, error) {
	for _, b := range r.brands {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBrandNotFound
}

// List honours pagination but no filters; the filter handling lives in the
// Mongo repository.
func (r *stubBrandRepo) List(_ context.Context, f ports.BrandFilter) ([]*domain.Brand, int64, error) {
	r.lastFilter = f
	total := int64(len(r.brands))

	skip := (f.Page - 1) * f.Limit
	if skip >= len(r.brands) {
		return nil, total, nil
	}
	end := skip + f.Limit
	if end > len(r.brands) {
		end = len(r.brands)
	}
	return r.brands[skip:end], total, nil
}

func (r *stubBrandRepo) Update(_ context.Context, id string, upd ports.BrandUpdate) (*domain.Brand, error) {
	for _, b := range r.brands {
		if b.ID == id {
			if upd.CompanyName != nil {
				b.CompanyName = *upd.CompanyName
			}
			if upd.Industry != nil {
				b.Industry = *upd.Industry
			}
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBrandNotFound
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestBrandList_DefaultsPagination(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := NewBrandService(repo, zerolog.Nop())

	res, err := svc.List(context.Background(), ports.BrandFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Page != 1 || res.Limit != 20 {
		t.Fatalf("page/limit = %d/%d, want 1/20", res.Page, res.Limit)
	}
	if res.Total != 0 || res.TotalPages != 0 {
		t.Fatalf("empty roster must report total 0 and totalPages 0, got %d/%d", res.Total, res.TotalPages)
	}
}

func TestBrandList_CapsLimit(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := NewBrandService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.BrandFilter{Page: 2, Limit: 500}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastFilter.Limit != 100 {
		t.Fatalf("limit = %d, want capped at 100", repo.lastFilter.Limit)
	}
	if repo.lastFilter.Page != 2 {
		t.Fatalf("page = %d, want 2", repo.lastFilter.Page)
	}
}

func TestBrandList_TotalPagesRoundsUp(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := NewBrandService(repo, zerolog.Nop())
	for i := 0; i < 45; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateBrandInput{UserID: "u", CompanyName: "Acme"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	res, err := svc.List(context.Background(), ports.BrandFilter{Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 45 {
		t.Fatalf("total = %d, want 45", res.Total)
	}
	if res.TotalPages != 3 {
		t.Fatalf("totalPages = %d, want 3", res.TotalPages)
	}
}

func TestBrandCreateAndGet(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := NewBrandService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateBrandInput{
		UserID:      "u1",
		CompanyName: "Acme Cosmetics",
		Industry:    "beauty",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created brand has no id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CompanyName != "Acme Cosmetics" {
		t.Fatalf("unexpected brand: %+v", got)
	}
}

func TestBrandUpdate_PartialFields(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := NewBrandService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.CreateBrandInput{
		UserID:      "u1",
		CompanyName: "Acme",
		Industry:    "beauty",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Acme Global"
	updated, err := svc.Update(context.Background(), created.ID, ports.BrandUpdate{CompanyName: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CompanyName != "Acme Global" {
		t.Fatalf("company name not updated: %+v", updated)
	}
	if updated.Industry != "beauty" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}
