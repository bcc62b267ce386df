package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/creatorbase/influencer-api/internal/core/domain"
	"github.com/creatorbase/influencer-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub sync service
// ---------------------------------------------------------------------------

type stubSyncService struct {
	runErr     error
	lastBudget int
	lastIDs    []string
}

func (s *stubSyncService) RunSync(_ context.Context, maxCredits int) (*ports.SyncResult, error) {
	s.lastBudget = maxCredits
	if s.runErr != nil {
		return nil, s.runErr
	}
	return &ports.SyncResult{Successful: maxCredits, CreditsUsed: maxCredits, ByTier: map[domain.Tier]int{}}, nil
}

func (s *stubSyncService) JobStatus(_ context.Context) (*ports.SyncStatus, error) {
	return &ports.SyncStatus{
		IsRunning:     false,
		CreditUsage:   &ports.CreditUsage{Used: 10, Limit: 200, Remaining: 190},
		PendingByTier: map[domain.Tier]int64{domain.TierGold: 2},
	}, nil
}

func (s *stubSyncService) UpdateSpecific(_ context.Context, ids []string) (*ports.SyncResult, error) {
	s.lastIDs = ids
	return &ports.SyncResult{Successful: len(ids), CreditsUsed: len(ids), ByTier: map[domain.Tier]int{}}, nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSyncRun_DefaultsToConfiguredBudget(t *testing.T) {
	e := echo.New()
	svc := &stubSyncService{}
	h := NewSyncHandler(svc, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admin/sync/run", `{}`), rec)

	if err := h.Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if svc.lastBudget != 200 {
		t.Fatalf("budget = %d, want configured default 200", svc.lastBudget)
	}
}

func TestSyncRun_ExplicitBudget(t *testing.T) {
	e := echo.New()
	svc := &stubSyncService{}
	h := NewSyncHandler(svc, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admin/sync/run", `{"max_credits":25}`), rec)

	if err := h.Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if svc.lastBudget != 25 {
		t.Fatalf("budget = %d, want 25", svc.lastBudget)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}

func TestSyncRun_PropagatesAlreadyRunning(t *testing.T) {
	e := echo.New()
	svc := &stubSyncService{runErr: domain.ErrSyncAlreadyRunning}
	h := NewSyncHandler(svc, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admin/sync/run", `{}`), rec)

	// The centralized error handler maps this to a 409.
	if err := h.Run(c); err != domain.ErrSyncAlreadyRunning {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}
}

func TestSyncStatus(t *testing.T) {
	e := echo.New()
	h := NewSyncHandler(&stubSyncService{}, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodGet, "/api/admin/sync/status", ""), rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("Status: %v", err)
	}

	var body struct {
		Success bool             `json:"success"`
		Data    ports.SyncStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data.CreditUsage.Remaining != 190 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if body.Data.PendingByTier[domain.TierGold] != 2 {
		t.Fatalf("pendingByTier = %v", body.Data.PendingByTier)
	}
}

func TestSyncUpdateInfluencers_EmptyIDs(t *testing.T) {
	e := echo.New()
	h := NewSyncHandler(&stubSyncService{}, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admin/sync/influencers", `{"ids":[]}`), rec)

	err := h.UpdateInfluencers(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestSyncUpdateInfluencers(t *testing.T) {
	e := echo.New()
	svc := &stubSyncService{}
	h := NewSyncHandler(svc, 200)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admin/sync/influencers", `{"ids":["a","b"]}`), rec)

	if err := h.UpdateInfluencers(c); err != nil {
		t.Fatalf("UpdateInfluencers: %v", err)
	}
	if len(svc.lastIDs) != 2 {
		t.Fatalf("ids = %v, want [a b]", svc.lastIDs)
	}
}
