package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/internal/merchants"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

type stubResolver struct {
	merchant *merchants.Context
	err      error
}

func (s stubResolver) ContextFor(_ context.Context, _ uuid.UUID) (*merchants.Context, error) {
	return s.merchant, s.err
}

func TestTenantRejectsMissingHeader(t *testing.T) {
	handler := Tenant(stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTenantRejectsMalformedID(t *testing.T) {
	handler := Tenant(stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Merchant-Id", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTenantPropagatesResolverError(t *testing.T) {
	resolver := stubResolver{err: pkgerrors.New(pkgerrors.CodeForbidden, "merchant is not active")}
	handler := Tenant(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Merchant-Id", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestTenantSeedsContext(t *testing.T) {
	merchantID := uuid.New()
	resolver := stubResolver{merchant: &merchants.Context{MerchantID: merchantID, CampaignsEnabled: true}}

	var captured *merchants.Context
	handler := Tenant(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = MerchantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Merchant-Id", merchantID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured == nil || captured.MerchantID != merchantID {
		t.Fatalf("merchant context not seeded: %+v", captured)
	}
	if !captured.CampaignsEnabled {
		t.Fatal("expected campaign flag to survive")
	}
}

func TestSessionRequiresHeader(t *testing.T) {
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSessionSeedsContext(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "sess-42")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if captured != "sess-42" {
		t.Fatalf("expected session id in context, got %q", captured)
	}
}

func TestIdentityIsOptional(t *testing.T) {
	var captured uuid.UUID
	handler := Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != uuid.Nil {
		t.Fatalf("expected no user id, got %s", captured)
	}
}

func TestIdentityRejectsMalformedID(t *testing.T) {
	handler := Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", "garbage")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestIdentityParsesHeader(t *testing.T) {
	userID := uuid.New()
	var captured uuid.UUID
	handler := Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", userID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if captured != userID {
		t.Fatalf("expected %s got %s", userID, captured)
	}
}
