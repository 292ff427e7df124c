package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/api/responses"
	"github.com/shopora/storefront-backend/internal/merchants"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
	"github.com/shopora/storefront-backend/pkg/logger"
)

const (
	headerMerchantID = "X-Merchant-Id"
	headerSessionID  = "X-Session-Id"
	headerUserID     = "X-User-Id"
)

// TenantResolver loads the tenant scope for a merchant id.
type TenantResolver interface {
	ContextFor(ctx context.Context, merchantID uuid.UUID) (*merchants.Context, error)
}

// Tenant resolves the merchant named by the X-Merchant-Id header and seeds the
// request context with its scope. Requests without a valid merchant are
// rejected before reaching handlers.
func Tenant(resolver TenantResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(headerMerchantID))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing merchant id"))
				return
			}

			merchantID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid merchant id"))
				return
			}

			merchant, err := resolver.ContextFor(r.Context(), merchantID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithMerchant(r.Context(), merchant)
			if logg != nil {
				ctx = logg.WithMerchantID(ctx, merchant.MerchantID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session requires the X-Session-Id header and seeds the request context with
// the storefront session identifier.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(headerSessionID))
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "missing session id"))
				return
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity parses the optional X-User-Id header. A malformed value is
// rejected; an absent one leaves the context without a shopper identity, and
// handlers that need one enforce that themselves.
func Identity(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(headerUserID))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
