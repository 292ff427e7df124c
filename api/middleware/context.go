package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/internal/merchants"
)

type contextKey string

const (
	ctxMerchant  contextKey = "merchant"
	ctxSessionID contextKey = "session_id"
	ctxUserID    contextKey = "user_id"
)

// MerchantFromContext returns the tenant scope seeded by the Tenant
// middleware, or nil when the request was not resolved.
func MerchantFromContext(ctx context.Context) *merchants.Context {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxMerchant).(*merchants.Context); ok {
		return v
	}
	return nil
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func UserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithMerchant injects the tenant scope into the context.
func WithMerchant(ctx context.Context, merchant *merchants.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxMerchant, merchant)
}

// WithSessionID injects the storefront session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// WithUserID injects the shopper identifier into the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}
