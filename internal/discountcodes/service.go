package discountcodes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/internal/pricing"
	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Validation is the outcome of a successful code check: the code row and the
// order-level discount it grants against the given subtotal.
type Validation struct {
	Code           *models.DiscountCode
	DiscountAmount int
}

// Service validates and redeems discount codes. Validate performs no writes
// so it can back live cart previews; the consuming writes happen only inside
// the checkout transaction via Consume.
type Service interface {
	Validate(ctx context.Context, merchantID, userID uuid.UUID, code string, subtotal int, now time.Time) (*Validation, error)
	Consume(ctx context.Context, tx *gorm.DB, validation *Validation, userID, orderID uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService builds the discount code validator.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount code repository required")
	}
	return &service{repo: repo}, nil
}

// Validate runs the ordered eligibility checks and computes the discount. The
// checks fail fast; each maps to a distinct reason so the API layer can
// present a precise message.
func (s *service) Validate(ctx context.Context, merchantID, userID uuid.UUID, code string, subtotal int, now time.Time) (*Validation, error) {
	if subtotal < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must not be negative")
	}

	dc, err := s.repo.FindByCode(ctx, merchantID, code)
	if err != nil {
		return nil, err
	}
	if !dc.IsActive {
		return nil, invalidCode("discount code inactive")
	}
	if dc.StartsAt != nil && now.Before(*dc.StartsAt) {
		return nil, invalidCode("discount code not started")
	}
	if dc.ExpiresAt != nil && now.After(*dc.ExpiresAt) {
		return nil, invalidCode("discount code expired")
	}
	if dc.UsageLimit != nil && dc.UsedCount >= *dc.UsageLimit {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code usage limit exceeded").
			WithReason(pkgerrors.ReasonDiscountCodeLimit)
	}

	used, err := s.repo.HasUsage(ctx, dc.ID, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already used").
			WithReason(pkgerrors.ReasonDiscountCodeUsed)
	}

	if dc.MinOrderAmount != nil && subtotal < *dc.MinOrderAmount {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order below minimum for discount code").
			WithReason(pkgerrors.ReasonOrderBelowMinimum).
			WithDetails(map[string]any{"min_order_amount": *dc.MinOrderAmount})
	}

	discount := pricing.Discount(subtotal, dc.Type, dc.Value, dc.MaxDiscountAmount)
	if discount > subtotal {
		discount = subtotal
	}
	return &Validation{Code: dc, DiscountAmount: discount}, nil
}

// Consume performs the redemption writes inside the caller's transaction:
// the conditional used_count increment and the per-user usage row.
func (s *service) Consume(ctx context.Context, tx *gorm.DB, validation *Validation, userID, orderID uuid.UUID) error {
	if validation == nil || validation.Code == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount validation required")
	}
	return s.repo.WithTx(tx).ConsumeUsage(ctx, validation.Code, userID, orderID, validation.DiscountAmount)
}

func invalidCode(message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithReason(pkgerrors.ReasonDiscountCodeInvalid)
}
