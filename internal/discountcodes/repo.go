package discountcodes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db"
	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Normalize canonicalizes user-entered code text before lookup or storage.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Repository persists discount codes and their per-user usage records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByCode looks up a merchant's code by its normalized value. A missing
// code surfaces as discount_code_invalid so callers never learn whether the
// code exists.
func (r *Repository) FindByCode(ctx context.Context, merchantID uuid.UUID, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := r.db.WithContext(ctx).
		First(&dc, "merchant_id = ? AND code = ?", merchantID, Normalize(code)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount code invalid").
				WithReason(pkgerrors.ReasonDiscountCodeInvalid)
		}
		return nil, err
	}
	return &dc, nil
}

// HasUsage reports whether the user has ever redeemed the code.
func (r *Repository) HasUsage(ctx context.Context, codeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DiscountCodeUsage{}).
		Where("discount_code_id = ? AND user_id = ?", codeID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConsumeUsage records a redemption: it increments used_count only while the
// limit still holds and inserts the per-user usage row. Both writes race
// safely; the conditional update and the unique index each turn a lost race
// into a typed rejection instead of an overdraw.
func (r *Repository) ConsumeUsage(ctx context.Context, code *models.DiscountCode, userID, orderID uuid.UUID, discountAmount int) error {
	query := r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("id = ?", code.ID)
	if code.UsageLimit != nil {
		query = query.Where("usage_limit IS NULL OR used_count < usage_limit")
	}
	res := query.UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "discount code usage limit exceeded").
			WithReason(pkgerrors.ReasonDiscountCodeLimit)
	}

	usage := &models.DiscountCodeUsage{
		ID:             uuid.New(),
		DiscountCodeID: code.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discountAmount,
	}
	if err := r.db.WithContext(ctx).Create(usage).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_discount_code_usages_code_user") {
			return pkgerrors.New(pkgerrors.CodeConflict, "discount code already used").
				WithReason(pkgerrors.ReasonDiscountCodeUsed)
		}
		return err
	}
	return nil
}
