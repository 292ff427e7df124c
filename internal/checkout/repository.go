package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db"
	"github.com/shopora/storefront-backend/pkg/db/models"
	"github.com/shopora/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Repository persists orders and the finalization side tables.
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

// CreateOrder inserts the order row. A duplicate cart session surfaces as
// order_already_finalized; the unique index is the last line of defense when
// two finalizations race past the pre-check.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_orders_cart_session_id") {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already finalized").
				WithReason(pkgerrors.ReasonOrderAlreadyFinalized)
		}
		return err
	}
	return nil
}

// CreateOrderItems inserts the immutable line snapshots.
func (r *Repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// CreateCampaignSales writes the attribution snapshots, attempting every row
// and aggregating failures so the caller sees the full damage at once.
func (r *Repository) CreateCampaignSales(ctx context.Context, sales []models.CampaignSale) error {
	var errs error
	for i := range sales {
		if err := r.db.WithContext(ctx).Create(&sales[i]).Error; err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// CreateCommission inserts the commission snapshot for an order.
func (r *Repository) CreateCommission(ctx context.Context, commission *models.Commission) error {
	return r.db.WithContext(ctx).Create(commission).Error
}

// FindBySession returns the order finalized from the given session cart, or
// nil when none exists.
func (r *Repository) FindBySession(ctx context.Context, merchantID uuid.UUID, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		First(&order, "merchant_id = ? AND cart_session_id = ?", merchantID, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindOrderForUser loads an order with items and commission, rejecting
// cross-tenant and cross-user access.
func (r *Repository) FindOrderForUser(ctx context.Context, merchantID, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Commission").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if order.MerchantID != merchantID || order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another scope").
			WithReason(pkgerrors.ReasonUnauthorizedResource)
	}
	return &order, nil
}

// UpdateOrderStatus moves a pending order to its payment outcome. Orders
// already past pending are left untouched and reported as a state conflict.
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, enums.OrderStatusPending).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not pending")
	}
	return nil
}

// FindCommissionByOrder loads the commission row for an order.
func (r *Repository) FindCommissionByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*models.Commission, error) {
	var commission models.Commission
	err := r.db.WithContext(ctx).
		First(&commission, "order_id = ? AND merchant_id = ?", orderID, merchantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "commission not found")
		}
		return nil, err
	}
	return &commission, nil
}

// TransitionCommission moves a pending commission into a terminal state. Any
// other starting state is a conflict; terminal states are final.
func (r *Repository) TransitionCommission(ctx context.Context, commissionID uuid.UUID, to enums.CommissionStatus) error {
	if !to.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeValidation, "commission can only move to a terminal state")
	}
	res := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where("id = ? AND status = ?", commissionID, enums.CommissionStatusPending).
		UpdateColumn("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "commission is not pending")
	}
	return nil
}
