package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/enums"
)

// Order is the persisted result of a finalized checkout. TotalAmount is the
// pre-code-discount sum of line totals; FinalAmount = TotalAmount -
// DiscountAmount. DeliveryFee is charged on top and never discounted. The
// unique index on (MerchantID, CartSessionID) is the idempotency guard
// against finalizing the same session cart twice; session ids are
// client-supplied and only unique within a merchant.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID     uuid.UUID         `gorm:"column:merchant_id;type:uuid;not null;index;uniqueIndex:idx_orders_cart_session_id,priority:1"`
	UserID         uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	CartSessionID  string            `gorm:"column:cart_session_id;not null;uniqueIndex:idx_orders_cart_session_id,priority:2"`
	TotalAmount    int               `gorm:"column:total_amount;not null"`
	DiscountAmount int               `gorm:"column:discount_amount;not null;default:0"`
	FinalAmount    int               `gorm:"column:final_amount;not null"`
	DeliveryFee    int               `gorm:"column:delivery_fee;not null;default:0"`
	DiscountCodeID *uuid.UUID        `gorm:"column:discount_code_id;type:uuid"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Commission     *Commission       `gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
