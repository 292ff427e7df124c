package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/enums"
)

// DiscountCode is an order-level discount redeemable at checkout. Code values
// are stored upper-cased; lookups normalize the same way.
type DiscountCode struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID        uuid.UUID          `gorm:"column:merchant_id;type:uuid;not null;uniqueIndex:idx_discount_codes_merchant_code"`
	Code              string             `gorm:"column:code;not null;uniqueIndex:idx_discount_codes_merchant_code"`
	Type              enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value             int                `gorm:"column:value;not null"`
	UsageLimit        *int               `gorm:"column:usage_limit"`
	UsedCount         int                `gorm:"column:used_count;not null;default:0"`
	MaxDiscountAmount *int               `gorm:"column:max_discount_amount"`
	MinOrderAmount    *int               `gorm:"column:min_order_amount"`
	StartsAt          *time.Time         `gorm:"column:starts_at"`
	ExpiresAt         *time.Time         `gorm:"column:expires_at"`
	IsActive          bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
