package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCodeUsage records one redemption of a code by one user. The unique
// index on (discount_code_id, user_id) enforces one use per user, ever, even
// under concurrent checkouts.
type DiscountCodeUsage struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DiscountCodeID uuid.UUID `gorm:"column:discount_code_id;type:uuid;not null;uniqueIndex:idx_discount_code_usages_code_user"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_discount_code_usages_code_user"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	DiscountAmount int       `gorm:"column:discount_amount;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
