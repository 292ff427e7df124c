package models

import (
	"time"

	"github.com/google/uuid"
)

// CampaignSale is a denormalized attribution snapshot written once per order
// line that benefited from a campaign. Reporting reads it; nothing mutates it.
type CampaignSale struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID     uuid.UUID `gorm:"column:merchant_id;type:uuid;not null;index"`
	CampaignID     uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;index"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	OrderItemID    uuid.UUID `gorm:"column:order_item_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	OriginalPrice  int       `gorm:"column:original_price;not null"`
	DiscountAmount int       `gorm:"column:discount_amount;not null"`
	FinalPrice     int       `gorm:"column:final_price;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	TotalDiscount  int       `gorm:"column:total_discount;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
