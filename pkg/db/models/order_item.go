package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one cart line at the moment of purchase. All price
// fields are immutable once written; they are the financial audit trail.
type OrderItem struct {
	ID                     uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID                uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID              uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID              *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	Title                  string     `gorm:"column:title;not null"`
	ColorLabel             *string    `gorm:"column:color_label"`
	SizeLabel              *string    `gorm:"column:size_label"`
	Quantity               int        `gorm:"column:quantity;not null"`
	OriginalPrice          int        `gorm:"column:original_price;not null"`
	CampaignID             *uuid.UUID `gorm:"column:campaign_id;type:uuid"`
	CampaignDiscountAmount int        `gorm:"column:campaign_discount_amount;not null;default:0"`
	LineTotal              int        `gorm:"column:line_total;not null"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime"`
}
