package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/enums"
)

// Campaign is a time-windowed promotional discount. It goes live automatically
// once the clock enters [StartsAt, EndsAt] while IsActive is set; there is no
// separate activation step.
type Campaign struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID        uuid.UUID          `gorm:"column:merchant_id;type:uuid;not null;index"`
	Title             string             `gorm:"column:title;not null"`
	Type              enums.DiscountType `gorm:"column:type;type:text;not null"`
	DiscountValue     int                `gorm:"column:discount_value;not null"`
	MaxDiscountAmount *int               `gorm:"column:max_discount_amount"`
	StartsAt          time.Time          `gorm:"column:starts_at;not null"`
	EndsAt            time.Time          `gorm:"column:ends_at;not null"`
	IsActive          bool               `gorm:"column:is_active;not null;default:true"`
	Priority          int                `gorm:"column:priority;not null;default:0"`
	Targets           []CampaignTarget   `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
