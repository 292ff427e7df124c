package models

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is an independent storefront operating on the shared platform.
// Almost every other entity is scoped by MerchantID.
type Merchant struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	PlanID      string    `gorm:"column:plan_id;not null"`
	Plan        *Plan     `gorm:"foreignKey:PlanID"`
	DeliveryFee int       `gorm:"column:delivery_fee;not null;default:0"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
