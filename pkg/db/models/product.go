package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical storefront listing. BasePrice is in minor currency
// units. Stock on the product row applies only while no variants exist; once
// variants are defined each combination tracks its own stock.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID  uuid.UUID        `gorm:"column:merchant_id;type:uuid;not null;index"`
	Title       string           `gorm:"column:title;not null"`
	BasePrice   int              `gorm:"column:base_price;not null"`
	Stock       int              `gorm:"column:stock;not null;default:0"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid;index"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	HasVariants bool             `gorm:"column:has_variants;not null;default:false"`
	HasColors   bool             `gorm:"column:has_colors;not null;default:false"`
	HasSizes    bool             `gorm:"column:has_sizes;not null;default:false"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
