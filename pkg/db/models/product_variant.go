package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is one (color, size) combination of a product with its own
// stock and an optional price override. The combination is unique per product.
type ProductVariant struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_variants_combo"`
	ColorID   *uuid.UUID `gorm:"column:color_id;type:uuid;uniqueIndex:idx_product_variants_combo"`
	SizeID    *uuid.UUID `gorm:"column:size_id;type:uuid;uniqueIndex:idx_product_variants_combo"`
	Color     *Color     `gorm:"foreignKey:ColorID"`
	Size      *Size      `gorm:"foreignKey:SizeID"`
	Price     *int       `gorm:"column:price"`
	Stock     int        `gorm:"column:stock;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
