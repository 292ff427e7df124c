package models

import (
	"time"

	"github.com/google/uuid"
)

// Color is a merchant-defined color option referenced by product variants.
type Color struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID uuid.UUID `gorm:"column:merchant_id;type:uuid;not null;index"`
	Title      string    `gorm:"column:title;not null"`
	HexCode    *string   `gorm:"column:hex_code"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
