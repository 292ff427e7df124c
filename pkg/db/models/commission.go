package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/storefront-backend/pkg/enums"
)

// Commission snapshots the platform's cut of one order at finalization time.
// Amount and Percentage are frozen copies; later plan changes never touch
// historical rows.
type Commission struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID              `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	MerchantID uuid.UUID              `gorm:"column:merchant_id;type:uuid;not null;index"`
	Amount     int                    `gorm:"column:amount;not null"`
	Percentage decimal.Decimal        `gorm:"column:percentage;type:numeric(5,2);not null"`
	Status     enums.CommissionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
