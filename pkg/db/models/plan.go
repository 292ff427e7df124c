package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan captures the subscription tier a merchant operates under. A nil
// CommissionRate means the platform takes no cut for this tier.
type Plan struct {
	ID               string           `gorm:"column:id;primaryKey"`
	Name             string           `gorm:"column:name;not null"`
	CommissionRate   *decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2)"`
	CampaignsEnabled bool             `gorm:"column:campaigns_enabled;not null;default:true"`
	VariantsEnabled  bool             `gorm:"column:variants_enabled;not null;default:true"`
	IsDefault        bool             `gorm:"column:is_default;not null;default:false"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
