package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/enums"
)

// CampaignTarget points a campaign at a single product or a whole category.
// Exactly one of ProductID/CategoryID is set, matching TargetType.
type CampaignTarget struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID uuid.UUID                `gorm:"column:campaign_id;type:uuid;not null;index"`
	TargetType enums.CampaignTargetType `gorm:"column:target_type;type:text;not null"`
	ProductID  *uuid.UUID               `gorm:"column:product_id;type:uuid"`
	CategoryID *uuid.UUID               `gorm:"column:category_id;type:uuid"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
}
