package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db/models"
	"github.com/shopora/storefront-backend/pkg/enums"
)

func setupCampaignTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:campaigns_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	campaigns := `
CREATE TABLE IF NOT EXISTS campaigns (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  discount_value INTEGER NOT NULL,
  max_discount_amount INTEGER,
  starts_at DATETIME NOT NULL,
  ends_at DATETIME NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  priority INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	targets := `
CREATE TABLE IF NOT EXISTS campaign_targets (
  id TEXT PRIMARY KEY,
  campaign_id TEXT NOT NULL,
  target_type TEXT NOT NULL,
  product_id TEXT,
  category_id TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(campaigns).Error)
	require.NoError(t, db.Exec(targets).Error)
	return db
}

func seedCampaign(t *testing.T, db *gorm.DB, merchantID uuid.UUID, startsAt, endsAt time.Time, active bool) *models.Campaign {
	t.Helper()

	campaign := &models.Campaign{
		ID:            uuid.New(),
		MerchantID:    merchantID,
		Title:         "Seasonal Sale",
		Type:          enums.DiscountTypePercentage,
		DiscountValue: 15,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		IsActive:      active,
	}
	// Select("*") forces zero-valued fields (is_active=false) past the
	// column defaults.
	require.NoError(t, db.Select("*").Create(campaign).Error)

	productID := uuid.New()
	target := &models.CampaignTarget{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		TargetType: enums.CampaignTargetProduct,
		ProductID:  &productID,
	}
	require.NoError(t, db.Create(target).Error)
	return campaign
}

func TestRepositoryListActiveForMerchant(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	merchantID := uuid.New()
	now := time.Now().UTC()
	ctx := context.Background()

	live := seedCampaign(t, db, merchantID, now.Add(-time.Hour), now.Add(time.Hour), true)
	seedCampaign(t, db, merchantID, now.Add(time.Hour), now.Add(2*time.Hour), true)
	seedCampaign(t, db, merchantID, now.Add(-2*time.Hour), now.Add(-time.Hour), true)
	seedCampaign(t, db, merchantID, now.Add(-time.Hour), now.Add(time.Hour), false)
	seedCampaign(t, db, uuid.New(), now.Add(-time.Hour), now.Add(time.Hour), true)

	listed, err := repo.ListActiveForMerchant(ctx, merchantID, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, live.ID, listed[0].ID)
	require.Len(t, listed[0].Targets, 1)
	assert.Equal(t, enums.CampaignTargetProduct, listed[0].Targets[0].TargetType)
}

func TestRepositoryListActiveIncludesWindowEdges(t *testing.T) {
	db := setupCampaignTestDB(t)
	repo := NewRepository(db)
	merchantID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	ctx := context.Background()

	edge := seedCampaign(t, db, merchantID, now, now, true)

	listed, err := repo.ListActiveForMerchant(ctx, merchantID, now)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, edge.ID, listed[0].ID)
}
