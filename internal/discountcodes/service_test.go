package discountcodes

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
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

func setupCodesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:codes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	codes := `
CREATE TABLE IF NOT EXISTS discount_codes (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL,
  code TEXT NOT NULL,
  type TEXT NOT NULL,
  value INTEGER NOT NULL,
  usage_limit INTEGER,
  used_count INTEGER NOT NULL DEFAULT 0,
  max_discount_amount INTEGER,
  min_order_amount INTEGER,
  starts_at DATETIME,
  expires_at DATETIME,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (merchant_id, code)
);`
	usages := `
CREATE TABLE IF NOT EXISTS discount_code_usages (
  id TEXT PRIMARY KEY,
  discount_code_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  order_id TEXT NOT NULL,
  discount_amount INTEGER NOT NULL,
  created_at DATETIME,
  UNIQUE (discount_code_id, user_id)
);`
	require.NoError(t, db.Exec(codes).Error)
	require.NoError(t, db.Exec(usages).Error)
	return db
}

func newCodesService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func seedCode(t *testing.T, db *gorm.DB, code *models.DiscountCode) *models.DiscountCode {
	t.Helper()
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	code.Code = Normalize(code.Code)
	// Select("*") forces zero-valued fields (is_active=false) past the
	// column defaults.
	require.NoError(t, db.Select("*").Create(code).Error)
	return code
}

func TestValidateFixedCodeAgainstMinimum(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	userID := uuid.New()
	now := time.Now()
	ctx := context.Background()

	minOrder := 50000
	seedCode(t, db, &models.DiscountCode{
		MerchantID:     merchantID,
		Code:           "FIXED10K",
		Type:           enums.DiscountTypeFixed,
		Value:          10000,
		MinOrderAmount: &minOrder,
		IsActive:       true,
	})

	_, err := svc.Validate(ctx, merchantID, userID, "FIXED10K", 40000, now)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonOrderBelowMinimum))

	validation, err := svc.Validate(ctx, merchantID, userID, "FIXED10K", 60000, now)
	require.NoError(t, err)
	assert.Equal(t, 10000, validation.DiscountAmount)
}

func TestValidateNormalizesCode(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	ctx := context.Background()

	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "WELCOME",
		Type:       enums.DiscountTypePercentage,
		Value:      10,
		IsActive:   true,
	})

	validation, err := svc.Validate(ctx, merchantID, uuid.New(), "  welcome ", 100000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 10000, validation.DiscountAmount)
}

func TestValidateRejectsMissingInactiveAndWindow(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	userID := uuid.New()
	now := time.Now()
	ctx := context.Background()

	_, err := svc.Validate(ctx, merchantID, userID, "NOPE", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeInvalid))

	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "OFF",
		Type:       enums.DiscountTypePercentage,
		Value:      10,
		IsActive:   false,
	})
	_, err = svc.Validate(ctx, merchantID, userID, "OFF", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeInvalid))

	future := now.Add(time.Hour)
	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "SOON",
		Type:       enums.DiscountTypePercentage,
		Value:      10,
		StartsAt:   &future,
		IsActive:   true,
	})
	_, err = svc.Validate(ctx, merchantID, userID, "SOON", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeInvalid))

	past := now.Add(-time.Hour)
	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "LATE",
		Type:       enums.DiscountTypePercentage,
		Value:      10,
		ExpiresAt:  &past,
		IsActive:   true,
	})
	_, err = svc.Validate(ctx, merchantID, userID, "LATE", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeInvalid))
}

func TestValidateUsageLimitAndPerUserChecks(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	userID := uuid.New()
	now := time.Now()
	ctx := context.Background()

	limit := 1
	code := seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "LIMITED",
		Type:       enums.DiscountTypePercentage,
		Value:      10,
		UsageLimit: &limit,
		UsedCount:  1,
		IsActive:   true,
	})

	_, err := svc.Validate(ctx, merchantID, userID, "LIMITED", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeLimit))

	require.NoError(t, db.Model(code).UpdateColumn("used_count", 0).Error)
	require.NoError(t, db.Create(&models.DiscountCodeUsage{
		ID:             uuid.New(),
		DiscountCodeID: code.ID,
		UserID:         userID,
		OrderID:        uuid.New(),
		DiscountAmount: 10000,
	}).Error)

	_, err = svc.Validate(ctx, merchantID, userID, "LIMITED", 100000, now)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeUsed))

	validation, err := svc.Validate(ctx, merchantID, uuid.New(), "LIMITED", 100000, now)
	require.NoError(t, err)
	assert.Equal(t, 10000, validation.DiscountAmount)
}

func TestValidatePerformsNoWrites(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	ctx := context.Background()

	code := seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "PREVIEW",
		Type:       enums.DiscountTypeFixed,
		Value:      5000,
		IsActive:   true,
	})

	_, err := svc.Validate(ctx, merchantID, uuid.New(), "PREVIEW", 100000, time.Now())
	require.NoError(t, err)

	var reloaded models.DiscountCode
	require.NoError(t, db.First(&reloaded, "id = ?", code.ID).Error)
	assert.Equal(t, 0, reloaded.UsedCount)

	var usages int64
	require.NoError(t, db.Model(&models.DiscountCodeUsage{}).Count(&usages).Error)
	assert.Zero(t, usages)
}

func TestConsumeIncrementsAndGuardsLimit(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	now := time.Now()
	ctx := context.Background()

	limit := 1
	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "ONCE",
		Type:       enums.DiscountTypeFixed,
		Value:      5000,
		UsageLimit: &limit,
		IsActive:   true,
	})

	first, err := svc.Validate(ctx, merchantID, uuid.New(), "ONCE", 100000, now)
	require.NoError(t, err)
	require.NoError(t, svc.Consume(ctx, db, first, uuid.New(), uuid.New()))

	var reloaded models.DiscountCode
	require.NoError(t, db.First(&reloaded, "id = ?", first.Code.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)

	// Simulates losing the race: validation passed earlier, the counter is
	// exhausted by the time the consuming write runs.
	err = svc.Consume(ctx, db, first, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeLimit))
}

func TestConsumeRejectsSecondUseByUser(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	userID := uuid.New()
	now := time.Now()
	ctx := context.Background()

	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "REPEAT",
		Type:       enums.DiscountTypeFixed,
		Value:      5000,
		IsActive:   true,
	})

	validation, err := svc.Validate(ctx, merchantID, userID, "REPEAT", 100000, now)
	require.NoError(t, err)
	require.NoError(t, svc.Consume(ctx, db, validation, userID, uuid.New()))

	err = svc.Consume(ctx, db, validation, userID, uuid.New())
	require.Error(t, err)
	assert.True(t, pkgerrors.HasReason(err, pkgerrors.ReasonDiscountCodeUsed))
}

func TestValidateClampsDiscountToSubtotal(t *testing.T) {
	db := setupCodesTestDB(t)
	svc := newCodesService(t, db)
	merchantID := uuid.New()
	ctx := context.Background()

	seedCode(t, db, &models.DiscountCode{
		MerchantID: merchantID,
		Code:       "BIGFIXED",
		Type:       enums.DiscountTypeFixed,
		Value:      250000,
		IsActive:   true,
	})

	validation, err := svc.Validate(ctx, merchantID, uuid.New(), "BIGFIXED", 80000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 80000, validation.DiscountAmount)
}
