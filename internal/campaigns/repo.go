package campaigns

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db/models"
)

// Repository reads promotional campaigns for resolution. Campaign authoring
// goes through the merchant dashboard surface, not this package.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListActiveForMerchant returns every campaign whose window contains now and
// whose active flag is set, with targets preloaded. Callers filter by product
// membership; the window filter is the only part the database can answer
// cheaply.
func (r *Repository) ListActiveForMerchant(ctx context.Context, merchantID uuid.UUID, now time.Time) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Targets").
		Where("merchant_id = ? AND is_active = ? AND starts_at <= ? AND ends_at >= ?", merchantID, true, now, now).
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}
