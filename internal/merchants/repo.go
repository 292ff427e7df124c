package merchants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Repository loads merchant tenants and their plans.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
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

// FindByID loads an active merchant with its plan preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).
		Preload("Plan").
		First(&merchant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, err
	}
	return &merchant, nil
}

// ContextFor resolves the tenant context for the given merchant id.
func (r *Repository) ContextFor(ctx context.Context, merchantID uuid.UUID) (*Context, error) {
	merchant, err := r.FindByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !merchant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "merchant is not active")
	}
	mc := FromModels(merchant, merchant.Plan)
	return &mc, nil
}
