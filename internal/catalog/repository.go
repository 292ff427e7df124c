package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Repository exposes catalog reads plus the two conditional stock writes the
// checkout path needs. Everything else that mutates the catalog lives in the
// catalog-management surface, outside this service.
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

// FindByID loads a product with variants (and their color/size labels).
func (r *Repository) FindByID(ctx context.Context, merchantID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Color").
		Preload("Variants.Size").
		First(&product, "id = ? AND merchant_id = ?", id, merchantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithReason(pkgerrors.ReasonProductNotFound)
		}
		return nil, err
	}
	return &product, nil
}

// FindCategory loads one merchant-scoped category.
func (r *Repository) FindCategory(ctx context.Context, merchantID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		First(&category, "id = ? AND merchant_id = ?", id, merchantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

// DecrementStock consumes qty units of product-level stock. The availability
// check and the write are a single conditional UPDATE so two concurrent
// checkouts can never both consume the last unit. Returns the remaining
// quantity inside an insufficient-stock error when the condition fails.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.insufficientProductStock(ctx, productID)
	}
	return nil
}

// DecrementVariantStock consumes qty units of a variant's stock with the same
// conditional-update contract as DecrementStock.
func (r *Repository) DecrementVariantStock(ctx context.Context, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.insufficientVariantStock(ctx, variantID)
	}
	return nil
}

func (r *Repository) insufficientProductStock(ctx context.Context, productID uuid.UUID) error {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("stock").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithReason(pkgerrors.ReasonProductNotFound)
		}
		return err
	}
	return InsufficientStock(product.Stock)
}

func (r *Repository) insufficientVariantStock(ctx context.Context, variantID uuid.UUID) error {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Select("stock").
		First(&variant, "id = ?", variantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
				WithReason(pkgerrors.ReasonVariantNotAvailable)
		}
		return err
	}
	return InsufficientStock(variant.Stock)
}

// InsufficientStock builds the stock rejection carrying the quantity still
// available so callers can present an actionable message.
func InsufficientStock(available int) error {
	// Stock can drift below a cart line's quantity between add and
	// re-check; never report a negative availability.
	if available < 0 {
		available = 0
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
		WithReason(pkgerrors.ReasonInsufficientStock).
		WithDetails(map[string]any{"available": available})
}
