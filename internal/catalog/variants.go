package catalog

import (
	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

// Selection identifies a purchasable unit inside a product: the product alone
// when it has no variants, or one concrete variant when it does.
type Selection struct {
	Product *models.Product
	Variant *models.ProductVariant
}

// Price is the amount a single unit sells for before campaigns: the variant
// override when one is set, the product base price otherwise.
func (s Selection) Price() int {
	if s.Variant != nil && s.Variant.Price != nil {
		return *s.Variant.Price
	}
	return s.Product.BasePrice
}

// Stock is the quantity available at this selection's level.
func (s Selection) Stock() int {
	if s.Variant != nil {
		return s.Variant.Stock
	}
	return s.Product.Stock
}

// Select resolves a color/size choice against a loaded product. A product
// with variants requires a complete choice along every axis it declares, and
// the chosen combination must exist. Products without variants reject any
// color or size input instead of silently ignoring it.
func Select(product *models.Product, colorID, sizeID *uuid.UUID) (Selection, error) {
	if product == nil {
		return Selection{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithReason(pkgerrors.ReasonProductNotFound)
	}

	if !product.HasVariants {
		if colorID != nil || sizeID != nil {
			return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "product has no variants").
				WithReason(pkgerrors.ReasonVariantNotAvailable)
		}
		return Selection{Product: product}, nil
	}

	if product.HasColors && colorID == nil {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "color selection required").
			WithReason(pkgerrors.ReasonVariantSelectionRequired)
	}
	if product.HasSizes && sizeID == nil {
		return Selection{}, pkgerrors.New(pkgerrors.CodeValidation, "size selection required").
			WithReason(pkgerrors.ReasonVariantSelectionRequired)
	}

	for i := range product.Variants {
		variant := &product.Variants[i]
		if !uuidPtrEqual(variant.ColorID, colorID) || !uuidPtrEqual(variant.SizeID, sizeID) {
			continue
		}
		return Selection{Product: product, Variant: variant}, nil
	}

	return Selection{}, pkgerrors.New(pkgerrors.CodeNotFound, "variant not available").
		WithReason(pkgerrors.ReasonVariantNotAvailable)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
