package campaigns

import (
	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/db/models"
	"github.com/shopora/storefront-backend/pkg/enums"
)

// Target is the in-memory form of a campaign target: exactly one of the two
// constructors produces it, so a Target always points at one thing.
type Target struct {
	kind enums.CampaignTargetType
	id   uuid.UUID
}

// ProductTarget points at a single product.
func ProductTarget(productID uuid.UUID) Target {
	return Target{kind: enums.CampaignTargetProduct, id: productID}
}

// CategoryTarget points at every product in a category.
func CategoryTarget(categoryID uuid.UUID) Target {
	return Target{kind: enums.CampaignTargetCategory, id: categoryID}
}

// Kind tells which constructor built the target.
func (t Target) Kind() enums.CampaignTargetType {
	return t.kind
}

// ID is the product or category the target points at, depending on Kind.
func (t Target) ID() uuid.UUID {
	return t.id
}

// Matches reports whether the target covers the given product.
func (t Target) Matches(product *models.Product) bool {
	switch t.kind {
	case enums.CampaignTargetProduct:
		return t.id == product.ID
	case enums.CampaignTargetCategory:
		return product.CategoryID != nil && t.id == *product.CategoryID
	default:
		return false
	}
}

// TargetFromModel converts a stored target row, skipping malformed rows where
// the ID for the declared type is absent.
func TargetFromModel(row models.CampaignTarget) (Target, bool) {
	switch row.TargetType {
	case enums.CampaignTargetProduct:
		if row.ProductID == nil {
			return Target{}, false
		}
		return ProductTarget(*row.ProductID), true
	case enums.CampaignTargetCategory:
		if row.CategoryID == nil {
			return Target{}, false
		}
		return CategoryTarget(*row.CategoryID), true
	default:
		return Target{}, false
	}
}
