package merchants

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopora/storefront-backend/pkg/db/models"
)

// Context carries the tenant scope every pricing operation runs under. It is
// resolved once per request and passed explicitly so the core stays free of
// ambient globals.
type Context struct {
	MerchantID       uuid.UUID
	PlanID           string
	DeliveryFee      int
	CampaignsEnabled bool
	VariantsEnabled  bool
	CommissionRate   *decimal.Decimal
}

// FromModels maps a merchant and its plan into a request context.
func FromModels(merchant *models.Merchant, plan *models.Plan) Context {
	mc := Context{
		MerchantID:  merchant.ID,
		DeliveryFee: merchant.DeliveryFee,
	}
	if plan != nil {
		mc.PlanID = plan.ID
		mc.CampaignsEnabled = plan.CampaignsEnabled
		mc.VariantsEnabled = plan.VariantsEnabled
		if plan.CommissionRate != nil {
			rate := *plan.CommissionRate
			mc.CommissionRate = &rate
		}
	}
	return mc
}
