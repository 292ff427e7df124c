package checkout

import (
	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/pkg/db/models"
)

// FinalizeInput is the payload for turning a session cart into an order.
// UserID comes from the request context, not the body.
type FinalizeInput struct {
	UserID       uuid.UUID `json:"-"`
	DiscountCode *string   `json:"discount_code"`
}

// FinalizeResult is everything written during finalization.
type FinalizeResult struct {
	Order         *models.Order         `json:"order"`
	Commission    *models.Commission    `json:"commission,omitempty"`
	CampaignSales []models.CampaignSale `json:"campaign_sales,omitempty"`
	// AmountPayable is what the gateway will be asked to collect:
	// final amount plus the delivery fee.
	AmountPayable int `json:"amount_payable"`
}

// VerifyPaymentInput identifies the order whose payment should be confirmed.
type VerifyPaymentInput struct {
	UserID    uuid.UUID `json:"-"`
	OrderID   uuid.UUID `json:"order_id" validate:"required"`
	Reference string    `json:"reference"`
}
