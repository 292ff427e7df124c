package cart

import (
	"github.com/google/uuid"
)

// AddItemInput is the payload for putting a product into a session cart.
type AddItemInput struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	ColorID   *uuid.UUID `json:"color_id"`
	SizeID    *uuid.UUID `json:"size_id"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
}

// CampaignInfo describes the promotion applied to a summary line.
type CampaignInfo struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	DiscountPerUnit int       `json:"discount_per_unit"`
}

// SummaryItem is one priced line of a cart summary. Field names are part of
// the client contract.
type SummaryItem struct {
	Key                 string        `json:"key"`
	ProductID           uuid.UUID     `json:"product_id"`
	Title               string        `json:"title"`
	Quantity            int           `json:"quantity"`
	Color               *string       `json:"color,omitempty"`
	Size                *string       `json:"size,omitempty"`
	UnitPrice           int           `json:"unit_price"`
	DiscountedUnitPrice int           `json:"discounted_unit_price"`
	OriginalLineTotal   int           `json:"original_line_total"`
	LineTotal           int           `json:"line_total"`
	Stock               int           `json:"stock"`
	Campaign            *CampaignInfo `json:"campaign,omitempty"`
}

// Summary is the aggregate view of a session cart after campaign resolution.
// The totals always satisfy total + total_discount == original_total.
type Summary struct {
	Items         []SummaryItem `json:"items"`
	Total         int           `json:"total"`
	Count         int           `json:"count"`
	OriginalTotal int           `json:"original_total"`
	TotalDiscount int           `json:"total_discount"`
}
