package campaigns

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/internal/merchants"
	"github.com/shopora/storefront-backend/internal/pricing"
	"github.com/shopora/storefront-backend/pkg/db/models"
)

// Resolver picks the single campaign that applies to a product at a point in
// time. Overlapping campaigns never stack; the winner is chosen by priority
// and the tie-break below.
type Resolver interface {
	Resolve(ctx context.Context, merchant *merchants.Context, product *models.Product, now time.Time) (*models.Campaign, error)
	DiscountFor(campaign *models.Campaign, unitPrice int) int
}

type campaignLister interface {
	ListActiveForMerchant(ctx context.Context, merchantID uuid.UUID, now time.Time) ([]models.Campaign, error)
}

type resolver struct {
	repo campaignLister
}

// NewResolver builds the campaign resolver.
func NewResolver(repo campaignLister) (Resolver, error) {
	if repo == nil {
		return nil, errors.New("campaigns: repository is required")
	}
	return &resolver{repo: repo}, nil
}

// Resolve returns the winning campaign for the product, or nil when none
// applies. Merchants whose plan has campaigns disabled always resolve to nil,
// even when matching campaign rows exist.
func (r *resolver) Resolve(ctx context.Context, merchant *merchants.Context, product *models.Product, now time.Time) (*models.Campaign, error) {
	if merchant == nil || product == nil {
		return nil, errors.New("campaigns: merchant and product are required")
	}
	if !merchant.CampaignsEnabled {
		return nil, nil
	}

	candidates, err := r.repo.ListActiveForMerchant(ctx, merchant.MerchantID, now)
	if err != nil {
		return nil, err
	}

	matching := candidates[:0:0]
	for _, campaign := range candidates {
		if campaignMatches(campaign, product) {
			matching = append(matching, campaign)
		}
	}
	if len(matching) == 0 {
		return nil, nil
	}

	sort.Slice(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})

	winner := matching[0]
	return &winner, nil
}

// DiscountFor computes the per-unit discount the campaign grants at the given
// unit price. A nil campaign grants nothing.
func (r *resolver) DiscountFor(campaign *models.Campaign, unitPrice int) int {
	if campaign == nil {
		return 0
	}
	return pricing.Discount(unitPrice, campaign.Type, campaign.DiscountValue, campaign.MaxDiscountAmount)
}

func campaignMatches(campaign models.Campaign, product *models.Product) bool {
	for _, row := range campaign.Targets {
		target, ok := TargetFromModel(row)
		if !ok {
			continue
		}
		if target.Matches(product) {
			return true
		}
	}
	return false
}
