package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/internal/merchants"
	"github.com/shopora/storefront-backend/pkg/db/models"
	"github.com/shopora/storefront-backend/pkg/enums"
)

type stubLister struct {
	campaigns []models.Campaign
	err       error
}

func (s *stubLister) ListActiveForMerchant(context.Context, uuid.UUID, time.Time) ([]models.Campaign, error) {
	return s.campaigns, s.err
}

func campaignFor(productID uuid.UUID, priority int, created time.Time) models.Campaign {
	return models.Campaign{
		ID:            uuid.New(),
		Title:         "test campaign",
		Type:          enums.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
		Priority:      priority,
		CreatedAt:     created,
		Targets: []models.CampaignTarget{
			{TargetType: enums.CampaignTargetProduct, ProductID: &productID},
		},
	}
}

func merchantCtx(campaignsEnabled bool) *merchants.Context {
	return &merchants.Context{MerchantID: uuid.New(), CampaignsEnabled: campaignsEnabled}
}

func TestResolveHighestPriorityWins(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	now := time.Now()

	low := campaignFor(product.ID, 1, now.Add(-time.Hour))
	high := campaignFor(product.ID, 5, now.Add(-time.Minute))

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{low, high}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	winner, err := r.Resolve(context.Background(), merchantCtx(true), product, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner == nil || winner.ID != high.ID {
		t.Fatalf("expected high-priority campaign to win, got %+v", winner)
	}
}

func TestResolveTieBreakIsDeterministic(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	now := time.Now()
	created := now.Add(-time.Hour)

	a := campaignFor(product.ID, 3, created)
	b := campaignFor(product.ID, 3, created)

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{a, b}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	first, err := r.Resolve(context.Background(), merchantCtx(true), product, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	rReversed, err := NewResolver(&stubLister{campaigns: []models.Campaign{b, a}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	second, err := rReversed.Resolve(context.Background(), merchantCtx(true), product, now)
	if err != nil {
		t.Fatalf("resolve reversed: %v", err)
	}

	if first == nil || second == nil || first.ID != second.ID {
		t.Fatalf("expected the same winner regardless of input order, got %v and %v", first, second)
	}
}

func TestResolveOlderCampaignBreaksPriorityTie(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	now := time.Now()

	older := campaignFor(product.ID, 3, now.Add(-2*time.Hour))
	newer := campaignFor(product.ID, 3, now.Add(-time.Hour))

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{newer, older}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	winner, err := r.Resolve(context.Background(), merchantCtx(true), product, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner == nil || winner.ID != older.ID {
		t.Fatal("expected the older campaign to win the tie")
	}
}

func TestResolveCategoryTarget(t *testing.T) {
	t.Parallel()

	categoryID := uuid.New()
	product := &models.Product{ID: uuid.New(), CategoryID: &categoryID}
	now := time.Now()

	campaign := models.Campaign{
		ID:            uuid.New(),
		Type:          enums.DiscountTypeFixed,
		DiscountValue: 5000,
		IsActive:      true,
		Targets: []models.CampaignTarget{
			{TargetType: enums.CampaignTargetCategory, CategoryID: &categoryID},
		},
	}

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{campaign}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	winner, err := r.Resolve(context.Background(), merchantCtx(true), product, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner == nil || winner.ID != campaign.ID {
		t.Fatal("expected category-targeted campaign to apply")
	}

	uncategorized := &models.Product{ID: uuid.New()}
	winner, err = r.Resolve(context.Background(), merchantCtx(true), uncategorized, now)
	if err != nil {
		t.Fatalf("resolve uncategorized: %v", err)
	}
	if winner != nil {
		t.Fatal("expected no campaign for a product outside the category")
	}
}

func TestResolveNoMatch(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	other := campaignFor(uuid.New(), 10, time.Now())

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{other}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	winner, err := r.Resolve(context.Background(), merchantCtx(true), product, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner != nil {
		t.Fatal("expected no winner for an untargeted product")
	}
}

func TestResolvePlanDisablesCampaigns(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	campaign := campaignFor(product.ID, 5, time.Now())

	r, err := NewResolver(&stubLister{campaigns: []models.Campaign{campaign}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	winner, err := r.Resolve(context.Background(), merchantCtx(false), product, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if winner != nil {
		t.Fatal("expected nil winner when the plan disables campaigns")
	}
}

func TestDiscountForNilCampaign(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(&stubLister{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	if got := r.DiscountFor(nil, 100000); got != 0 {
		t.Fatalf("expected zero discount, got %d", got)
	}

	cap := 20000
	campaign := &models.Campaign{
		Type:              enums.DiscountTypePercentage,
		DiscountValue:     30,
		MaxDiscountAmount: &cap,
	}
	if got := r.DiscountFor(campaign, 100000); got != 20000 {
		t.Fatalf("expected capped discount of 20000, got %d", got)
	}
}
