package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/internal/campaigns"
	"github.com/shopora/storefront-backend/internal/catalog"
	"github.com/shopora/storefront-backend/internal/merchants"
	"github.com/shopora/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
)

type productFinder interface {
	FindByID(ctx context.Context, merchantID, id uuid.UUID) (*models.Product, error)
}

// Service exposes session cart mutation and summary computation. Summaries
// never mutate the cart; add/update/remove are the only writers.
type Service interface {
	AddItem(ctx context.Context, merchant *merchants.Context, sessionID string, input AddItemInput) (*Summary, error)
	UpdateItem(ctx context.Context, merchant *merchants.Context, sessionID, key string, quantity int) (*Summary, error)
	RemoveItem(ctx context.Context, merchant *merchants.Context, sessionID, key string) (*Summary, error)
	Clear(ctx context.Context, merchant *merchants.Context, sessionID string) error
	Summary(ctx context.Context, merchant *merchants.Context, sessionID string, now time.Time) (*Summary, error)
	Snapshot(ctx context.Context, merchant *merchants.Context, sessionID string) (*Session, error)
}

type service struct {
	store    Store
	products productFinder
	resolver campaigns.Resolver
	now      func() time.Time
}

// NewService builds the cart aggregator.
func NewService(store Store, products productFinder, resolver campaigns.Resolver) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("campaign resolver required")
	}
	return &service{
		store:    store,
		products: products,
		resolver: resolver,
		now:      time.Now,
	}, nil
}

// AddItem validates stock and variant selection, then merges the quantity
// into the session line for the same product/color/size combination.
func (s *service) AddItem(ctx context.Context, merchant *merchants.Context, sessionID string, input AddItemInput) (*Summary, error) {
	if err := requireScope(merchant, sessionID); err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, merchant.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithReason(pkgerrors.ReasonProductNotFound)
	}

	colorID, sizeID := input.ColorID, input.SizeID
	if !merchant.VariantsEnabled {
		colorID, sizeID = nil, nil
	}
	selection, err := selectFor(merchant, product, colorID, sizeID)
	if err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, merchant.MerchantID, sessionID)
	if err != nil {
		return nil, err
	}

	key := LineKey(input.ProductID, colorID, sizeID)
	existing := 0
	if line := session.Find(key); line != nil {
		existing = line.Quantity
	}
	if existing+input.Quantity > selection.Stock() {
		return nil, catalog.InsufficientStock(selection.Stock() - existing)
	}

	session.Upsert(Line{
		Key:       key,
		ProductID: input.ProductID,
		ColorID:   colorID,
		SizeID:    sizeID,
		Quantity:  input.Quantity,
	})
	if err := s.store.Put(ctx, merchant.MerchantID, sessionID, session); err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, merchant, session, s.now())
}

// UpdateItem sets a line's absolute quantity. Zero removes the line.
func (s *service) UpdateItem(ctx context.Context, merchant *merchants.Context, sessionID, key string, quantity int) (*Summary, error) {
	if err := requireScope(merchant, sessionID); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	session, err := s.store.Get(ctx, merchant.MerchantID, sessionID)
	if err != nil {
		return nil, err
	}
	line := session.Find(key)
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	if quantity > 0 {
		product, err := s.products.FindByID(ctx, merchant.MerchantID, line.ProductID)
		if err != nil {
			return nil, err
		}
		selection, err := selectFor(merchant, product, line.ColorID, line.SizeID)
		if err != nil {
			return nil, err
		}
		if quantity > selection.Stock() {
			return nil, catalog.InsufficientStock(selection.Stock())
		}
	}

	session.SetQuantity(key, quantity)
	if err := s.store.Put(ctx, merchant.MerchantID, sessionID, session); err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, merchant, session, s.now())
}

// RemoveItem drops a line from the session cart.
func (s *service) RemoveItem(ctx context.Context, merchant *merchants.Context, sessionID, key string) (*Summary, error) {
	if err := requireScope(merchant, sessionID); err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, merchant.MerchantID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Remove(key) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	if err := s.store.Put(ctx, merchant.MerchantID, sessionID, session); err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, merchant, session, s.now())
}

// Clear deletes the whole session cart.
func (s *service) Clear(ctx context.Context, merchant *merchants.Context, sessionID string) error {
	if err := requireScope(merchant, sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, merchant.MerchantID, sessionID)
}

// Summary prices the cart at the given instant without mutating it.
func (s *service) Summary(ctx context.Context, merchant *merchants.Context, sessionID string, now time.Time) (*Summary, error) {
	if err := requireScope(merchant, sessionID); err != nil {
		return nil, err
	}
	session, err := s.store.Get(ctx, merchant.MerchantID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, merchant, session, now)
}

// Snapshot returns the raw session lines, for checkout to re-price inside
// its transaction.
func (s *service) Snapshot(ctx context.Context, merchant *merchants.Context, sessionID string) (*Session, error) {
	if err := requireScope(merchant, sessionID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, merchant.MerchantID, sessionID)
}

// buildSummary prices every line. Lines whose product has vanished, gone
// inactive, or lost the selected variant are dropped rather than failing the
// whole cart; a stale reference must not block the remaining items.
func (s *service) buildSummary(ctx context.Context, merchant *merchants.Context, session *Session, now time.Time) (*Summary, error) {
	summary := &Summary{Items: make([]SummaryItem, 0, len(session.Lines))}

	for _, line := range session.Lines {
		product, err := s.products.FindByID(ctx, merchant.MerchantID, line.ProductID)
		if err != nil {
			if pkgerrors.HasReason(err, pkgerrors.ReasonProductNotFound) {
				continue
			}
			return nil, err
		}
		if !product.IsActive {
			continue
		}
		selection, err := selectFor(merchant, product, line.ColorID, line.SizeID)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				continue
			}
			return nil, err
		}

		campaign, err := s.resolver.Resolve(ctx, merchant, product, now)
		if err != nil {
			return nil, err
		}

		unitPrice := selection.Price()
		discountPerUnit := s.resolver.DiscountFor(campaign, unitPrice)

		item := SummaryItem{
			Key:                 line.Key,
			ProductID:           product.ID,
			Title:               product.Title,
			Quantity:            line.Quantity,
			UnitPrice:           unitPrice,
			DiscountedUnitPrice: unitPrice - discountPerUnit,
			OriginalLineTotal:   unitPrice * line.Quantity,
			LineTotal:           (unitPrice - discountPerUnit) * line.Quantity,
			Stock:               selection.Stock(),
		}
		if selection.Variant != nil {
			if selection.Variant.Color != nil {
				title := selection.Variant.Color.Title
				item.Color = &title
			}
			if selection.Variant.Size != nil {
				title := selection.Variant.Size.Title
				item.Size = &title
			}
		}
		if campaign != nil && discountPerUnit > 0 {
			item.Campaign = &CampaignInfo{
				ID:              campaign.ID,
				Title:           campaign.Title,
				DiscountPerUnit: discountPerUnit,
			}
		}

		summary.Items = append(summary.Items, item)
		summary.Count += line.Quantity
		summary.OriginalTotal += item.OriginalLineTotal
		summary.Total += item.LineTotal
		summary.TotalDiscount += item.OriginalLineTotal - item.LineTotal
	}

	return summary, nil
}

// selectFor resolves a variant choice unless the merchant's plan disables
// variants, in which case every product prices and stocks at the base level.
func selectFor(merchant *merchants.Context, product *models.Product, colorID, sizeID *uuid.UUID) (catalog.Selection, error) {
	if !merchant.VariantsEnabled {
		return catalog.Selection{Product: product}, nil
	}
	return catalog.Select(product, colorID, sizeID)
}

func requireScope(merchant *merchants.Context, sessionID string) error {
	if merchant == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "merchant context is required")
	}
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
