package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopora/storefront-backend/internal/campaigns"
	"github.com/shopora/storefront-backend/internal/cart"
	"github.com/shopora/storefront-backend/internal/catalog"
	"github.com/shopora/storefront-backend/internal/discountcodes"
	"github.com/shopora/storefront-backend/internal/merchants"
	"github.com/shopora/storefront-backend/pkg/db/models"
	"github.com/shopora/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
	"github.com/shopora/storefront-backend/pkg/logger"
	"github.com/shopora/storefront-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes order finalization and the post-order commission flow.
type Service interface {
	Finalize(ctx context.Context, merchant *merchants.Context, sessionID string, input FinalizeInput) (*FinalizeResult, error)
	VerifyPayment(ctx context.Context, merchant *merchants.Context, input VerifyPaymentInput) (*models.Order, error)
	GetOrder(ctx context.Context, merchant *merchants.Context, userID, orderID uuid.UUID) (*models.Order, error)
	MarkCommissionPaid(ctx context.Context, merchantID, orderID uuid.UUID) (*models.Commission, error)
	CancelCommission(ctx context.Context, merchantID, orderID uuid.UUID) (*models.Commission, error)
}

type service struct {
	tx       txRunner
	repo     *Repository
	catalog  *catalog.Repository
	carts    cart.Service
	resolver campaigns.Resolver
	codes    discountcodes.Service
	gateway  PaymentGateway
	metrics  *metrics.CheckoutMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewService builds the checkout service. Metrics and logger are optional.
func NewService(
	tx txRunner,
	repo *Repository,
	catalogRepo *catalog.Repository,
	carts cart.Service,
	resolver campaigns.Resolver,
	codes discountcodes.Service,
	gateway PaymentGateway,
	checkoutMetrics *metrics.CheckoutMetrics,
	log *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("campaign resolver required")
	}
	if codes == nil {
		return nil, fmt.Errorf("discount code service required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		catalog:  catalogRepo,
		carts:    carts,
		resolver: resolver,
		codes:    codes,
		gateway:  gateway,
		metrics:  checkoutMetrics,
		log:      log,
		now:      time.Now,
	}, nil
}

type pricedLine struct {
	line            cart.Line
	selection       catalog.Selection
	campaign        *models.Campaign
	unitPrice       int
	discountPerUnit int
}

// Finalize turns a session cart into a persisted order inside one
// transaction: server-side re-pricing, discount code redemption, atomic stock
// consumption, and the commission and attribution snapshots. The cart is
// cleared only after the transaction commits.
func (s *service) Finalize(ctx context.Context, merchant *merchants.Context, sessionID string, input FinalizeInput) (*FinalizeResult, error) {
	started := time.Now()
	result, err := s.finalize(ctx, merchant, sessionID, input)
	if err != nil {
		s.metrics.ObserveFinalize("failure", time.Since(started))
		return nil, err
	}
	s.metrics.ObserveFinalize("success", time.Since(started))
	return result, nil
}

func (s *service) finalize(ctx context.Context, merchant *merchants.Context, sessionID string, input FinalizeInput) (*FinalizeResult, error) {
	if merchant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant context is required")
	}
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	existing, err := s.repo.FindBySession(ctx, merchant.MerchantID, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already finalized").
			WithReason(pkgerrors.ReasonOrderAlreadyFinalized)
	}

	session, err := s.carts.Snapshot(ctx, merchant, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var result *FinalizeResult
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)
		now := s.now()

		lines, totalAmount, err := s.priceLines(ctx, catalogRepo, merchant, session, now)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		var validation *discountcodes.Validation
		discountAmount := 0
		if input.DiscountCode != nil && *input.DiscountCode != "" {
			validation, err = s.codes.Validate(ctx, merchant.MerchantID, input.UserID, *input.DiscountCode, totalAmount, now)
			if err != nil {
				s.metrics.IncCodeValidation("rejected")
				return err
			}
			s.metrics.IncCodeValidation("accepted")
			discountAmount = validation.DiscountAmount
		}

		for _, priced := range lines {
			if priced.selection.Variant != nil {
				err = catalogRepo.DecrementVariantStock(ctx, priced.selection.Variant.ID, priced.line.Quantity)
			} else {
				err = catalogRepo.DecrementStock(ctx, priced.line.ProductID, priced.line.Quantity)
			}
			if err != nil {
				return err
			}
		}

		order := &models.Order{
			ID:             uuid.New(),
			MerchantID:     merchant.MerchantID,
			UserID:         input.UserID,
			CartSessionID:  sessionID,
			TotalAmount:    totalAmount,
			DiscountAmount: discountAmount,
			FinalAmount:    totalAmount - discountAmount,
			DeliveryFee:    merchant.DeliveryFee,
			Status:         enums.OrderStatusPending,
		}
		if validation != nil {
			order.DiscountCodeID = &validation.Code.ID
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		items, sales := buildSnapshots(order, merchant.MerchantID, lines)
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return err
		}
		if err := repo.CreateCampaignSales(ctx, sales); err != nil {
			return err
		}

		var commission *models.Commission
		if merchant.CommissionRate != nil {
			commission = &models.Commission{
				ID:         uuid.New(),
				OrderID:    order.ID,
				MerchantID: merchant.MerchantID,
				Amount:     commissionAmount(order.FinalAmount, *merchant.CommissionRate),
				Percentage: *merchant.CommissionRate,
				Status:     enums.CommissionStatusPending,
			}
			if err := repo.CreateCommission(ctx, commission); err != nil {
				return err
			}
		}

		if validation != nil {
			if err := s.codes.Consume(ctx, tx, validation, input.UserID, order.ID); err != nil {
				return err
			}
		}

		order.Items = items
		result = &FinalizeResult{
			Order:         order,
			Commission:    commission,
			CampaignSales: sales,
			AmountPayable: order.FinalAmount + order.DeliveryFee,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.carts.Clear(ctx, merchant, sessionID); err != nil && s.log != nil {
		s.log.Error(ctx, "clearing cart after finalization", err)
	}
	return result, nil
}

// priceLines re-prices the session server side. Stale lines (vanished or
// inactive products, dropped variants) are skipped, matching the summary
// behavior the shopper last saw.
func (s *service) priceLines(ctx context.Context, catalogRepo *catalog.Repository, merchant *merchants.Context, session *cart.Session, now time.Time) ([]pricedLine, int, error) {
	lines := make([]pricedLine, 0, len(session.Lines))
	total := 0

	for _, line := range session.Lines {
		product, err := catalogRepo.FindByID(ctx, merchant.MerchantID, line.ProductID)
		if err != nil {
			if pkgerrors.HasReason(err, pkgerrors.ReasonProductNotFound) {
				continue
			}
			return nil, 0, err
		}
		if !product.IsActive {
			continue
		}

		var selection catalog.Selection
		if merchant.VariantsEnabled {
			selection, err = catalog.Select(product, line.ColorID, line.SizeID)
			if err != nil {
				if pkgerrors.As(err) != nil {
					continue
				}
				return nil, 0, err
			}
		} else {
			selection = catalog.Selection{Product: product}
		}

		campaign, err := s.resolver.Resolve(ctx, merchant, product, now)
		if err != nil {
			return nil, 0, err
		}
		unitPrice := selection.Price()
		discountPerUnit := s.resolver.DiscountFor(campaign, unitPrice)

		lines = append(lines, pricedLine{
			line:            line,
			selection:       selection,
			campaign:        campaign,
			unitPrice:       unitPrice,
			discountPerUnit: discountPerUnit,
		})
		total += (unitPrice - discountPerUnit) * line.Quantity
	}
	return lines, total, nil
}

func buildSnapshots(order *models.Order, merchantID uuid.UUID, lines []pricedLine) ([]models.OrderItem, []models.CampaignSale) {
	items := make([]models.OrderItem, 0, len(lines))
	var sales []models.CampaignSale

	for _, priced := range lines {
		item := models.OrderItem{
			ID:                     uuid.New(),
			OrderID:                order.ID,
			ProductID:              priced.line.ProductID,
			Title:                  priced.selection.Product.Title,
			Quantity:               priced.line.Quantity,
			OriginalPrice:          priced.unitPrice,
			CampaignDiscountAmount: priced.discountPerUnit,
			LineTotal:              (priced.unitPrice - priced.discountPerUnit) * priced.line.Quantity,
		}
		if priced.selection.Variant != nil {
			variantID := priced.selection.Variant.ID
			item.VariantID = &variantID
			if priced.selection.Variant.Color != nil {
				label := priced.selection.Variant.Color.Title
				item.ColorLabel = &label
			}
			if priced.selection.Variant.Size != nil {
				label := priced.selection.Variant.Size.Title
				item.SizeLabel = &label
			}
		}
		if priced.campaign != nil && priced.discountPerUnit > 0 {
			campaignID := priced.campaign.ID
			item.CampaignID = &campaignID
			sales = append(sales, models.CampaignSale{
				ID:             uuid.New(),
				MerchantID:     merchantID,
				CampaignID:     campaignID,
				OrderID:        order.ID,
				OrderItemID:    item.ID,
				ProductID:      priced.line.ProductID,
				OriginalPrice:  priced.unitPrice,
				DiscountAmount: priced.discountPerUnit,
				FinalPrice:     priced.unitPrice - priced.discountPerUnit,
				Quantity:       priced.line.Quantity,
				TotalDiscount:  priced.discountPerUnit * priced.line.Quantity,
			})
		}
		items = append(items, item)
	}
	return items, sales
}

// commissionAmount rounds half away from zero, matching how the platform
// settles fractional minor units.
func commissionAmount(finalAmount int, rate decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(finalAmount)).
		Mul(rate).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart())
}

// VerifyPayment asks the gateway whether the payable amount was collected and
// moves the order out of pending accordingly.
func (s *service) VerifyPayment(ctx context.Context, merchant *merchants.Context, input VerifyPaymentInput) (*models.Order, error) {
	if merchant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant context is required")
	}
	order, err := s.repo.FindOrderForUser(ctx, merchant.MerchantID, input.UserID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not pending")
	}

	verified, err := s.gateway.VerifyPayment(ctx, order.ID, order.FinalAmount+order.DeliveryFee, input.Reference)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway verification failed")
	}

	status := enums.OrderStatusFailed
	if verified {
		status = enums.OrderStatusPaid
	}
	if err := s.repo.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// GetOrder loads one order for display, enforcing tenant and user scope.
func (s *service) GetOrder(ctx context.Context, merchant *merchants.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if merchant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant context is required")
	}
	return s.repo.FindOrderForUser(ctx, merchant.MerchantID, userID, orderID)
}

// MarkCommissionPaid settles a pending commission.
func (s *service) MarkCommissionPaid(ctx context.Context, merchantID, orderID uuid.UUID) (*models.Commission, error) {
	return s.transitionCommission(ctx, merchantID, orderID, enums.CommissionStatusPaid)
}

// CancelCommission voids a pending commission.
func (s *service) CancelCommission(ctx context.Context, merchantID, orderID uuid.UUID) (*models.Commission, error) {
	return s.transitionCommission(ctx, merchantID, orderID, enums.CommissionStatusCanceled)
}

func (s *service) transitionCommission(ctx context.Context, merchantID, orderID uuid.UUID, to enums.CommissionStatus) (*models.Commission, error) {
	commission, err := s.repo.FindCommissionByOrder(ctx, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.TransitionCommission(ctx, commission.ID, to); err != nil {
		return nil, err
	}
	commission.Status = to
	return commission, nil
}
