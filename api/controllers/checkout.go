package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/api/middleware"
	"github.com/shopora/storefront-backend/api/responses"
	"github.com/shopora/storefront-backend/api/validators"
	checkoutsvc "github.com/shopora/storefront-backend/internal/checkout"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
	"github.com/shopora/storefront-backend/pkg/logger"
)

// CheckoutFinalize converts the session cart into an order.
func CheckoutFinalize(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchant := middleware.MerchantFromContext(r.Context())
		sessionID := middleware.SessionIDFromContext(r.Context())

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity"))
			return
		}

		var payload checkoutsvc.FinalizeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.UserID = userID

		result, err := svc.Finalize(r.Context(), merchant, sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CheckoutVerifyPayment confirms or fails a pending order against the
// payment gateway.
func CheckoutVerifyPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchant := middleware.MerchantFromContext(r.Context())

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity"))
			return
		}

		var payload checkoutsvc.VerifyPaymentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.UserID = userID

		order, err := svc.VerifyPayment(r.Context(), merchant, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderGet returns an order scoped to the requesting shopper.
func OrderGet(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchant := middleware.MerchantFromContext(r.Context())

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetOrder(r.Context(), merchant, userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CommissionPay settles the referral commission recorded for an order.
func CommissionPay(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return commissionTransition(svc, logg, func(r *http.Request, orderID uuid.UUID) (any, error) {
		merchant := middleware.MerchantFromContext(r.Context())
		return svc.MarkCommissionPaid(r.Context(), merchant.MerchantID, orderID)
	})
}

// CommissionCancel voids the referral commission recorded for an order.
func CommissionCancel(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return commissionTransition(svc, logg, func(r *http.Request, orderID uuid.UUID) (any, error) {
		merchant := middleware.MerchantFromContext(r.Context())
		return svc.CancelCommission(r.Context(), merchant.MerchantID, orderID)
	})
}

func commissionTransition(svc checkoutsvc.Service, logg *logger.Logger, apply func(r *http.Request, orderID uuid.UUID) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		commission, err := apply(r, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, commission)
	}
}
