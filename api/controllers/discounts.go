package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shopora/storefront-backend/api/middleware"
	"github.com/shopora/storefront-backend/api/responses"
	"github.com/shopora/storefront-backend/api/validators"
	cartsvc "github.com/shopora/storefront-backend/internal/cart"
	"github.com/shopora/storefront-backend/internal/discountcodes"
	"github.com/shopora/storefront-backend/pkg/enums"
	pkgerrors "github.com/shopora/storefront-backend/pkg/errors"
	"github.com/shopora/storefront-backend/pkg/logger"
)

type validateCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type validateCodeResponse struct {
	Code           string             `json:"code"`
	Type           enums.DiscountType `json:"type"`
	Value          int                `json:"value"`
	DiscountAmount int                `json:"discount_amount"`
	Subtotal       int                `json:"subtotal"`
}

// DiscountCodeValidate previews a code against the session cart's current
// total without redeeming it.
func DiscountCodeValidate(codes discountcodes.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchant := middleware.MerchantFromContext(r.Context())
		sessionID := middleware.SessionIDFromContext(r.Context())

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity"))
			return
		}

		var payload validateCodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		now := time.Now().UTC()
		summary, err := carts.Summary(r.Context(), merchant, sessionID, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		validation, err := codes.Validate(r.Context(), merchant.MerchantID, userID, payload.Code, summary.Total, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, validateCodeResponse{
			Code:           validation.Code.Code,
			Type:           validation.Code.Type,
			Value:          validation.Code.Value,
			DiscountAmount: validation.DiscountAmount,
			Subtotal:       summary.Total,
		})
	}
}
