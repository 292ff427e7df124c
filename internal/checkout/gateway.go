package checkout

import (
	"context"

	"github.com/google/uuid"
)

// PaymentGateway is the opaque external payment service. It is consulted
// strictly after the payable amount is fixed; nothing in the pricing path
// calls out to it.
type PaymentGateway interface {
	// VerifyPayment reports whether the gateway has collected the given
	// amount for the order.
	VerifyPayment(ctx context.Context, orderID uuid.UUID, amount int, reference string) (bool, error)
}

// StaticGateway answers every verification with a fixed outcome. Used in
// development and tests.
type StaticGateway struct {
	Verified bool
}

func (g StaticGateway) VerifyPayment(context.Context, uuid.UUID, int, string) (bool, error) {
	return g.Verified, nil
}
