package pricing

import "github.com/shopora/storefront-backend/pkg/enums"

// Discount computes the discount amount for a base price in minor currency
// units. Percentage discounts floor toward zero and respect the optional cap;
// fixed discounts can never exceed the base price. The result always
// satisfies 0 <= discount <= base. Pure function: no I/O, no clock.
func Discount(base int, kind enums.DiscountType, value int, maxAmount *int) int {
	if base <= 0 || value <= 0 {
		return 0
	}

	var discount int
	switch kind {
	case enums.DiscountTypePercentage:
		discount = base * value / 100
		if maxAmount != nil && discount > *maxAmount {
			discount = *maxAmount
		}
	case enums.DiscountTypeFixed:
		discount = value
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > base {
		return base
	}
	return discount
}
