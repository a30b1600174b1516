package cart

import (
	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/pricing"
)

// TotalPrice sums price × quantity across the cart lines. Lines whose
// price string carries no parseable number contribute zero; the sum is
// raw and unformatted, display goes through pricing.FormatPrice.
func TotalPrice(items []domain.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += pricing.AmountOf(item.Price) * float64(item.Quantity)
	}
	return total
}

// PerUnitPrice is the line total divided by its quantity, for itemized
// display. Quantity is >= 1 by cart invariant; the zero guard is
// validation only.
func PerUnitPrice(item domain.CartItem) float64 {
	if item.Quantity <= 0 {
		return 0
	}
	return pricing.AmountOf(item.Price)
}
