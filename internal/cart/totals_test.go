package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exhibit/storefront/internal/domain"
	"exhibit/storefront/internal/pricing"
)

func TestTotalPriceAcrossOptions(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: "TENSION-90", Price: "RM 400.00", PriceOption: "Double Sided", Quantity: 2},
		{ProductID: "TENSION-90", Price: "RM 300.00", PriceOption: "Single Sided", Quantity: 1},
		{ProductID: "POP-UP-2X3", Price: "RM 1,500.00", Quantity: 1},
		{ProductID: "HARD-CASING", Price: "RM 500.00", PriceOption: "With Print", Quantity: 3},
	}

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	assert.Equal(t, 7, totalItems)

	// 400×2 + 300×1 + 1,500×1 + 500×3
	total := TotalPrice(items)
	assert.Equal(t, 4100.0, total)
	assert.Equal(t, "RM 4,100.00", pricing.FormatPrice("RM 4100.00"))
}

func TestTotalPriceUnparseableCountsZero(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: "1", Price: "Contact us for pricing", Quantity: 4},
		{ProductID: "2", Price: "RM 250.00", Quantity: 2},
	}
	assert.Equal(t, 500.0, TotalPrice(items))
}

func TestTotalPriceEmptyCart(t *testing.T) {
	assert.Equal(t, 0.0, TotalPrice(nil))
}

func TestPerUnitPrice(t *testing.T) {
	item := domain.CartItem{Price: "RM 1,500.00", Quantity: 3}
	assert.Equal(t, 1500.0, PerUnitPrice(item))
}

func TestPerUnitPriceZeroQuantityGuard(t *testing.T) {
	assert.Equal(t, 0.0, PerUnitPrice(domain.CartItem{Price: "RM 400.00"}))
}
