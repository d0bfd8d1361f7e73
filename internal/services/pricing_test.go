// internal/services/pricing_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 100.0, RoundMoney(99.5))
	assert.Equal(t, 99.0, RoundMoney(99.4))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 5499.0, RoundMoney(5498.9))
}

func TestPriceLineBasic(t *testing.T) {
	product := &models.Product{Price: 4999}

	pricing := PriceLine(product, 1, false)

	assert.Equal(t, 4999.0, pricing.BasePrice)
	assert.Equal(t, 0.0, pricing.Customization)
	assert.Equal(t, 4999.0, pricing.UnitPrice)
	assert.Equal(t, 4999.0, pricing.LineTotal)
}

func TestPriceLineQuantity(t *testing.T) {
	product := &models.Product{Price: 1200}

	pricing := PriceLine(product, 3, false)

	assert.Equal(t, 1200.0, pricing.UnitPrice)
	assert.Equal(t, 3600.0, pricing.LineTotal)
}

func TestPriceLineCustomizationSurcharge(t *testing.T) {
	product := &models.Product{Price: 1000, Customizable: true}

	pricing := PriceLine(product, 1, true)

	assert.Equal(t, 100.0, pricing.Customization)
	assert.Equal(t, 1100.0, pricing.UnitPrice)
	assert.Equal(t, 1100.0, pricing.LineTotal)
}

func TestPriceLineCustomizationRounding(t *testing.T) {
	// 10% of 333 is 33.3; the unit price rounds to a whole amount
	product := &models.Product{Price: 333, Customizable: true}

	pricing := PriceLine(product, 2, true)

	assert.Equal(t, 366.0, pricing.UnitPrice)
	assert.Equal(t, 732.0, pricing.LineTotal)
}

func TestPriceLineUsesSalePriceWhenLower(t *testing.T) {
	product := &models.Product{Price: 2000, SalePrice: floatPtr(1500)}

	pricing := PriceLine(product, 1, false)

	assert.Equal(t, 1500.0, pricing.BasePrice)
	assert.Equal(t, 1500.0, pricing.UnitPrice)
}

func TestPriceLineIgnoresHigherSalePrice(t *testing.T) {
	product := &models.Product{Price: 2000, SalePrice: floatPtr(2500)}

	pricing := PriceLine(product, 1, false)

	assert.Equal(t, 2000.0, pricing.BasePrice)
}

func TestPriceLineSurchargeOnSalePrice(t *testing.T) {
	// The surcharge applies to the effective price, not the list price
	product := &models.Product{Price: 2000, SalePrice: floatPtr(1000), Customizable: true}

	pricing := PriceLine(product, 1, true)

	assert.Equal(t, 100.0, pricing.Customization)
	assert.Equal(t, 1100.0, pricing.UnitPrice)
}
