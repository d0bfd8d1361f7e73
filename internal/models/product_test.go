// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func salePtr(v float64) *float64 { return &v }

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 2000.0, (&Product{Price: 2000}).EffectivePrice())
	assert.Equal(t, 1500.0, (&Product{Price: 2000, SalePrice: salePtr(1500)}).EffectivePrice())

	// A sale price that is not actually lower is ignored
	assert.Equal(t, 2000.0, (&Product{Price: 2000, SalePrice: salePtr(2500)}).EffectivePrice())
	assert.Equal(t, 2000.0, (&Product{Price: 2000, SalePrice: salePtr(2000)}).EffectivePrice())
}

func TestColorListContains(t *testing.T) {
	colors := ColorList{
		{Name: "Walnut", Hex: "#5d432c"},
		{Name: "Ivory", Hex: "#fffff0"},
	}

	assert.True(t, colors.Contains("Walnut"))
	assert.True(t, colors.Contains("walnut"))
	assert.True(t, colors.Contains("IVORY"))
	assert.False(t, colors.Contains("Oak"))
	assert.False(t, colors.Contains(""))
	assert.False(t, ColorList(nil).Contains("Walnut"))
}

func TestShippingRuleCostFor(t *testing.T) {
	flat := &ShippingRule{Price: 150}
	assert.Equal(t, 150.0, flat.CostFor(100))
	assert.Equal(t, 150.0, flat.CostFor(1000000))

	threshold := &ShippingRule{Price: 150, FreeOverAmount: salePtr(5000)}
	assert.Equal(t, 150.0, threshold.CostFor(4999))
	assert.Equal(t, 0.0, threshold.CostFor(5000))
	assert.Equal(t, 0.0, threshold.CostFor(9000))
}
