// internal/services/pricing.go
package services

import (
	"math"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
)

// CustomizationSurchargeRate is the markup applied to the unit price when a
// buyer asks for customization work.
const CustomizationSurchargeRate = 0.10

// RoundMoney rounds to the nearest whole currency unit. Every figure that
// reaches the database goes through this exactly once, so stored totals and
// recomputed totals can never drift.
func RoundMoney(amount float64) float64 {
	return math.Round(amount)
}

// LinePricing is the authoritative price breakdown for one order line. It is
// always derived from the live product row at transaction time; the prices a
// cart recorded at add-time are display snapshots and never feed into it.
type LinePricing struct {
	BasePrice     float64
	Customization float64
	UnitPrice     float64
	Quantity      int
	LineTotal     float64
}

// PriceLine computes the breakdown for quantity units of a product,
// optionally customized. The sale price wins only when it is actually lower
// than the list price.
func PriceLine(product *models.Product, quantity int, customized bool) LinePricing {
	base := product.EffectivePrice()

	var surcharge float64
	if customized {
		surcharge = base * CustomizationSurchargeRate
	}

	unit := RoundMoney(base + surcharge)

	return LinePricing{
		BasePrice:     RoundMoney(base),
		Customization: RoundMoney(surcharge),
		UnitPrice:     unit,
		Quantity:      quantity,
		LineTotal:     RoundMoney(unit * float64(quantity)),
	}
}
