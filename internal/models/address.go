// internal/models/address.go
package models

import (
	"github.com/google/uuid"
)

// Address is a reusable shipping destination owned by a user. Orders never
// reference an Address row directly; they embed a JSON snapshot at creation
// time so later edits or deletes cannot alter order history.
type Address struct {
	BaseModel
	UserID         uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	RecipientName  string     `json:"recipient_name" gorm:"size:100;not null"`
	Phone          string     `json:"phone" gorm:"size:30;not null"`
	WhatsApp       string     `json:"whatsapp" gorm:"size:30"`
	Street         string     `json:"street" gorm:"size:255;not null"`
	City           string     `json:"city" gorm:"size:100;not null"`
	State          string     `json:"state" gorm:"size:100"`
	Zip            string     `json:"zip" gorm:"size:20"`
	Country        string     `json:"country" gorm:"size:100;not null"`
	IsDefault      bool       `json:"is_default" gorm:"default:false"`
	ShippingRuleID *uuid.UUID `json:"shipping_rule_id" gorm:"type:uuid"`

	// Relationships
	User         User          `json:"-" gorm:"foreignKey:UserID"`
	ShippingRule *ShippingRule `json:"shipping_rule,omitempty" gorm:"foreignKey:ShippingRuleID"`
}

// Snapshot flattens the address into the JSONB value embedded on orders.
func (a *Address) Snapshot() JSONB {
	return JSONB{
		"recipient_name": a.RecipientName,
		"phone":          a.Phone,
		"whatsapp":       a.WhatsApp,
		"street":         a.Street,
		"city":           a.City,
		"state":          a.State,
		"zip":            a.Zip,
		"country":        a.Country,
	}
}

// ShippingRule maps a destination to a shipping cost. City is nullable: a
// NULL city row is the country-wide fallback. FreeOverAmount, when set,
// waives the cost once the order subtotal reaches it.
type ShippingRule struct {
	BaseModel
	Country        string   `json:"country" gorm:"size:100;not null;index"`
	City           *string  `json:"city,omitempty" gorm:"size:100"`
	Price          float64  `json:"price" gorm:"type:decimal(12,2);not null"`
	FreeOverAmount *float64 `json:"free_over_amount,omitempty" gorm:"type:decimal(12,2)"`
	IsActive       bool     `json:"is_active" gorm:"default:true;index"`
}

// CostFor applies the free-over threshold against an order subtotal.
func (r *ShippingRule) CostFor(subtotal float64) float64 {
	if r.FreeOverAmount != nil && subtotal >= *r.FreeOverAmount {
		return 0
	}
	return r.Price
}
