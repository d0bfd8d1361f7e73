// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order is immutable after creation apart from its status fields. The
// shipping address lives in ShippingAddress as a denormalized snapshot and
// every line is a frozen OrderItem copy, so product and address edits never
// rewrite history.
type Order struct {
	BaseModel
	UserID          uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	TotalAmount     float64       `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	ShippingAmount  float64       `json:"shipping_amount" gorm:"type:decimal(12,2);not null"`
	Currency        string        `json:"currency" gorm:"size:3;not null;default:'EGP'"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod   PaymentMethod `json:"payment_method" gorm:"type:varchar(20);default:'cod'"`
	ShippingAddress JSONB         `json:"shipping_address" gorm:"type:jsonb;not null"`
	ShippingRuleID  uuid.UUID     `json:"shipping_rule_id" gorm:"type:uuid;not null"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots one line at purchase time. ProductID is kept for
// reference only; there is no live join back to the catalog row.
type OrderItem struct {
	BaseModel
	OrderID           uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	ProductName       string    `json:"product_name" gorm:"size:255;not null"`
	SKU               string    `json:"sku" gorm:"size:40;not null"`
	Image             string    `json:"image" gorm:"size:500"`
	UnitPrice         float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Quantity          int       `json:"quantity" gorm:"not null"`
	Color             string    `json:"color" gorm:"size:100;not null;default:''"`
	IsCustomized      bool      `json:"is_customized" gorm:"default:false"`
	CustomizationNote string    `json:"customization_note" gorm:"size:500;not null;default:''"`
	LineTotal         float64   `json:"line_total" gorm:"type:decimal(12,2);not null"`
}

// CanTransition is the order status state machine. Delivered and cancelled
// are terminal; everything else moves strictly forward.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	allowed, ok := orderStatusTransitions[s]
	if !ok {
		return false
	}
	for _, next := range allowed {
		if next == to {
			return true
		}
	}
	return false
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

// ValidPaymentStatus reports whether s is one of the known payment statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
