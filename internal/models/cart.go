// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// Cart is a one-per-user container, created lazily on first add.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	// Relationships
	User  User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is one line in a cart. Color and CustomizationNote are plain
// text columns with empty string meaning "none", so the composite unique
// index below keys real values rather than NULLs. Adding an identical
// (product, color, note) line increments quantity instead of inserting.
//
// PriceAtAdd and CustomizationPriceAtAdd are display snapshots taken when
// the line is created; order totals are always recomputed from the live
// product row, never from these.
type CartItem struct {
	BaseModel
	CartID                  uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_line"`
	ProductID               uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_line"`
	Quantity                int       `json:"quantity" gorm:"not null;default:1"`
	Color                   string    `json:"color" gorm:"size:100;not null;default:'';uniqueIndex:idx_cart_line"`
	IsCustomized            bool      `json:"is_customized" gorm:"default:false"`
	CustomizationNote       string    `json:"customization_note" gorm:"size:500;not null;default:'';uniqueIndex:idx_cart_line"`
	PriceAtAdd              float64   `json:"price_at_add" gorm:"type:decimal(12,2);not null"`
	CustomizationPriceAtAdd float64   `json:"customization_price_at_add" gorm:"type:decimal(12,2);not null;default:0"`

	// Relationships
	Cart    Cart    `json:"-" gorm:"foreignKey:CartID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type WishlistItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_entry"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_entry"`

	// Relationships
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
