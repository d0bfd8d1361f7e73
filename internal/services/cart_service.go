// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID         uuid.UUID `json:"product_id" validate:"required"`
	Quantity          int       `json:"quantity" validate:"required,min=1"`
	Color             string    `json:"color,omitempty" validate:"omitempty,max=100"`
	IsCustomized      bool      `json:"is_customized,omitempty"`
	CustomizationNote string    `json:"customization_note,omitempty" validate:"omitempty,max=500"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart loads the caller's cart with items and their products, creating
// the cart row lazily if the user never had one.
func (s *CartService) GetCart(authCtx auth.Context) (*models.Cart, error) {
	cart, err := s.getOrCreateCart(s.db, authCtx.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	}).Preload("Items.Product").First(cart, cart.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart, nil
}

// AddItem puts a product line into the cart. A line with the same product,
// color, and customization note already present has its quantity bumped
// instead; the composite unique index backs this up at the database level.
// Notes that differ only in whitespace are treated as different lines.
func (s *CartService) AddItem(authCtx auth.Context, req *AddCartItemRequest) (*models.CartItem, error) {
	var item *models.CartItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.StockStatus == models.StockStatusOutOfStock {
			return ErrProductUnavailable
		}

		color := strings.TrimSpace(req.Color)
		if color != "" && !product.Colors.Contains(color) {
			return ErrInvalidColor
		}

		if req.IsCustomized && !product.Customizable {
			return ErrNotCustomizable
		}

		note := ""
		if req.IsCustomized {
			note = req.CustomizationNote
		}

		cart, err := s.getOrCreateCart(tx, authCtx.UserID)
		if err != nil {
			return err
		}

		// Merge into an existing identical line
		var existing models.CartItem
		err = tx.Where(
			"cart_id = ? AND product_id = ? AND color = ? AND customization_note = ?",
			cart.ID, product.ID, color, note,
		).First(&existing).Error

		if err == nil {
			if err := tx.Model(&existing).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update quantity: %w", err)
			}
			existing.Quantity += req.Quantity
			item = &existing
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		pricing := PriceLine(&product, req.Quantity, req.IsCustomized)

		item = &models.CartItem{
			CartID:                  cart.ID,
			ProductID:               product.ID,
			Quantity:                req.Quantity,
			Color:                   color,
			IsCustomized:            req.IsCustomized,
			CustomizationNote:       note,
			PriceAtAdd:              pricing.BasePrice,
			CustomizationPriceAtAdd: pricing.Customization,
		}

		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to add cart item: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.db.Preload("Product").First(item, item.ID)
	return item, nil
}

// UpdateItemQuantity changes the quantity of one line owned by the caller.
func (s *CartService) UpdateItemQuantity(authCtx auth.Context, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	item, err := s.findOwnedItem(authCtx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	s.db.Preload("Product").First(item, item.ID)
	return item, nil
}

// RemoveItem deletes one line owned by the caller.
func (s *CartService) RemoveItem(authCtx auth.Context, itemID uuid.UUID) error {
	item, err := s.findOwnedItem(authCtx, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Unscoped().Delete(item).Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

// Clear removes every line from the caller's cart. Clearing an empty or
// absent cart is a no-op, not an error.
func (s *CartService) Clear(authCtx auth.Context) error {
	var cart models.Cart
	err := s.db.Where("user_id = ?", authCtx.UserID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (s *CartService) getOrCreateCart(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return &cart, nil
}

func (s *CartService) findOwnedItem(authCtx auth.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.Joins("Cart").
		Where("cart_items.id = ? AND \"Cart\".user_id = ?", itemID, authCtx.UserID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &item, nil
}
