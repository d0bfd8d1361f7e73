// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

// Notifier delivers order emails after the transaction commits. Failures
// are logged and never surfaced to the buyer.
type Notifier interface {
	SendOrderConfirmation(order *models.Order, email, name string) error
	SendOrderStatusUpdate(order *models.Order, email, name string) error
}

type OrderService struct {
	db       *gorm.DB
	shipping *ShippingService
	notifier Notifier
	currency string
}

type InlineAddressRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required,phone"`
	WhatsApp      string `json:"whatsapp,omitempty" validate:"omitempty,phone"`
	Street        string `json:"street" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip           string `json:"zip,omitempty" validate:"omitempty,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
}

type CreateOrderRequest struct {
	AddressID      *uuid.UUID            `json:"address_id,omitempty"`
	Address        *InlineAddressRequest `json:"address,omitempty"`
	ShippingRuleID *uuid.UUID            `json:"shipping_rule_id,omitempty"`
}

type InstantOrderProduct struct {
	ProductID         uuid.UUID `json:"product_id" validate:"required"`
	Quantity          int       `json:"quantity" validate:"required,min=1"`
	Color             string    `json:"color,omitempty" validate:"omitempty,max=100"`
	IsCustomized      bool      `json:"is_customized,omitempty"`
	CustomizationNote string    `json:"customization_note,omitempty" validate:"omitempty,max=500"`
}

type InstantOrderRequest struct {
	Product        InstantOrderProduct   `json:"product" validate:"required"`
	AddressID      *uuid.UUID            `json:"address_id,omitempty"`
	Address        *InlineAddressRequest `json:"address,omitempty"`
	ShippingRuleID *uuid.UUID            `json:"shipping_rule_id,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status        models.OrderStatus    `json:"status" validate:"required"`
	PaymentStatus *models.PaymentStatus `json:"payment_status,omitempty"`
}

type OrderFilters struct {
	Status        string
	PaymentStatus string
	UserID        string
	Search        string
}

func NewOrderService(db *gorm.DB, shipping *ShippingService, notifier Notifier, currency string) *OrderService {
	return &OrderService{db: db, shipping: shipping, notifier: notifier, currency: currency}
}

// CreateOrder turns the caller's cart into an order. Address resolution,
// shipping cost, total recomputation, order and item inserts, and the cart
// wipe all happen inside one transaction; a failure at any step leaves
// every table untouched. The confirmation email goes out only after the
// commit and never fails the order.
func (s *OrderService) CreateOrder(authCtx auth.Context, req *CreateOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		address, err := s.resolveAddress(tx, authCtx, req.AddressID, req.Address)
		if err != nil {
			return err
		}

		rule, err := s.resolveShippingRule(tx, req.ShippingRuleID, address)
		if err != nil {
			return err
		}

		var cart models.Cart
		err = tx.Preload("Items").Preload("Items.Product").
			Where("user_id = ?", authCtx.UserID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("database error: %w", err)
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		subtotal := 0.0
		for i := range cart.Items {
			ci := &cart.Items[i]
			if ci.Product.ID == uuid.Nil {
				return ErrProductNotFound
			}
			if ci.Product.StockStatus == models.StockStatusOutOfStock {
				return ErrProductUnavailable
			}
			pricing := PriceLine(&ci.Product, ci.Quantity, ci.IsCustomized)
			items = append(items, buildOrderItem(&ci.Product, ci.Quantity, ci.Color, ci.IsCustomized, ci.CustomizationNote, pricing))
			subtotal += pricing.LineTotal
		}
		subtotal = RoundMoney(subtotal)

		order, err = s.insertOrder(tx, authCtx.UserID, address, rule, subtotal, items)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(authCtx, order)
	return order, nil
}

// PlaceInstantOrder builds a one-line order directly from a product without
// touching the caller's cart. Guests reach this through an anonymous
// session and an inline address.
func (s *OrderService) PlaceInstantOrder(authCtx auth.Context, req *InstantOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.Product.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.StockStatus == models.StockStatusOutOfStock {
			return ErrProductUnavailable
		}

		color := strings.TrimSpace(req.Product.Color)
		if color != "" && !product.Colors.Contains(color) {
			return ErrInvalidColor
		}
		if req.Product.IsCustomized && !product.Customizable {
			return ErrNotCustomizable
		}

		address, err := s.resolveAddress(tx, authCtx, req.AddressID, req.Address)
		if err != nil {
			return err
		}

		rule, err := s.resolveShippingRule(tx, req.ShippingRuleID, address)
		if err != nil {
			return err
		}

		note := ""
		if req.Product.IsCustomized {
			note = req.Product.CustomizationNote
		}

		pricing := PriceLine(&product, req.Product.Quantity, req.Product.IsCustomized)
		item := buildOrderItem(&product, req.Product.Quantity, color, req.Product.IsCustomized, note, pricing)

		order, err = s.insertOrder(tx, authCtx.UserID, address, rule, pricing.LineTotal, []models.OrderItem{item})
		return err
	})

	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(authCtx, order)
	return order, nil
}

// CancelOrder lets the owner cancel an order that is still pending. The
// row is locked for the duration of the check so a concurrent cancel or
// admin transition cannot slip in between the read and the write; losers
// of that race get ErrOrderNotCancellable and no second email goes out.
func (s *OrderService) CancelOrder(authCtx auth.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if order.UserID != authCtx.UserID {
			return ErrForbidden
		}

		if order.Status != models.OrderStatusPending {
			return ErrOrderNotCancellable
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		order.Status = models.OrderStatusCancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.notifyStatusUpdate(&order)
	return &order, nil
}

// UpdateStatus applies an admin status change, validated against the
// order lifecycle. Delivered and cancelled are terminal.
func (s *OrderService) UpdateStatus(authCtx auth.Context, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	if !models.ValidOrderStatus(req.Status) {
		return nil, ErrInvalidTransition
	}
	if req.PaymentStatus != nil && !models.ValidPaymentStatus(*req.PaymentStatus) {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate()).First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !order.Status.CanTransition(req.Status) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{"status": req.Status}
		if req.PaymentStatus != nil {
			updates["payment_status"] = *req.PaymentStatus
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		order.Status = req.Status
		if req.PaymentStatus != nil {
			order.PaymentStatus = *req.PaymentStatus
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.notifyStatusUpdate(&order)
	return &order, nil
}

// GetOrder returns one order with its items. Customers only see their own;
// admins see any.
func (s *OrderService) GetOrder(authCtx auth.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != authCtx.UserID && !authCtx.IsAdmin() {
		return nil, ErrOrderNotFound
	}

	return &order, nil
}

// ListUserOrders returns the caller's orders, newest first.
func (s *OrderService) ListUserOrders(authCtx auth.Context, pagination utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", authCtx.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := utils.ApplyPagination(query.Preload("Items").Order("created_at DESC"), pagination).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// ListAllOrders is the admin listing with status and user filters.
func (s *OrderService) ListAllOrders(authCtx auth.Context, filters OrderFilters, pagination utils.PaginationParams) ([]models.Order, int64, error) {
	if !authCtx.IsAdmin() {
		return nil, 0, ErrForbidden
	}

	query := s.db.Model(&models.Order{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.Search != "" {
		query = query.Where("id::text ILIKE ? OR shipping_address->>'recipient_name' ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := utils.ApplyPagination(query.Preload("Items").Preload("User").Order("created_at DESC"), pagination).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// resolveAddress loads a saved address by ID, checking ownership, or
// persists an inline address for the caller inside the transaction so a
// rollback discards it along with everything else.
func (s *OrderService) resolveAddress(tx *gorm.DB, authCtx auth.Context, addressID *uuid.UUID, inline *InlineAddressRequest) (*models.Address, error) {
	if addressID != nil {
		var address models.Address
		err := tx.Where("id = ? AND user_id = ?", *addressID, authCtx.UserID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAddressNotFound
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		return &address, nil
	}

	if inline == nil {
		return nil, ErrAddressNotFound
	}

	address := models.Address{
		UserID:        authCtx.UserID,
		RecipientName: inline.RecipientName,
		Phone:         inline.Phone,
		WhatsApp:      inline.WhatsApp,
		Street:        inline.Street,
		City:          inline.City,
		State:         inline.State,
		Zip:           inline.Zip,
		Country:       inline.Country,
	}
	if err := tx.Create(&address).Error; err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	return &address, nil
}

func (s *OrderService) resolveShippingRule(tx *gorm.DB, ruleID *uuid.UUID, address *models.Address) (*models.ShippingRule, error) {
	if ruleID != nil {
		return s.shipping.GetRule(tx, *ruleID)
	}
	return s.shipping.FindRule(tx, address.Country, address.City)
}

func (s *OrderService) insertOrder(tx *gorm.DB, userID uuid.UUID, address *models.Address, rule *models.ShippingRule, subtotal float64, items []models.OrderItem) (*models.Order, error) {
	shippingCost := rule.CostFor(subtotal)

	order := &models.Order{
		UserID:          userID,
		TotalAmount:     RoundMoney(subtotal + shippingCost),
		ShippingAmount:  shippingCost,
		Currency:        s.currency,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   models.PaymentMethodCashOnDelivery,
		ShippingAddress: address.Snapshot(),
		ShippingRuleID:  rule.ID,
		Items:           items,
	}

	if err := tx.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func buildOrderItem(product *models.Product, quantity int, color string, customized bool, note string, pricing LinePricing) models.OrderItem {
	return models.OrderItem{
		ProductID:         product.ID,
		ProductName:       product.Name,
		SKU:               product.SKU,
		Image:             product.PrimaryImage(),
		UnitPrice:         pricing.UnitPrice,
		Quantity:          quantity,
		Color:             color,
		IsCustomized:      customized,
		CustomizationNote: note,
		LineTotal:         pricing.LineTotal,
	}
}

func (s *OrderService) notifyConfirmation(authCtx auth.Context, order *models.Order) {
	if s.notifier == nil || authCtx.IsAnonymous || authCtx.Email == "" {
		return
	}
	if err := s.notifier.SendOrderConfirmation(order, authCtx.Email, authCtx.Name); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Warn("Failed to send order confirmation email")
	}
}

func (s *OrderService) notifyStatusUpdate(order *models.Order) {
	if s.notifier == nil {
		return
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", order.UserID).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Warn("Failed to load user for status email")
		return
	}
	if user.IsAnonymous || user.Email == "" {
		return
	}

	if err := s.notifier.SendOrderStatusUpdate(order, user.Email, user.Name); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).
			Warn("Failed to send order status email")
	}
}
