// internal/tests/order_flow_test.go
package tests

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/services"
)

// failingNotifier proves order persistence is isolated from email delivery.
type failingNotifier struct {
	confirmations int
	statusUpdates int
}

func (n *failingNotifier) SendOrderConfirmation(order *models.Order, email, name string) error {
	n.confirmations++
	return errors.New("smtp unreachable")
}

func (n *failingNotifier) SendOrderStatusUpdate(order *models.Order, email, name string) error {
	n.statusUpdates++
	return errors.New("smtp unreachable")
}

// OrderFlowTestSuite runs against a throwaway Postgres database. Set
// TEST_DATABASE_DSN to run it; it is skipped otherwise.
type OrderFlowTestSuite struct {
	suite.Suite
	db       *gorm.DB
	notifier *failingNotifier
	shipping *services.ShippingService
	orders   *services.OrderService
	carts    *services.CartService
}

func TestOrderFlowSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowTestSuite))
}

func (s *OrderFlowTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	s.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Address{},
		&models.ShippingRule{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(s.T(), err)

	s.notifier = &failingNotifier{}
	s.shipping = services.NewShippingService(db)
	s.orders = services.NewOrderService(db, s.shipping, s.notifier, "EGP")
	s.carts = services.NewCartService(db)
}

func (s *OrderFlowTestSuite) SetupTest() {
	for _, table := range []string{
		"order_items", "orders", "cart_items", "carts",
		"wishlist_items", "addresses", "shipping_rules", "products", "users",
	} {
		s.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
	}
	s.notifier.confirmations = 0
	s.notifier.statusUpdates = 0
}

func (s *OrderFlowTestSuite) createUser(email string) (models.User, auth.Context) {
	user := models.User{
		Name:   "Test Customer",
		Email:  email,
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	}
	require.NoError(s.T(), user.SetPassword("Sofa#2024pass"))
	require.NoError(s.T(), s.db.Create(&user).Error)

	return user, auth.Context{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
}

func (s *OrderFlowTestSuite) createProduct(name string, price float64) models.Product {
	product := models.Product{
		Name:        name,
		Slug:        fmt.Sprintf("%s-%d", name, len(name)),
		SKU:         fmt.Sprintf("RF-TEST%04d", int(price)),
		Category:    "sofas",
		Price:       price,
		StockStatus: models.StockStatusInStock,
	}
	require.NoError(s.T(), s.db.Create(&product).Error)
	return product
}

func (s *OrderFlowTestSuite) createRule(country string, city *string, price float64) models.ShippingRule {
	rule := models.ShippingRule{Country: country, City: city, Price: price, IsActive: true}
	require.NoError(s.T(), s.db.Create(&rule).Error)
	return rule
}

func (s *OrderFlowTestSuite) cairoAddress() *services.InlineAddressRequest {
	return &services.InlineAddressRequest{
		RecipientName: "Nadia Hassan",
		Phone:         "+201001234567",
		Street:        "14 Tahrir St",
		City:          "Cairo",
		Country:       "Egypt",
	}
}

func strPtr(v string) *string { return &v }

func (s *OrderFlowTestSuite) TestSofaCheckout() {
	_, authCtx := s.createUser("sofa@example.com")
	product := s.createProduct("Riviera Sofa", 4999)
	s.createRule("Egypt", strPtr("Cairo"), 150)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{
		Address: s.cairoAddress(),
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 150.0, order.ShippingAmount)
	assert.Equal(s.T(), 5149.0, order.TotalAmount)
	assert.Equal(s.T(), "EGP", order.Currency)
	assert.Equal(s.T(), models.OrderStatusPending, order.Status)
	assert.Equal(s.T(), models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(s.T(), order.Items, 1)
	assert.Equal(s.T(), "Riviera Sofa", order.Items[0].ProductName)

	// The cart is wiped by the same transaction
	var remaining int64
	s.db.Model(&models.CartItem{}).Count(&remaining)
	assert.Zero(s.T(), remaining)
}

func (s *OrderFlowTestSuite) TestCheckoutRollsBackWithoutShippingRule() {
	_, authCtx := s.createUser("norule@example.com")
	product := s.createProduct("Oslo Armchair", 2500)
	s.createRule("Egypt", nil, 250)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	_, err = s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{
		Address: &services.InlineAddressRequest{
			RecipientName: "Pierre Martin",
			Phone:         "+33612345678",
			Street:        "2 Rue de Lyon",
			City:          "Paris",
			Country:       "France",
		},
	})
	assert.ErrorIs(s.T(), err, services.ErrShippingRuleNotFound)

	// Nothing was written: no order, no orphan address, cart intact
	var orders, addresses, cartItems int64
	s.db.Model(&models.Order{}).Count(&orders)
	s.db.Model(&models.Address{}).Count(&addresses)
	s.db.Model(&models.CartItem{}).Count(&cartItems)
	assert.Zero(s.T(), orders)
	assert.Zero(s.T(), addresses)
	assert.Equal(s.T(), int64(1), cartItems)
}

func (s *OrderFlowTestSuite) TestShippingResolutionFallsBackToCountryRule() {
	_, authCtx := s.createUser("alex@example.com")
	product := s.createProduct("Luxor Bed", 8000)
	s.createRule("Egypt", strPtr("Cairo"), 50)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	addr := s.cairoAddress()
	addr.City = "Alexandria"
	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: addr})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 100.0, order.ShippingAmount)
}

func (s *OrderFlowTestSuite) TestShippingResolutionPrefersCityRule() {
	_, authCtx := s.createUser("cairo@example.com")
	product := s.createProduct("Giza Table", 3000)
	s.createRule("Egypt", strPtr("Cairo"), 50)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 50.0, order.ShippingAmount)
}

func (s *OrderFlowTestSuite) TestFreeShippingOverThreshold() {
	_, authCtx := s.createUser("free@example.com")
	product := s.createProduct("Nile Wardrobe", 6000)
	rule := models.ShippingRule{Country: "Egypt", Price: 150, IsActive: true}
	over := 5000.0
	rule.FreeOverAmount = &over
	require.NoError(s.T(), s.db.Create(&rule).Error)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 0.0, order.ShippingAmount)
	assert.Equal(s.T(), 6000.0, order.TotalAmount)
}

func (s *OrderFlowTestSuite) TestEmptyCartCheckoutFails() {
	_, authCtx := s.createUser("empty@example.com")
	s.createRule("Egypt", nil, 100)

	_, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	assert.ErrorIs(s.T(), err, services.ErrEmptyCart)
}

func (s *OrderFlowTestSuite) TestNotifierFailureDoesNotAffectOrder() {
	_, authCtx := s.createUser("notify@example.com")
	product := s.createProduct("Delta Desk", 1800)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, s.notifier.confirmations)

	// The order persisted despite the notifier error
	var saved models.Order
	require.NoError(s.T(), s.db.First(&saved, "id = ?", order.ID).Error)
	assert.Equal(s.T(), models.OrderStatusPending, saved.Status)
}

func (s *OrderFlowTestSuite) TestCancelPendingOrder() {
	_, authCtx := s.createUser("cancel@example.com")
	product := s.createProduct("Aswan Shelf", 900)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	statusEmailsBefore := s.notifier.statusUpdates
	cancelled, err := s.orders.CancelOrder(authCtx, order.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.OrderStatusCancelled, cancelled.Status)

	// Cancelling twice is rejected and sends no second email
	_, err = s.orders.CancelOrder(authCtx, order.ID)
	assert.ErrorIs(s.T(), err, services.ErrOrderNotCancellable)
	assert.Equal(s.T(), statusEmailsBefore+1, s.notifier.statusUpdates)
}

func (s *OrderFlowTestSuite) TestCancelRejectsNonOwnerAndNonPending() {
	_, owner := s.createUser("owner@example.com")
	_, stranger := s.createUser("stranger@example.com")
	product := s.createProduct("Cairo Bench", 700)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(owner, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(owner, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	_, err = s.orders.CancelOrder(stranger, order.ID)
	assert.ErrorIs(s.T(), err, services.ErrForbidden)

	require.NoError(s.T(), s.db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	_, err = s.orders.CancelOrder(owner, order.ID)
	assert.ErrorIs(s.T(), err, services.ErrOrderNotCancellable)
}

func (s *OrderFlowTestSuite) TestAdminStatusTransitions() {
	_, authCtx := s.createUser("buyer@example.com")
	adminUser, _ := s.createUser("admin@example.com")
	require.NoError(s.T(), s.db.Model(&adminUser).Update("role", models.UserRoleAdmin).Error)
	adminCtx := auth.Context{UserID: adminUser.ID, Email: adminUser.Email, Role: models.UserRoleAdmin}

	product := s.createProduct("Fayoum Lamp", 400)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	// pending cannot jump straight to shipped
	_, err = s.orders.UpdateStatus(adminCtx, order.ID, &services.UpdateOrderStatusRequest{
		Status: models.OrderStatusShipped,
	})
	assert.ErrorIs(s.T(), err, services.ErrInvalidTransition)

	updated, err := s.orders.UpdateStatus(adminCtx, order.ID, &services.UpdateOrderStatusRequest{
		Status: models.OrderStatusProcessing,
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.OrderStatusProcessing, updated.Status)

	// Customers cannot use the admin transition path
	_, err = s.orders.UpdateStatus(authCtx, order.ID, &services.UpdateOrderStatusRequest{
		Status: models.OrderStatusShipped,
	})
	assert.ErrorIs(s.T(), err, services.ErrForbidden)
}

func (s *OrderFlowTestSuite) TestInstantOrderSkipsCart() {
	_, authCtx := s.createUser("instant@example.com")
	product := s.createProduct("Sinai Stool", 350)
	other := s.createProduct("Dahab Rug", 1200)
	s.createRule("Egypt", nil, 100)

	// Something already sitting in the cart must survive an instant buy
	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: other.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	order, err := s.orders.PlaceInstantOrder(authCtx, &services.InstantOrderRequest{
		Product: services.InstantOrderProduct{
			ProductID: product.ID,
			Quantity:  2,
		},
		Address: s.cairoAddress(),
	})
	require.NoError(s.T(), err)

	assert.Len(s.T(), order.Items, 1)
	assert.Equal(s.T(), 2, order.Items[0].Quantity)
	assert.Equal(s.T(), 800.0, order.TotalAmount)

	var cartItems int64
	s.db.Model(&models.CartItem{}).Count(&cartItems)
	assert.Equal(s.T(), int64(1), cartItems)
}

func (s *OrderFlowTestSuite) TestInstantOrderRejectsOutOfStockProduct() {
	_, authCtx := s.createUser("nostock@example.com")
	product := s.createProduct("Luxor Chair", 650)
	s.createRule("Egypt", nil, 100)

	require.NoError(s.T(), s.db.Model(&product).
		Update("stock_status", models.StockStatusOutOfStock).Error)

	_, err := s.orders.PlaceInstantOrder(authCtx, &services.InstantOrderRequest{
		Product: services.InstantOrderProduct{
			ProductID: product.ID,
			Quantity:  1,
		},
		Address: s.cairoAddress(),
	})
	assert.ErrorIs(s.T(), err, services.ErrProductUnavailable)

	var orders int64
	s.db.Model(&models.Order{}).Count(&orders)
	assert.Zero(s.T(), orders)
}

func (s *OrderFlowTestSuite) TestCheckoutRejectsProductThatWentOutOfStock() {
	_, authCtx := s.createUser("stale@example.com")
	product := s.createProduct("Fayoum Dresser", 2400)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	// Sells out between carting and checkout
	require.NoError(s.T(), s.db.Model(&product).
		Update("stock_status", models.StockStatusOutOfStock).Error)

	_, err = s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	assert.ErrorIs(s.T(), err, services.ErrProductUnavailable)

	// The rejection rolls back, leaving the cart line in place
	var cartItems int64
	s.db.Model(&models.CartItem{}).Count(&cartItems)
	assert.Equal(s.T(), int64(1), cartItems)
}

func (s *OrderFlowTestSuite) TestTotalsRecomputedFromLiveProduct() {
	_, authCtx := s.createUser("reprice@example.com")
	product := s.createProduct("Amarna Mirror", 1000)
	s.createRule("Egypt", nil, 100)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(s.T(), err)

	// Price drops between add and checkout; the order charges the new price
	require.NoError(s.T(), s.db.Model(&product).Update("price", 800).Error)

	order, err := s.orders.CreateOrder(authCtx, &services.CreateOrderRequest{Address: s.cairoAddress()})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 800.0, order.Items[0].UnitPrice)
	assert.Equal(s.T(), 900.0, order.TotalAmount)
}
