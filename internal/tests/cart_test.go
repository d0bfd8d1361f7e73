// internal/tests/cart_test.go
package tests

import (
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

type CartTestSuite struct {
	suite.Suite
	db    *gorm.DB
	carts *services.CartService
}

func TestCartSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}

func (s *CartTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		s.T().Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	s.db = db

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{})
	require.NoError(s.T(), err)

	s.carts = services.NewCartService(db)
}

func (s *CartTestSuite) SetupTest() {
	for _, table := range []string{"cart_items", "carts", "products", "users"} {
		s.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
	}
}

func (s *CartTestSuite) seed() (auth.Context, models.Product) {
	user := models.User{
		Name:   "Cart Tester",
		Email:  "cart@example.com",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	}
	require.NoError(s.T(), user.SetPassword("Cart#2024pass"))
	require.NoError(s.T(), s.db.Create(&user).Error)

	product := models.Product{
		Name:         "Nubia Sofa",
		Slug:         "nubia-sofa",
		SKU:          "RF-NUBIA001",
		Category:     "sofas",
		Price:        3200,
		StockStatus:  models.StockStatusInStock,
		Customizable: true,
		Colors: models.ColorList{
			{Name: "Sand", Hex: "#d2b48c"},
			{Name: "Charcoal", Hex: "#36454f"},
		},
	}
	require.NoError(s.T(), s.db.Create(&product).Error)

	return auth.Context{UserID: user.ID, Email: user.Email, Role: user.Role}, product
}

func (s *CartTestSuite) TestDuplicateLineMergesQuantity() {
	authCtx, product := s.seed()

	first, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		Color:     "Sand",
	})
	require.NoError(s.T(), err)

	second, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  2,
		Color:     "Sand",
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), first.ID, second.ID)
	assert.Equal(s.T(), 3, second.Quantity)

	var lines int64
	s.db.Model(&models.CartItem{}).Count(&lines)
	assert.Equal(s.T(), int64(1), lines)
}

func (s *CartTestSuite) TestDifferentColorMakesNewLine() {
	authCtx, product := s.seed()

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1, Color: "Sand",
	})
	require.NoError(s.T(), err)

	_, err = s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1, Color: "Charcoal",
	})
	require.NoError(s.T(), err)

	var lines int64
	s.db.Model(&models.CartItem{}).Count(&lines)
	assert.Equal(s.T(), int64(2), lines)
}

func (s *CartTestSuite) TestDifferentNoteMakesNewLine() {
	authCtx, product := s.seed()

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
		IsCustomized: true, CustomizationNote: "shorter legs",
	})
	require.NoError(s.T(), err)

	// Notes differing only in whitespace are distinct lines
	_, err = s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
		IsCustomized: true, CustomizationNote: "shorter legs ",
	})
	require.NoError(s.T(), err)

	var lines int64
	s.db.Model(&models.CartItem{}).Count(&lines)
	assert.Equal(s.T(), int64(2), lines)
}

func (s *CartTestSuite) TestRejectsUndeclaredColor() {
	authCtx, product := s.seed()

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1, Color: "Crimson",
	})
	assert.ErrorIs(s.T(), err, services.ErrInvalidColor)
}

func (s *CartTestSuite) TestRejectsCustomizationOnPlainProduct() {
	authCtx, _ := s.seed()

	plain := models.Product{
		Name:        "Plain Chair",
		Slug:        "plain-chair",
		SKU:         "RF-PLAIN001",
		Category:    "chairs",
		Price:       500,
		StockStatus: models.StockStatusInStock,
	}
	require.NoError(s.T(), s.db.Create(&plain).Error)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: plain.ID, Quantity: 1,
		IsCustomized: true, CustomizationNote: "add armrests",
	})
	assert.ErrorIs(s.T(), err, services.ErrNotCustomizable)
}

func (s *CartTestSuite) TestRejectsOutOfStockProduct() {
	authCtx, product := s.seed()

	require.NoError(s.T(), s.db.Model(&product).
		Update("stock_status", models.StockStatusOutOfStock).Error)

	_, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
	})
	assert.ErrorIs(s.T(), err, services.ErrProductUnavailable)

	var lines int64
	s.db.Model(&models.CartItem{}).Count(&lines)
	assert.Zero(s.T(), lines)
}

func (s *CartTestSuite) TestClearEmptyCartIsNoOp() {
	authCtx, _ := s.seed()
	assert.NoError(s.T(), s.carts.Clear(authCtx))
}

func (s *CartTestSuite) TestPriceSnapshotRecordedAtAdd() {
	authCtx, product := s.seed()

	item, err := s.carts.AddItem(authCtx, &services.AddCartItemRequest{
		ProductID: product.ID, Quantity: 1,
		IsCustomized: true, CustomizationNote: "walnut finish",
	})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 3200.0, item.PriceAtAdd)
	assert.Equal(s.T(), 320.0, item.CustomizationPriceAtAdd)
}
