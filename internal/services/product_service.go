// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=255"`
	Description  string              `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category     string              `json:"category" validate:"required,max=100"`
	Price        float64             `json:"price" validate:"required,gt=0"`
	SalePrice    *float64            `json:"sale_price,omitempty" validate:"omitempty,gt=0"`
	StockStatus  models.StockStatus  `json:"stock_status,omitempty"`
	Customizable bool                `json:"customizable,omitempty"`
	Colors       []models.Color      `json:"colors,omitempty" validate:"omitempty,dive"`
	Images       []string            `json:"images,omitempty" validate:"omitempty,dive,url"`
	Featured     bool                `json:"featured,omitempty"`
}

type UpdateProductRequest struct {
	Name         *string             `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description  *string             `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category     *string             `json:"category,omitempty" validate:"omitempty,max=100"`
	Price        *float64            `json:"price,omitempty" validate:"omitempty,gt=0"`
	SalePrice    *float64            `json:"sale_price,omitempty"`
	StockStatus  *models.StockStatus `json:"stock_status,omitempty"`
	Customizable *bool               `json:"customizable,omitempty"`
	Colors       *[]models.Color     `json:"colors,omitempty" validate:"omitempty,dive"`
	Images       *[]string           `json:"images,omitempty" validate:"omitempty,dive,url"`
	Featured     *bool               `json:"featured,omitempty"`
}

type ProductFilters struct {
	Category    string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	StockStatus string
	Featured    *bool
	OnSale      bool
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ListProducts is the public catalog listing with filters and pagination.
func (s *ProductService) ListProducts(filters ProductFilters, pagination utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}
	if filters.MinPrice != nil {
		query = query.Where("COALESCE(sale_price, price) >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("COALESCE(sale_price, price) <= ?", *filters.MaxPrice)
	}
	if filters.StockStatus != "" {
		query = query.Where("stock_status = ?", filters.StockStatus)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.OnSale {
		query = query.Where("sale_price IS NOT NULL AND sale_price < price")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, pagination, []string{"created_at", "price", "name"})
	err := utils.ApplyPagination(query, pagination).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProductBySlug(productSlug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("slug = ?", productSlug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListCategories returns every distinct category currently in the catalog.
func (s *ProductService) ListCategories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateProduct is admin-only. The slug is derived from the name and the
// SKU is generated; both are deduplicated against existing rows.
func (s *ProductService) CreateProduct(authCtx auth.Context, req *CreateProductRequest) (*models.Product, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	if req.SalePrice != nil && *req.SalePrice >= req.Price {
		return nil, errors.New("sale price must be lower than the regular price")
	}

	stockStatus := req.StockStatus
	if stockStatus == "" {
		stockStatus = models.StockStatusInStock
	}
	if !models.ValidStockStatus(stockStatus) {
		return nil, errors.New("invalid stock status")
	}

	productSlug, err := s.uniqueSlug(req.Name)
	if err != nil {
		return nil, err
	}

	sku, err := utils.GenerateSKU()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SKU: %w", err)
	}

	product := &models.Product{
		Name:         req.Name,
		Slug:         productSlug,
		SKU:          sku,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		SalePrice:    req.SalePrice,
		StockStatus:  stockStatus,
		Customizable: req.Customizable,
		Colors:       models.ColorList(req.Colors),
		Images:       pq.StringArray(req.Images),
		Featured:     req.Featured,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct applies a partial admin edit. Renaming does not move the
// slug, published URLs stay stable.
func (s *ProductService) UpdateProduct(authCtx auth.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.SalePrice != nil {
		if *req.SalePrice <= 0 {
			updates["sale_price"] = nil
		} else {
			updates["sale_price"] = *req.SalePrice
		}
	}
	if req.StockStatus != nil {
		if !models.ValidStockStatus(*req.StockStatus) {
			return nil, errors.New("invalid stock status")
		}
		updates["stock_status"] = *req.StockStatus
	}
	if req.Customizable != nil {
		updates["customizable"] = *req.Customizable
	}
	if req.Colors != nil {
		updates["colors"] = models.ColorList(*req.Colors)
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(*req.Images)
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes; order item snapshots keep their copy of the
// product data so history survives.
func (s *ProductService) DeleteProduct(authCtx auth.Context, id uuid.UUID) error {
	if !authCtx.IsAdmin() {
		return ErrForbidden
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) uniqueSlug(name string) (string, error) {
	base := slug.Make(name)
	candidate := base

	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.Product{}).Unscoped().
			Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("database error: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
