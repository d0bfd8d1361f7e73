// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

type AdminService struct {
	db       *gorm.DB
	notifier *NotificationService
}

type DashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	NewUsersThisMonth int64   `json:"new_users_this_month"`
	TotalProducts     int64   `json:"total_products"`
	TotalOrders       int64   `json:"total_orders"`
	PendingOrders     int64   `json:"pending_orders"`
	OrdersThisMonth   int64   `json:"orders_this_month"`
	TotalRevenue      float64 `json:"total_revenue"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	OrderGrowth       float64 `json:"order_growth"`
}

type TopProductStat struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitsSold   int64     `json:"units_sold"`
	Revenue     float64   `json:"revenue"`
}

type AdminUserFilters struct {
	Role   string
	Status string
	Search string
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=active suspended"`
	Reason string            `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type CreateShippingRuleRequest struct {
	Country        string   `json:"country" validate:"required,max=100"`
	City           *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Price          float64  `json:"price" validate:"gte=0"`
	FreeOverAmount *float64 `json:"free_over_amount,omitempty" validate:"omitempty,gt=0"`
	IsActive       *bool    `json:"is_active,omitempty"`
}

func NewAdminService(db *gorm.DB, notifier *NotificationService) *AdminService {
	return &AdminService{db: db, notifier: notifier}
}

// GetDashboardStats aggregates the numbers behind the admin landing page.
// Cancelled orders are excluded from revenue.
func (s *AdminService) GetDashboardStats(authCtx auth.Context) (*DashboardStats, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	stats := &DashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s.db.Model(&models.User{}).Where("is_anonymous = ?", false).Count(&stats.TotalUsers)
	s.db.Model(&models.User{}).
		Where("is_anonymous = ? AND status = ?", false, models.UserStatusActive).
		Count(&stats.ActiveUsers)
	s.db.Model(&models.User{}).
		Where("is_anonymous = ? AND created_at >= ?", false, monthStart).
		Count(&stats.NewUsersThisMonth)

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	s.db.Model(&models.Order{}).
		Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth)

	s.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.MonthlyRevenue)

	var lastMonthRevenue float64
	s.db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ? AND created_at < ?",
			models.OrderStatusCancelled, lastMonthStart, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&lastMonthRevenue)
	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	var lastMonthOrders int64
	s.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthOrders)
	if lastMonthOrders > 0 {
		stats.OrderGrowth = float64(stats.OrdersThisMonth-lastMonthOrders) / float64(lastMonthOrders) * 100
	}

	return stats, nil
}

// GetTopProducts ranks products by units sold across non-cancelled orders.
func (s *AdminService) GetTopProducts(authCtx auth.Context, limit int) ([]TopProductStat, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var stats []TopProductStat
	err := s.db.Model(&models.OrderItem{}).
		Select("order_items.product_id, order_items.product_name, SUM(order_items.quantity) AS units_sold, SUM(order_items.line_total) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.status <> ?", models.OrderStatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	return stats, nil
}

// ListUsers is the admin customer listing; anonymous guest accounts are
// hidden.
func (s *AdminService) ListUsers(authCtx auth.Context, filters AdminUserFilters, pagination utils.PaginationParams) ([]models.User, int64, error) {
	if !authCtx.IsAdmin() {
		return nil, 0, ErrForbidden
	}

	query := s.db.Model(&models.User{}).Where("is_anonymous = ?", false)
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?",
			"%"+filters.Search+"%", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := utils.ApplyPagination(query.Order("created_at DESC"), pagination).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// UpdateUserStatus suspends or reactivates a customer account. Admins
// cannot change their own status.
func (s *AdminService) UpdateUserStatus(authCtx auth.Context, userID uuid.UUID, req *UpdateUserStatusRequest) (*models.User, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}
	if userID == authCtx.UserID {
		return nil, ErrForbidden
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	user.Status = req.Status

	if s.notifier != nil && !user.IsAnonymous {
		go func() {
			if err := s.notifier.SendAccountStatusNotification(&user, req.Reason); err != nil {
				logrus.WithError(err).Warn("Failed to send account status email")
			}
		}()
	}

	return &user, nil
}

// CreateShippingRule adds a destination row to the shipping table.
func (s *AdminService) CreateShippingRule(authCtx auth.Context, req *CreateShippingRuleRequest) (*models.ShippingRule, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	rule := &models.ShippingRule{
		Country:        req.Country,
		City:           req.City,
		Price:          req.Price,
		FreeOverAmount: req.FreeOverAmount,
		IsActive:       true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.db.Create(rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create shipping rule: %w", err)
	}

	return rule, nil
}

// UpdateShippingRule edits price, threshold, and active flag in place.
func (s *AdminService) UpdateShippingRule(authCtx auth.Context, id uuid.UUID, req *CreateShippingRuleRequest) (*models.ShippingRule, error) {
	if !authCtx.IsAdmin() {
		return nil, ErrForbidden
	}

	var rule models.ShippingRule
	if err := s.db.First(&rule, "id = ?", id).Error; err != nil {
		return nil, ErrShippingRuleNotFound
	}

	updates := map[string]interface{}{
		"country":          req.Country,
		"city":             req.City,
		"price":            req.Price,
		"free_over_amount": req.FreeOverAmount,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&rule).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update shipping rule: %w", err)
	}

	if err := s.db.First(&rule, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &rule, nil
}

// DeleteShippingRule removes a rule; historical orders keep the cost
// they were charged.
func (s *AdminService) DeleteShippingRule(authCtx auth.Context, id uuid.UUID) error {
	if !authCtx.IsAdmin() {
		return ErrForbidden
	}

	var rule models.ShippingRule
	if err := s.db.First(&rule, "id = ?", id).Error; err != nil {
		return ErrShippingRuleNotFound
	}

	if err := s.db.Delete(&rule).Error; err != nil {
		return fmt.Errorf("failed to delete shipping rule: %w", err)
	}

	return nil
}
