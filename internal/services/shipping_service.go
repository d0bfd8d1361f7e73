// internal/services/shipping_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/utils"
)

type ShippingService struct {
	db *gorm.DB
}

func NewShippingService(db *gorm.DB) *ShippingService {
	return &ShippingService{db: db}
}

// FindRule resolves the shipping rule for a destination. Lookup order: an
// active rule matching (country, city) exactly, then an active country-wide
// rule (city IS NULL). No match is a hard failure; there is deliberately no
// zero-cost fallback, because silently free shipping is worse than refusing
// the order.
//
// Pure read. Callers inside the order transaction pass their tx handle so
// the rule is read under the same isolation as everything else.
func (s *ShippingService) FindRule(db *gorm.DB, country, city string) (*models.ShippingRule, error) {
	if db == nil {
		db = s.db
	}

	var rule models.ShippingRule

	if city != "" {
		err := db.Where("country = ? AND city = ? AND is_active = ?", country, city, true).
			First(&rule).Error
		if err == nil {
			return &rule, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	err := db.Where("country = ? AND city IS NULL AND is_active = ?", country, true).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShippingRuleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &rule, nil
}

// GetRule loads a rule by id regardless of destination, used when a client
// pins the rule it was quoted.
func (s *ShippingService) GetRule(db *gorm.DB, id uuid.UUID) (*models.ShippingRule, error) {
	if db == nil {
		db = s.db
	}

	var rule models.ShippingRule
	if err := db.Where("is_active = ?", true).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShippingRuleNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &rule, nil
}

// ListRules returns rules for the admin table.
func (s *ShippingService) ListRules(params utils.PaginationParams) ([]models.ShippingRule, int64, error) {
	query := s.db.Model(&models.ShippingRule{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipping rules: %w", err)
	}

	allowedSortFields := []string{"created_at", "country", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var rules []models.ShippingRule
	if err := query.Find(&rules).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch shipping rules: %w", err)
	}

	return rules, total, nil
}
