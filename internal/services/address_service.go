// internal/services/address_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salehkamalkamel/rofida-furniture-backend/internal/auth"
	"github.com/salehkamalkamel/rofida-furniture-backend/internal/models"
)

type AddressService struct {
	db *gorm.DB
}

type SaveAddressRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required,phone"`
	WhatsApp      string `json:"whatsapp,omitempty" validate:"omitempty,phone"`
	Street        string `json:"street" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	State         string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip           string `json:"zip,omitempty" validate:"omitempty,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
	IsDefault     bool   `json:"is_default,omitempty"`
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func (s *AddressService) List(authCtx auth.Context) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.Where("user_id = ?", authCtx.UserID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Get(authCtx auth.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := s.db.Where("id = ? AND user_id = ?", id, authCtx.UserID).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}

func (s *AddressService) Create(authCtx auth.Context, req *SaveAddressRequest) (*models.Address, error) {
	address := &models.Address{
		UserID:        authCtx.UserID,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		WhatsApp:      req.WhatsApp,
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Country:       req.Country,
		IsDefault:     req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.unsetDefault(tx, authCtx.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (s *AddressService) Update(authCtx auth.Context, id uuid.UUID, req *SaveAddressRequest) (*models.Address, error) {
	address, err := s.Get(authCtx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := s.unsetDefault(tx, authCtx.UserID); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"recipient_name": req.RecipientName,
			"phone":          req.Phone,
			"whatsapp":       req.WhatsApp,
			"street":         req.Street,
			"city":           req.City,
			"state":          req.State,
			"zip":            req.Zip,
			"country":        req.Country,
			"is_default":     req.IsDefault,
		}
		if err := tx.Model(address).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(authCtx, id)
}

// SetDefault flips the default flag to one address; the old default is
// unset in the same transaction so there is never more than one.
func (s *AddressService) SetDefault(authCtx auth.Context, id uuid.UUID) (*models.Address, error) {
	address, err := s.Get(authCtx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.unsetDefault(tx, authCtx.UserID); err != nil {
			return err
		}
		if err := tx.Model(address).Update("is_default", true).Error; err != nil {
			return fmt.Errorf("failed to set default address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	address.IsDefault = true
	return address, nil
}

// Delete removes a saved address. Orders keep their own snapshot, so
// past orders are unaffected.
func (s *AddressService) Delete(authCtx auth.Context, id uuid.UUID) error {
	address, err := s.Get(authCtx, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(address).Error; err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	return nil
}

func (s *AddressService) unsetDefault(tx *gorm.DB, userID uuid.UUID) error {
	err := tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to unset default address: %w", err)
	}
	return nil
}
