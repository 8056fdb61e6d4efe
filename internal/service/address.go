package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"contact_manager/internal/apperror"
	"contact_manager/internal/domain"
	"contact_manager/internal/validation"
)

// AddressRequest is the payload for creating or replacing an address
type AddressRequest struct {
	Street     string `json:"street" validate:"omitempty,max=255"`
	City       string `json:"city" validate:"omitempty,max=100"`
	Province   string `json:"province" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// AddressResponse is the public view of an address
type AddressResponse struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// AddressService manages addresses nested under the authenticated user's contacts.
// Every operation first checks that the contact belongs to the caller.
type AddressService struct {
	db *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

func toAddressResponse(a *domain.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return err
}

func parseAddressIDs(rawContactID, rawAddressID string) (uint, uint, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return 0, 0, err
	}
	addressID, err := validation.ID("addressId", rawAddressID)
	if err != nil {
		return 0, 0, err
	}
	return contactID, addressID, nil
}

// Create adds an address to one of user's contacts
func (s *AddressService) Create(ctx context.Context, user *domain.User, rawContactID string, req AddressRequest) (*AddressResponse, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	address := domain.Address{
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedID, err := mustOwnContact(tx, user, contactID)
		if err != nil {
			return err
		}
		address.ContactID = ownedID
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"username":   user.Username,
		"contact_id": contactID,
		"address_id": address.ID,
	}).Info("Address created")
	return toAddressResponse(&address), nil
}

// Get returns one address of one of user's contacts
func (s *AddressService) Get(ctx context.Context, user *domain.User, rawContactID, rawAddressID string) (*AddressResponse, error) {
	contactID, addressID, err := parseAddressIDs(rawContactID, rawAddressID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if _, err := mustOwnContact(db, user, contactID); err != nil {
		return nil, err
	}
	var address domain.Address
	if err := db.Where("contact_id = ? AND id = ?", contactID, addressID).First(&address).Error; err != nil {
		return nil, notFoundOr(err, "Address not found")
	}
	return toAddressResponse(&address), nil
}

// Update replaces every field of an address
func (s *AddressService) Update(ctx context.Context, user *domain.User, rawContactID, rawAddressID string, req AddressRequest) (*AddressResponse, error) {
	contactID, addressID, err := parseAddressIDs(rawContactID, rawAddressID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var address domain.Address
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := mustOwnContact(tx, user, contactID); err != nil {
			return err
		}
		if err := tx.Where("contact_id = ? AND id = ?", contactID, addressID).First(&address).Error; err != nil {
			return notFoundOr(err, "Address not found")
		}
		if err := tx.Model(&address).Updates(map[string]any{
			"street":      req.Street,
			"city":        req.City,
			"province":    req.Province,
			"country":     req.Country,
			"postal_code": req.PostalCode,
		}).Error; err != nil {
			return err
		}
		return tx.First(&address, addressID).Error
	})
	if err != nil {
		return nil, err
	}
	return toAddressResponse(&address), nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, user *domain.User, rawContactID, rawAddressID string) error {
	contactID, addressID, err := parseAddressIDs(rawContactID, rawAddressID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := mustOwnContact(tx, user, contactID); err != nil {
			return err
		}
		result := tx.Where("contact_id = ? AND id = ?", contactID, addressID).Delete(&domain.Address{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("Address not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username":   user.Username,
		"contact_id": contactID,
		"address_id": addressID,
	}).Info("Address deleted")
	return nil
}

// List returns every address of one of user's contacts
func (s *AddressService) List(ctx context.Context, user *domain.User, rawContactID string) ([]AddressResponse, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if _, err := mustOwnContact(db, user, contactID); err != nil {
		return nil, err
	}
	var addresses []domain.Address
	if err := db.Where("contact_id = ?", contactID).Order("id ASC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, *toAddressResponse(&addresses[i]))
	}
	return out, nil
}
