package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"contact_manager/internal/domain"
	"contact_manager/internal/validation"
)

// ContactRequest is the payload for creating or replacing a contact
type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,max=200,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// ContactResponse is the public view of a contact
type ContactResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SearchContactRequest holds the already-parsed query of GET /api/contacts
type SearchContactRequest struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// Paging describes the window returned by a search
type Paging struct {
	Page      int   `json:"page"`
	TotalPage int   `json:"total_page"`
	TotalItem int64 `json:"total_item"`
}

// SearchContactResult is one page of contacts
type SearchContactResult struct {
	Data   []ContactResponse `json:"data"`
	Paging Paging            `json:"paging"`
}

// ContactService manages the contacts of the authenticated user
type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func toContactResponse(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// Create stores a new contact owned by user
func (s *ContactService) Create(ctx context.Context, user *domain.User, req ContactRequest) (*ContactResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	contact := domain.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"username":   user.Username,
		"contact_id": contact.ID,
	}).Info("Contact created")
	return toContactResponse(&contact), nil
}

// Get returns one of user's contacts
func (s *ContactService) Get(ctx context.Context, user *domain.User, rawContactID string) (*ContactResponse, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if _, err := mustOwnContact(db, user, contactID); err != nil {
		return nil, err
	}
	var contact domain.Contact
	if err := db.Where("username = ? AND id = ?", user.Username, contactID).First(&contact).Error; err != nil {
		return nil, notFoundOr(err, "Contact not found")
	}
	return toContactResponse(&contact), nil
}

// Update replaces every field of one of user's contacts
func (s *ContactService) Update(ctx context.Context, user *domain.User, rawContactID string, req ContactRequest) (*ContactResponse, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	var contact domain.Contact
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := mustOwnContact(tx, user, contactID); err != nil {
			return err
		}
		// A map so that cleared optional fields are written as well
		if err := tx.Model(&domain.Contact{}).Where("id = ?", contactID).Updates(map[string]any{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
			"phone":      req.Phone,
		}).Error; err != nil {
			return err
		}
		return tx.First(&contact, contactID).Error
	})
	if err != nil {
		return nil, err
	}
	return toContactResponse(&contact), nil
}

// Delete removes one of user's contacts and its addresses
func (s *ContactService) Delete(ctx context.Context, user *domain.User, rawContactID string) error {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := mustOwnContact(tx, user, contactID); err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", contactID).Delete(&domain.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Contact{}, contactID).Error
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"username":   user.Username,
		"contact_id": contactID,
	}).Info("Contact deleted")
	return nil
}

// Search returns one page of user's contacts matching every non-empty filter.
// A page past the end yields an empty list.
func (s *ContactService) Search(ctx context.Context, user *domain.User, req SearchContactRequest) (*SearchContactResult, error) {
	page, size := req.Page, req.Size
	if page < 1 {
		page = validation.DefaultPage
	}
	if size < 1 || size > validation.MaxSize {
		size = validation.DefaultSize
	}

	query := s.db.WithContext(ctx).Model(&domain.Contact{}).Where("username = ?", user.Username)
	if name := strings.TrimSpace(req.Name); name != "" {
		like := "%" + strings.ToLower(name) + "%"
		query = query.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER("+fullNameExpr(s.db)+") LIKE ?)",
			like, like, like,
		)
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		query = query.Where("phone LIKE ?", "%"+phone+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	totalPages := validation.TotalPages(total, size)

	// Pages past the end are answered without a query; (page-1)*size may not fit in an int.
	var contacts []domain.Contact
	if page <= totalPages {
		if err := query.Order("id ASC").Offset((page - 1) * size).Limit(size).Find(&contacts).Error; err != nil {
			return nil, err
		}
	}

	data := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		data = append(data, *toContactResponse(&contacts[i]))
	}
	return &SearchContactResult{
		Data: data,
		Paging: Paging{
			Page:      page,
			TotalPage: totalPages,
			TotalItem: total,
		},
	}, nil
}

// fullNameExpr is the "first last" column expression in the store's SQL dialect
func fullNameExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "CONCAT(first_name, ' ', last_name)"
	}
	return "first_name || ' ' || last_name"
}
