package service

import (
	"contact_manager/internal/apperror"
	"contact_manager/internal/domain"

	"gorm.io/gorm"
)

// mustOwnContact confirms that exactly one contact with contactID belongs to
// user. Unknown ids and ids owned by someone else both yield the same
// NotFoundError so callers cannot probe for other users' contacts.
func mustOwnContact(tx *gorm.DB, user *domain.User, contactID uint) (uint, error) {
	var total int64
	if err := tx.Model(&domain.Contact{}).
		Where("username = ? AND id = ?", user.Username, contactID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total != 1 {
		return 0, apperror.NotFound("Contact not found")
	}
	return contactID, nil
}
