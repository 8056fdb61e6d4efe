package domain

// User Model
type User struct {
	Username string  `gorm:"primaryKey;size:100"` // Primary key, chosen at registration
	Password string  `gorm:"size:100;not null"`   // Hashed password
	Name     string  `gorm:"size:100;not null"`   // Display name
	Token    *string `gorm:"size:255;index"`      // Session token, nil when logged out
	// Contacts owned by the user
	Contacts []Contact `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
