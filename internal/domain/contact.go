package domain

// Contact Model
type Contact struct {
	ID        uint      `gorm:"primaryKey"`                                    // Primary key
	Username  string    `gorm:"size:100;not null;index"`                       // Foreign key to the owning User
	FirstName string    `gorm:"size:100;not null"`                             // First name
	LastName  string    `gorm:"size:100"`                                      // Last name (optional)
	Email     string    `gorm:"size:200"`                                      // Email (optional)
	Phone     string    `gorm:"size:20"`                                       // Phone (optional)
	Addresses []Address `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Addresses of the contact
}
