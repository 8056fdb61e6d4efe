package domain

// Address Model
type Address struct {
	ID         uint   `gorm:"primaryKey"`        // Primary key
	ContactID  uint   `gorm:"not null;index"`    // Foreign key to Contact
	Street     string `gorm:"size:255"`          // Street (optional)
	City       string `gorm:"size:100"`          // City (optional)
	Province   string `gorm:"size:100"`          // Province (optional)
	Country    string `gorm:"size:100;not null"` // Country
	PostalCode string `gorm:"size:10;not null"`  // Postal code
}
