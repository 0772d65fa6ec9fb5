package party

import (
	"time"

	"github.com/google/uuid"
)

// Seller is the salesperson who owns loans and earns commissions. Admin
// sellers see every record; the scoping decision is made by the caller, never
// inside the domain services.
type Seller struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Email  string    `gorm:"uniqueIndex;not null" json:"email"`
	Active bool      `gorm:"not null;default:true" json:"active"`
	Admin  bool      `gorm:"not null;default:false" json:"admin"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Seller) TableName() string { return "seller" }
