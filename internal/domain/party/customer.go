package party

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Document string    `gorm:"uniqueIndex;not null" json:"document"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }
