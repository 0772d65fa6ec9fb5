package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Auxiliary lookup tables used to classify loans. Each one gets a plain typed
// repo, no runtime model dispatch.

type Bank struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code string    `gorm:"uniqueIndex;not null" json:"code"`
	Name string    `gorm:"not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Bank) TableName() string { return "bank" }

type Organ struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Organ) TableName() string { return "organ" }

type LoanType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (LoanType) TableName() string { return "loan_type" }

type LoanGroup struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (LoanGroup) TableName() string { return "loan_group" }

// RateTable is a bank-specific commission factor table.
type RateTable struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BankID uuid.UUID       `gorm:"type:uuid;not null;index" json:"bank_id"`
	Name   string          `gorm:"not null" json:"name"`
	Factor decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"factor"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RateTable) TableName() string { return "rate_table" }
