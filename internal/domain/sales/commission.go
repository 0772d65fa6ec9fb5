package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CommissionStatusOpen     = "open"
	CommissionStatusApproved = "approved"
	CommissionStatusCanceled = "canceled"

	// CommissionStatusPaid is never stored on the commission row. It is the
	// derived effective status when the linked financial transaction is paid.
	CommissionStatusPaid = "paid"
)

// Commission is the payout owed to a seller for one loan. A commission is
// approved if and only if exactly one financial transaction exists for it.
type Commission struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	LoanID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"loan_id"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`

	// percentage|fixed
	Basis string `gorm:"not null" json:"basis"`
	// gross value for percentage, declared amount for fixed
	ReferenceValue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"reference_value"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	// YYYY-MM of the loan start date
	Period string `gorm:"not null;index" json:"period"`

	// open|approved|canceled
	Status string `gorm:"not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Commission) TableName() string { return "commission" }

// CommissionView is a read projection carrying the derived effective status
// alongside the stored row.
type CommissionView struct {
	Commission
	// open|approved|canceled|paid
	EffectiveStatus string `json:"effective_status"`
}
