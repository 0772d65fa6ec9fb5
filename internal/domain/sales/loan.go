package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive    = "active"
	LoanStatusPaid      = "paid"
	LoanStatusCanceled  = "canceled"
	LoanStatusDefaulted = "defaulted"
)

const (
	CommissionBasisPercentage = "percentage"
	CommissionBasisFixed      = "fixed"
)

// Loan is a sold credit contract. Each loan owns at most one commission
// (commission.loan_id is unique) and is only ever deleted through the
// integrity guard in LoanService.
type Loan struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`

	BankID      *uuid.UUID `gorm:"type:uuid;index" json:"bank_id,omitempty"`
	OrganID     *uuid.UUID `gorm:"type:uuid;index" json:"organ_id,omitempty"`
	LoanTypeID  *uuid.UUID `gorm:"type:uuid;index" json:"loan_type_id,omitempty"`
	LoanGroupID *uuid.UUID `gorm:"type:uuid;index" json:"loan_group_id,omitempty"`
	RateTableID *uuid.UUID `gorm:"type:uuid;index" json:"rate_table_id,omitempty"`

	GrossValue       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"gross_value"`
	NetValue         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"net_value"`
	InstallmentCount int             `gorm:"not null" json:"installment_count"`
	InstallmentValue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"installment_value"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`

	// percentage|fixed
	CommissionBasis string `gorm:"not null" json:"commission_basis"`
	// percentage of gross value or fixed amount, per the basis
	CommissionBasisValue decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"commission_basis_value"`

	// active|paid|canceled|defaulted
	Status string `gorm:"not null;index" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Loan) TableName() string { return "loan" }
