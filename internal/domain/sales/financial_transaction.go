package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionStatusPending = "pending"
	TransactionStatusPaid    = "paid"
)

// FinancialTransaction is the payable/paid money movement behind an approved
// commission. It is created only by commission approval and removed only by an
// explicit reversal that reopens the owning commission.
type FinancialTransaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CommissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"commission_id"`
	SellerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`

	Amount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	// pending|paid
	Status string `gorm:"not null;index" json:"status"`

	PaidOn   *time.Time `gorm:"index" json:"paid_on,omitempty"`
	ProofRef string     `json:"proof_ref,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FinancialTransaction) TableName() string { return "financial_transaction" }
