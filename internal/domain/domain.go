package domain

import (
	"github.com/credfacil/promotora-backend/internal/domain/audit"
	"github.com/credfacil/promotora-backend/internal/domain/catalog"
	"github.com/credfacil/promotora-backend/internal/domain/party"
	"github.com/credfacil/promotora-backend/internal/domain/sales"
)

const (
	LoanStatusActive    = sales.LoanStatusActive
	LoanStatusPaid      = sales.LoanStatusPaid
	LoanStatusCanceled  = sales.LoanStatusCanceled
	LoanStatusDefaulted = sales.LoanStatusDefaulted

	CommissionBasisPercentage = sales.CommissionBasisPercentage
	CommissionBasisFixed      = sales.CommissionBasisFixed

	CommissionStatusOpen     = sales.CommissionStatusOpen
	CommissionStatusApproved = sales.CommissionStatusApproved
	CommissionStatusCanceled = sales.CommissionStatusCanceled
	CommissionStatusPaid     = sales.CommissionStatusPaid

	TransactionStatusPending = sales.TransactionStatusPending
	TransactionStatusPaid    = sales.TransactionStatusPaid
)

type Customer = party.Customer
type Seller = party.Seller

type Bank = catalog.Bank
type Organ = catalog.Organ
type LoanType = catalog.LoanType
type LoanGroup = catalog.LoanGroup
type RateTable = catalog.RateTable

type Loan = sales.Loan
type Commission = sales.Commission
type CommissionView = sales.CommissionView
type FinancialTransaction = sales.FinancialTransaction

type AuditEvent = audit.AuditEvent
