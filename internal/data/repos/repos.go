package repos

import (
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos/audit"
	"github.com/credfacil/promotora-backend/internal/data/repos/catalog"
	"github.com/credfacil/promotora-backend/internal/data/repos/party"
	"github.com/credfacil/promotora-backend/internal/data/repos/sales"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type CustomerRepo = party.CustomerRepo
type SellerRepo = party.SellerRepo

type BankRepo = catalog.BankRepo
type OrganRepo = catalog.OrganRepo
type LoanTypeRepo = catalog.LoanTypeRepo
type LoanGroupRepo = catalog.LoanGroupRepo
type RateTableRepo = catalog.RateTableRepo

type LoanRepo = sales.LoanRepo
type CommissionRepo = sales.CommissionRepo
type FinancialTransactionRepo = sales.FinancialTransactionRepo

type LoanFilter = sales.LoanFilter
type CommissionFilter = sales.CommissionFilter
type TransactionFilter = sales.TransactionFilter

type AuditEventRepo = audit.AuditEventRepo
type AuditEventFilter = audit.AuditEventFilter

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	return party.NewCustomerRepo(db, baseLog)
}
func NewSellerRepo(db *gorm.DB, baseLog *logger.Logger) SellerRepo {
	return party.NewSellerRepo(db, baseLog)
}

func NewBankRepo(db *gorm.DB, baseLog *logger.Logger) BankRepo {
	return catalog.NewBankRepo(db, baseLog)
}
func NewOrganRepo(db *gorm.DB, baseLog *logger.Logger) OrganRepo {
	return catalog.NewOrganRepo(db, baseLog)
}
func NewLoanTypeRepo(db *gorm.DB, baseLog *logger.Logger) LoanTypeRepo {
	return catalog.NewLoanTypeRepo(db, baseLog)
}
func NewLoanGroupRepo(db *gorm.DB, baseLog *logger.Logger) LoanGroupRepo {
	return catalog.NewLoanGroupRepo(db, baseLog)
}
func NewRateTableRepo(db *gorm.DB, baseLog *logger.Logger) RateTableRepo {
	return catalog.NewRateTableRepo(db, baseLog)
}

func NewLoanRepo(db *gorm.DB, baseLog *logger.Logger) LoanRepo {
	return sales.NewLoanRepo(db, baseLog)
}
func NewCommissionRepo(db *gorm.DB, baseLog *logger.Logger) CommissionRepo {
	return sales.NewCommissionRepo(db, baseLog)
}
func NewFinancialTransactionRepo(db *gorm.DB, baseLog *logger.Logger) FinancialTransactionRepo {
	return sales.NewFinancialTransactionRepo(db, baseLog)
}

func NewAuditEventRepo(db *gorm.DB, baseLog *logger.Logger) AuditEventRepo {
	return audit.NewAuditEventRepo(db, baseLog)
}
