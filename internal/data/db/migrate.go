package db

import (
	types "github.com/credfacil/promotora-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Parties
		// =========================
		&types.Customer{},
		&types.Seller{},

		// =========================
		// Classification catalogs
		// =========================
		&types.Bank{},
		&types.Organ{},
		&types.LoanType{},
		&types.LoanGroup{},
		&types.RateTable{},

		// =========================
		// Sales core: loan -> commission -> financial transaction.
		// The unique indexes on commission.loan_id and
		// financial_transaction.commission_id back the 1:1 invariants.
		// =========================
		&types.Loan{},
		&types.Commission{},
		&types.FinancialTransaction{},

		// =========================
		// Audit trail
		// =========================
		&types.AuditEvent{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
