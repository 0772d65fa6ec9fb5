package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type CreateLoanInput struct {
	CustomerID uuid.UUID
	SellerID   uuid.UUID

	BankID      *uuid.UUID
	OrganID     *uuid.UUID
	LoanTypeID  *uuid.UUID
	LoanGroupID *uuid.UUID
	RateTableID *uuid.UUID

	GrossValue       decimal.Decimal
	NetValue         decimal.Decimal
	InstallmentCount int
	InstallmentValue decimal.Decimal
	StartDate        time.Time

	CommissionBasis      string
	CommissionBasisValue decimal.Decimal
}

// UpdateLoanInput is a partial patch. Commission-relevant fields are absent on
// purpose: a registered sale's commission is only ever changed through the
// commission engine.
type UpdateLoanInput struct {
	BankID      *uuid.UUID
	OrganID     *uuid.UUID
	LoanTypeID  *uuid.UUID
	LoanGroupID *uuid.UUID
	RateTableID *uuid.UUID

	NetValue         *decimal.Decimal
	InstallmentCount *int
	InstallmentValue *decimal.Decimal
}

type LoanService interface {
	Create(ctx context.Context, input CreateLoanInput, actorID uuid.UUID) (*types.Loan, error)
	UpdateStatus(ctx context.Context, loanID uuid.UUID, newStatus string, actorID uuid.UUID) (*types.Loan, error)
	Update(ctx context.Context, loanID uuid.UUID, patch UpdateLoanInput, actorID uuid.UUID) (*types.Loan, error)
	// Delete applies the integrity guard: refused outright when the commission
	// chain has financial impact, otherwise loan and commission go together.
	Delete(ctx context.Context, loanID, actorID uuid.UUID) error
	Get(ctx context.Context, loanID uuid.UUID) (*types.Loan, error)
	List(ctx context.Context, filter repos.LoanFilter) ([]*types.Loan, error)
}

type loanService struct {
	db           *gorm.DB
	log          *logger.Logger
	loans        repos.LoanRepo
	commissions  repos.CommissionRepo
	transactions repos.FinancialTransactionRepo
	engine       CommissionService
	audit        AuditService
}

func NewLoanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	loans repos.LoanRepo,
	commissions repos.CommissionRepo,
	transactions repos.FinancialTransactionRepo,
	engine CommissionService,
	audit AuditService,
) LoanService {
	return &loanService{
		db:           db,
		log:          baseLog.With("service", "LoanService"),
		loans:        loans,
		commissions:  commissions,
		transactions: transactions,
		engine:       engine,
		audit:        audit,
	}
}

var validLoanStatuses = map[string]struct{}{
	types.LoanStatusActive:    {},
	types.LoanStatusPaid:      {},
	types.LoanStatusCanceled:  {},
	types.LoanStatusDefaulted: {},
}

func validateCreateLoanInput(input CreateLoanInput) error {
	if input.CustomerID == uuid.Nil {
		return fmt.Errorf("customer_id required: %w", perrors.ErrValidation)
	}
	if input.SellerID == uuid.Nil {
		return fmt.Errorf("seller_id required: %w", perrors.ErrValidation)
	}
	if input.GrossValue.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("gross_value must be positive: %w", perrors.ErrValidation)
	}
	if input.NetValue.IsNegative() {
		return fmt.Errorf("net_value must not be negative: %w", perrors.ErrValidation)
	}
	if input.InstallmentCount <= 0 {
		return fmt.Errorf("installment_count must be positive: %w", perrors.ErrValidation)
	}
	if input.StartDate.IsZero() {
		return fmt.Errorf("start_date required: %w", perrors.ErrValidation)
	}
	return nil
}

func (ls *loanService) Create(ctx context.Context, input CreateLoanInput, actorID uuid.UUID) (*types.Loan, error) {
	if err := validateCreateLoanInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loan := &types.Loan{
		ID:                   uuid.New(),
		CustomerID:           input.CustomerID,
		SellerID:             input.SellerID,
		BankID:               input.BankID,
		OrganID:              input.OrganID,
		LoanTypeID:           input.LoanTypeID,
		LoanGroupID:          input.LoanGroupID,
		RateTableID:          input.RateTableID,
		GrossValue:           input.GrossValue,
		NetValue:             input.NetValue,
		InstallmentCount:     input.InstallmentCount,
		InstallmentValue:     input.InstallmentValue,
		StartDate:            input.StartDate,
		CommissionBasis:      input.CommissionBasis,
		CommissionBasisValue: input.CommissionBasisValue,
		Status:               types.LoanStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ls.loans.Create(ctx, tx, []*types.Loan{loan}); err != nil {
			return err
		}
		// A commission computation failure rolls the loan insert back: no loan
		// ever exists without its open commission.
		if _, err := ls.engine.CalculateAndCreate(ctx, tx, loan); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.audit.Record(ctx, actorID, AuditModuleLoans, "create", loan.ID, map[string]any{
		"gross_value": loan.GrossValue.String(),
		"seller_id":   loan.SellerID.String(),
	})
	return loan, nil
}

func (ls *loanService) UpdateStatus(ctx context.Context, loanID uuid.UUID, newStatus string, actorID uuid.UUID) (*types.Loan, error) {
	if _, ok := validLoanStatuses[newStatus]; !ok {
		return nil, fmt.Errorf("unknown loan status %q: %w", newStatus, perrors.ErrValidation)
	}

	var updated *types.Loan
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loan, err := ls.loans.GetByID(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("loan %s: %w", loanID, perrors.ErrNotFound)
		}
		if loan.Status == newStatus {
			updated = loan
			return nil
		}

		ok, err := ls.loans.UpdateStatusIf(ctx, tx, loanID, loan.Status, newStatus)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("loan %s status moved concurrently: %w", loanID, perrors.ErrInvalidState)
		}

		// Canceling the sale cancels the dependent commission through the
		// engine, which enforces the guard: a paid commission blocks the whole
		// transition instead of desynchronizing.
		if newStatus == types.LoanStatusCanceled {
			commission, err := ls.commissions.GetByLoanID(ctx, tx, loanID)
			if err != nil {
				return err
			}
			if commission != nil && commission.Status != types.CommissionStatusCanceled {
				if _, err := ls.engine.CancelInTx(ctx, tx, commission.ID); err != nil {
					return err
				}
			}
		}

		loan.Status = newStatus
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.audit.Record(ctx, actorID, AuditModuleLoans, "update_status", loanID, map[string]any{
		"status": newStatus,
	})
	return updated, nil
}

func (ls *loanService) Update(ctx context.Context, loanID uuid.UUID, patch UpdateLoanInput, actorID uuid.UUID) (*types.Loan, error) {
	fields := map[string]any{}
	if patch.BankID != nil {
		fields["bank_id"] = *patch.BankID
	}
	if patch.OrganID != nil {
		fields["organ_id"] = *patch.OrganID
	}
	if patch.LoanTypeID != nil {
		fields["loan_type_id"] = *patch.LoanTypeID
	}
	if patch.LoanGroupID != nil {
		fields["loan_group_id"] = *patch.LoanGroupID
	}
	if patch.RateTableID != nil {
		fields["rate_table_id"] = *patch.RateTableID
	}
	if patch.NetValue != nil {
		if patch.NetValue.IsNegative() {
			return nil, fmt.Errorf("net_value must not be negative: %w", perrors.ErrValidation)
		}
		fields["net_value"] = *patch.NetValue
	}
	if patch.InstallmentCount != nil {
		if *patch.InstallmentCount <= 0 {
			return nil, fmt.Errorf("installment_count must be positive: %w", perrors.ErrValidation)
		}
		fields["installment_count"] = *patch.InstallmentCount
	}
	if patch.InstallmentValue != nil {
		fields["installment_value"] = *patch.InstallmentValue
	}

	var updated *types.Loan
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loan, err := ls.loans.GetByID(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("loan %s: %w", loanID, perrors.ErrNotFound)
		}
		if len(fields) == 0 {
			updated = loan
			return nil
		}
		if err := ls.loans.UpdateFields(ctx, tx, loanID, fields); err != nil {
			return err
		}
		refreshed, err := ls.loans.GetByID(ctx, tx, loanID)
		if err != nil {
			return err
		}
		updated = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	ls.audit.Record(ctx, actorID, AuditModuleLoans, "update", loanID, nil)
	return updated, nil
}

func (ls *loanService) Delete(ctx context.Context, loanID, actorID uuid.UUID) error {
	err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loan, err := ls.loans.GetByID(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fmt.Errorf("loan %s: %w", loanID, perrors.ErrNotFound)
		}

		commission, err := ls.commissions.GetByLoanID(ctx, tx, loanID)
		if err != nil {
			return err
		}
		var txn *types.FinancialTransaction
		if commission != nil {
			txn, err = ls.transactions.GetByCommissionID(ctx, tx, commission.ID)
			if err != nil {
				return err
			}
		}

		decision, err := DecideLoanDeletion(commission, txn)
		if err != nil {
			return fmt.Errorf("delete loan %s: %w", loanID, err)
		}

		if decision.CascadeCommission {
			// Delete is conditioned on the harmless statuses so a concurrent
			// approval between our read and this write voids the decision and
			// aborts the transaction.
			rows, err := ls.commissions.DeleteByLoanIDInStatus(ctx, tx, loanID, []string{
				types.CommissionStatusOpen,
				types.CommissionStatusCanceled,
			})
			if err != nil {
				return err
			}
			if rows != 1 {
				return fmt.Errorf("delete loan %s: commission state changed: %w", loanID, perrors.ErrBlockedDeletion)
			}
		}

		rows, err := ls.loans.Delete(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if rows != 1 {
			return fmt.Errorf("loan %s: %w", loanID, perrors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ls.audit.Record(ctx, actorID, AuditModuleLoans, "delete", loanID, nil)
	return nil
}

func (ls *loanService) Get(ctx context.Context, loanID uuid.UUID) (*types.Loan, error) {
	loan, err := ls.loans.GetByID(ctx, nil, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, perrors.ErrNotFound)
	}
	return loan, nil
}

func (ls *loanService) List(ctx context.Context, filter repos.LoanFilter) ([]*types.Loan, error) {
	return ls.loans.List(ctx, nil, filter)
}
