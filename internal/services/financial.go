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

type FinancialService interface {
	// Pay settles a pending transaction. paidOn is mandatory; an already paid
	// transaction is refused.
	Pay(ctx context.Context, txnID uuid.UUID, paidOn *time.Time, proofRef string, actorID uuid.UUID) (*types.FinancialTransaction, error)
	// EditPaid amends the amount of a settled transaction, the correction
	// workflow. A pending transaction is refused: corrections are not payments.
	EditPaid(ctx context.Context, txnID uuid.UUID, amount decimal.Decimal, actorID uuid.UUID) (*types.FinancialTransaction, error)
	// CancelPayment undoes a settlement without destroying the record.
	CancelPayment(ctx context.Context, txnID uuid.UUID, actorID uuid.UUID) (*types.FinancialTransaction, error)
	// Reverse deletes the transaction and reopens the owning commission in one
	// transaction. It is the only sanctioned way to free an approved or paid
	// commission, and the prerequisite the integrity guard demands before a
	// loan with financial impact can be deleted.
	Reverse(ctx context.Context, txnID uuid.UUID, actorID uuid.UUID) error
	GetBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.FinancialTransaction, error)
	GetByPeriod(ctx context.Context, period string) ([]*types.FinancialTransaction, error)
	List(ctx context.Context, filter repos.TransactionFilter) ([]*types.FinancialTransaction, error)
}

type financialService struct {
	db           *gorm.DB
	log          *logger.Logger
	transactions repos.FinancialTransactionRepo
	commissions  repos.CommissionRepo
	audit        AuditService
}

func NewFinancialService(
	db *gorm.DB,
	baseLog *logger.Logger,
	transactions repos.FinancialTransactionRepo,
	commissions repos.CommissionRepo,
	audit AuditService,
) FinancialService {
	return &financialService{
		db:           db,
		log:          baseLog.With("service", "FinancialService"),
		transactions: transactions,
		commissions:  commissions,
		audit:        audit,
	}
}

func (fs *financialService) Pay(ctx context.Context, txnID uuid.UUID, paidOn *time.Time, proofRef string, actorID uuid.UUID) (*types.FinancialTransaction, error) {
	if paidOn == nil || paidOn.IsZero() {
		return nil, fmt.Errorf("paid_on required: %w", perrors.ErrValidation)
	}

	var paid *types.FinancialTransaction
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := fs.transactions.GetByID(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fmt.Errorf("transaction %s: %w", txnID, perrors.ErrNotFound)
		}

		ok, err := fs.transactions.MarkPaidIf(ctx, tx, txnID, *paidOn, proofRef)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("pay transaction %s from status %q: %w", txnID, txn.Status, perrors.ErrInvalidState)
		}

		txn.Status = types.TransactionStatusPaid
		txn.PaidOn = paidOn
		txn.ProofRef = proofRef
		paid = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	fs.audit.Record(ctx, actorID, AuditModuleFinancial, "pay", txnID, map[string]any{
		"paid_on": paidOn.Format("2006-01-02"),
		"amount":  paid.Amount.String(),
	})
	return paid, nil
}

func (fs *financialService) EditPaid(ctx context.Context, txnID uuid.UUID, amount decimal.Decimal, actorID uuid.UUID) (*types.FinancialTransaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("amount must be positive: %w", perrors.ErrValidation)
	}

	var edited *types.FinancialTransaction
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := fs.transactions.GetByID(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fmt.Errorf("transaction %s: %w", txnID, perrors.ErrNotFound)
		}

		ok, err := fs.transactions.UpdateAmountIfPaid(ctx, tx, txnID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("edit transaction %s: only paid transactions can be corrected: %w", txnID, perrors.ErrInvalidState)
		}

		txn.Amount = amount
		edited = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	fs.audit.Record(ctx, actorID, AuditModuleFinancial, "edit_paid", txnID, map[string]any{
		"amount": amount.String(),
	})
	return edited, nil
}

func (fs *financialService) CancelPayment(ctx context.Context, txnID uuid.UUID, actorID uuid.UUID) (*types.FinancialTransaction, error) {
	var reverted *types.FinancialTransaction
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := fs.transactions.GetByID(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fmt.Errorf("transaction %s: %w", txnID, perrors.ErrNotFound)
		}

		ok, err := fs.transactions.MarkPendingIf(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cancel payment of transaction %s from status %q: %w", txnID, txn.Status, perrors.ErrInvalidState)
		}

		txn.Status = types.TransactionStatusPending
		txn.PaidOn = nil
		txn.ProofRef = ""
		reverted = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	fs.audit.Record(ctx, actorID, AuditModuleFinancial, "cancel_payment", txnID, nil)
	return reverted, nil
}

func (fs *financialService) Reverse(ctx context.Context, txnID uuid.UUID, actorID uuid.UUID) error {
	var commissionID uuid.UUID
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txn, err := fs.transactions.GetByID(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if txn == nil {
			return fmt.Errorf("transaction %s: %w", txnID, perrors.ErrNotFound)
		}
		commissionID = txn.CommissionID

		rows, err := fs.transactions.Delete(ctx, tx, txnID)
		if err != nil {
			return err
		}
		if rows != 1 {
			return fmt.Errorf("transaction %s: %w", txnID, perrors.ErrNotFound)
		}

		// Unconditional: whatever state the commission drifted into, a
		// reversal must never leave it approved with no transaction behind it.
		return fs.commissions.SetStatus(ctx, tx, commissionID, types.CommissionStatusOpen)
	})
	if err != nil {
		return err
	}

	fs.audit.Record(ctx, actorID, AuditModuleFinancial, "reverse", txnID, map[string]any{
		"commission_id": commissionID.String(),
	})
	return nil
}

func (fs *financialService) GetBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.FinancialTransaction, error) {
	return fs.transactions.List(ctx, nil, repos.TransactionFilter{SellerID: &sellerID})
}

func (fs *financialService) GetByPeriod(ctx context.Context, period string) ([]*types.FinancialTransaction, error) {
	return fs.transactions.List(ctx, nil, repos.TransactionFilter{Period: period})
}

func (fs *financialService) List(ctx context.Context, filter repos.TransactionFilter) ([]*types.FinancialTransaction, error) {
	return fs.transactions.List(ctx, nil, filter)
}
