package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type TransactionFilter struct {
	SellerID *uuid.UUID
	Period   string
	Status   string
}

type FinancialTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txns []*types.FinancialTransaction) ([]*types.FinancialTransaction, error)
	GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.FinancialTransaction, error)
	GetByCommissionID(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.FinancialTransaction, error)
	GetByCommissionIDs(ctx context.Context, tx *gorm.DB, commissionIDs []uuid.UUID) ([]*types.FinancialTransaction, error)
	List(ctx context.Context, tx *gorm.DB, filter TransactionFilter) ([]*types.FinancialTransaction, error)
	// MarkPaidIf moves pending -> paid, recording payment date and proof.
	MarkPaidIf(ctx context.Context, tx *gorm.DB, txnID uuid.UUID, paidOn time.Time, proofRef string) (bool, error)
	// MarkPendingIf undoes a payment (paid -> pending), clearing date and proof.
	MarkPendingIf(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (bool, error)
	// UpdateAmountIfPaid amends the amount of an already paid transaction.
	UpdateAmountIfPaid(ctx context.Context, tx *gorm.DB, txnID uuid.UUID, amount decimal.Decimal) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (int64, error)
	// DeleteByCommissionIDIfPending voids a still-pending transaction; a paid
	// one is left untouched so the caller can refuse the operation.
	DeleteByCommissionIDIfPending(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (int64, error)
}

type financialTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialTransactionRepo(db *gorm.DB, baseLog *logger.Logger) FinancialTransactionRepo {
	repoLog := baseLog.With("repo", "FinancialTransactionRepo")
	return &financialTransactionRepo{db: db, log: repoLog}
}

func (fr *financialTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txns []*types.FinancialTransaction) ([]*types.FinancialTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(txns) == 0 {
		return []*types.FinancialTransaction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&txns).Error; err != nil {
		return nil, err
	}

	return txns, nil
}

func (fr *financialTransactionRepo) GetByID(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (*types.FinancialTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var result types.FinancialTransaction
	if err := transaction.WithContext(ctx).
		Where("id = ?", txnID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (fr *financialTransactionRepo) GetByCommissionID(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.FinancialTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var result types.FinancialTransaction
	if err := transaction.WithContext(ctx).
		Where("commission_id = ?", commissionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (fr *financialTransactionRepo) GetByCommissionIDs(ctx context.Context, tx *gorm.DB, commissionIDs []uuid.UUID) ([]*types.FinancialTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.FinancialTransaction
	if len(commissionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("commission_id IN ?", commissionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *financialTransactionRepo) List(ctx context.Context, tx *gorm.DB, filter TransactionFilter) ([]*types.FinancialTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	q := transaction.WithContext(ctx).Model(&types.FinancialTransaction{})
	if filter.SellerID != nil {
		q = q.Where("financial_transaction.seller_id = ?", *filter.SellerID)
	}
	if filter.Status != "" {
		q = q.Where("financial_transaction.status = ?", filter.Status)
	}
	if filter.Period != "" {
		q = q.Joins("JOIN commission ON commission.id = financial_transaction.commission_id").
			Where("commission.period = ?", filter.Period)
	}

	var results []*types.FinancialTransaction
	if err := q.Order("financial_transaction.created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *financialTransactionRepo) MarkPaidIf(ctx context.Context, tx *gorm.DB, txnID uuid.UUID, paidOn time.Time, proofRef string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.FinancialTransaction{}).
		Where("id = ? AND status = ?", txnID, types.TransactionStatusPending).
		Updates(map[string]any{
			"status":    types.TransactionStatusPaid,
			"paid_on":   paidOn,
			"proof_ref": proofRef,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (fr *financialTransactionRepo) MarkPendingIf(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.FinancialTransaction{}).
		Where("id = ? AND status = ?", txnID, types.TransactionStatusPaid).
		Updates(map[string]any{
			"status":    types.TransactionStatusPending,
			"paid_on":   nil,
			"proof_ref": "",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (fr *financialTransactionRepo) UpdateAmountIfPaid(ctx context.Context, tx *gorm.DB, txnID uuid.UUID, amount decimal.Decimal) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.FinancialTransaction{}).
		Where("id = ? AND status = ?", txnID, types.TransactionStatusPaid).
		Update("amount", amount)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (fr *financialTransactionRepo) Delete(ctx context.Context, tx *gorm.DB, txnID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", txnID).
		Delete(&types.FinancialTransaction{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (fr *financialTransactionRepo) DeleteByCommissionIDIfPending(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Where("commission_id = ? AND status = ?", commissionID, types.TransactionStatusPending).
		Delete(&types.FinancialTransaction{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
