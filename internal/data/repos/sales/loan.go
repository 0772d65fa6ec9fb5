package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type LoanFilter struct {
	SellerID *uuid.UUID
	Status   string
}

type LoanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, loans []*types.Loan) ([]*types.Loan, error)
	GetByID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Loan, error)
	List(ctx context.Context, tx *gorm.DB, filter LoanFilter) ([]*types.Loan, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, fields map[string]any) error
	// UpdateStatusIf flips the status only when the row still carries
	// fromStatus. Returns false when the row was missing or had moved on.
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, fromStatus, toStatus string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (int64, error)
}

type loanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanRepo(db *gorm.DB, baseLog *logger.Logger) LoanRepo {
	repoLog := baseLog.With("repo", "LoanRepo")
	return &loanRepo{db: db, log: repoLog}
}

func (lr *loanRepo) Create(ctx context.Context, tx *gorm.DB, loans []*types.Loan) ([]*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(loans) == 0 {
		return []*types.Loan{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (lr *loanRepo) GetByID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.Loan
	if err := transaction.WithContext(ctx).
		Where("id = ?", loanID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (lr *loanRepo) List(ctx context.Context, tx *gorm.DB, filter LoanFilter) ([]*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Loan{})
	if filter.SellerID != nil {
		q = q.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var results []*types.Loan
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *loanRepo) UpdateFields(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Loan{}).
		Where("id = ?", loanID).
		Updates(fields).Error
}

func (lr *loanRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, fromStatus, toStatus string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Loan{}).
		Where("id = ? AND status = ?", loanID, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (lr *loanRepo) Delete(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", loanID).
		Delete(&types.Loan{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
