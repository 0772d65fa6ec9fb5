package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type CommissionFilter struct {
	Period   string
	SellerID *uuid.UUID
	Status   string
}

type CommissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, commissions []*types.Commission) ([]*types.Commission, error)
	GetByID(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.Commission, error)
	GetByLoanID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Commission, error)
	List(ctx context.Context, tx *gorm.DB, filter CommissionFilter) ([]*types.Commission, error)
	// UpdateStatusIf flips status only while the row still carries fromStatus;
	// the conditional write is what closes the double-approve race.
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID, fromStatus, toStatus string) (bool, error)
	SetStatus(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID, status string) error
	// DeleteByLoanIDInStatus removes the loan's commission only while it is in
	// one of the harmless statuses, re-validating the guard decision at write
	// time.
	DeleteByLoanIDInStatus(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, statuses []string) (int64, error)
}

type commissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommissionRepo(db *gorm.DB, baseLog *logger.Logger) CommissionRepo {
	repoLog := baseLog.With("repo", "CommissionRepo")
	return &commissionRepo{db: db, log: repoLog}
}

func (cr *commissionRepo) Create(ctx context.Context, tx *gorm.DB, commissions []*types.Commission) ([]*types.Commission, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(commissions) == 0 {
		return []*types.Commission{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&commissions).Error; err != nil {
		return nil, err
	}

	return commissions, nil
}

func (cr *commissionRepo) GetByID(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.Commission, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Commission
	if err := transaction.WithContext(ctx).
		Where("id = ?", commissionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *commissionRepo) GetByLoanID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Commission, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Commission
	if err := transaction.WithContext(ctx).
		Where("loan_id = ?", loanID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *commissionRepo) List(ctx context.Context, tx *gorm.DB, filter CommissionFilter) ([]*types.Commission, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Commission{})
	if filter.Period != "" {
		q = q.Where("period = ?", filter.Period)
	}
	if filter.SellerID != nil {
		q = q.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var results []*types.Commission
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *commissionRepo) UpdateStatusIf(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID, fromStatus, toStatus string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Commission{}).
		Where("id = ? AND status = ?", commissionID, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (cr *commissionRepo) SetStatus(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Commission{}).
		Where("id = ?", commissionID).
		Update("status", status).Error
}

func (cr *commissionRepo) DeleteByLoanIDInStatus(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, statuses []string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Where("loan_id = ? AND status IN ?", loanID, statuses).
		Delete(&types.Commission{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
