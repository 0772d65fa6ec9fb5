package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

// Each lookup table gets its own typed repo. The tables are tiny and
// read-mostly, so the surface is just Create/GetByID/List.

type BankRepo interface {
	Create(ctx context.Context, tx *gorm.DB, banks []*types.Bank) ([]*types.Bank, error)
	GetByID(ctx context.Context, tx *gorm.DB, bankID uuid.UUID) (*types.Bank, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Bank, error)
}

type OrganRepo interface {
	Create(ctx context.Context, tx *gorm.DB, organs []*types.Organ) ([]*types.Organ, error)
	GetByID(ctx context.Context, tx *gorm.DB, organID uuid.UUID) (*types.Organ, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Organ, error)
}

type LoanTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, loanTypes []*types.LoanType) ([]*types.LoanType, error)
	GetByID(ctx context.Context, tx *gorm.DB, loanTypeID uuid.UUID) (*types.LoanType, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.LoanType, error)
}

type LoanGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, loanGroups []*types.LoanGroup) ([]*types.LoanGroup, error)
	GetByID(ctx context.Context, tx *gorm.DB, loanGroupID uuid.UUID) (*types.LoanGroup, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.LoanGroup, error)
}

type RateTableRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rateTables []*types.RateTable) ([]*types.RateTable, error)
	GetByID(ctx context.Context, tx *gorm.DB, rateTableID uuid.UUID) (*types.RateTable, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.RateTable, error)
	ListByBankID(ctx context.Context, tx *gorm.DB, bankID uuid.UUID) ([]*types.RateTable, error)
}

type bankRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBankRepo(db *gorm.DB, baseLog *logger.Logger) BankRepo {
	return &bankRepo{db: db, log: baseLog.With("repo", "BankRepo")}
}

func (br *bankRepo) Create(ctx context.Context, tx *gorm.DB, banks []*types.Bank) ([]*types.Bank, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(banks) == 0 {
		return []*types.Bank{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (br *bankRepo) GetByID(ctx context.Context, tx *gorm.DB, bankID uuid.UUID) (*types.Bank, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var result types.Bank
	if err := transaction.WithContext(ctx).Where("id = ?", bankID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (br *bankRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Bank, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Bank
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type organRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganRepo(db *gorm.DB, baseLog *logger.Logger) OrganRepo {
	return &organRepo{db: db, log: baseLog.With("repo", "OrganRepo")}
}

func (or *organRepo) Create(ctx context.Context, tx *gorm.DB, organs []*types.Organ) ([]*types.Organ, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(organs) == 0 {
		return []*types.Organ{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&organs).Error; err != nil {
		return nil, err
	}
	return organs, nil
}

func (or *organRepo) GetByID(ctx context.Context, tx *gorm.DB, organID uuid.UUID) (*types.Organ, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var result types.Organ
	if err := transaction.WithContext(ctx).Where("id = ?", organID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (or *organRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Organ, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.Organ
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type loanTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanTypeRepo(db *gorm.DB, baseLog *logger.Logger) LoanTypeRepo {
	return &loanTypeRepo{db: db, log: baseLog.With("repo", "LoanTypeRepo")}
}

func (tr *loanTypeRepo) Create(ctx context.Context, tx *gorm.DB, loanTypes []*types.LoanType) ([]*types.LoanType, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(loanTypes) == 0 {
		return []*types.LoanType{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&loanTypes).Error; err != nil {
		return nil, err
	}
	return loanTypes, nil
}

func (tr *loanTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, loanTypeID uuid.UUID) (*types.LoanType, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.LoanType
	if err := transaction.WithContext(ctx).Where("id = ?", loanTypeID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (tr *loanTypeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.LoanType, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.LoanType
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type loanGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanGroupRepo(db *gorm.DB, baseLog *logger.Logger) LoanGroupRepo {
	return &loanGroupRepo{db: db, log: baseLog.With("repo", "LoanGroupRepo")}
}

func (gr *loanGroupRepo) Create(ctx context.Context, tx *gorm.DB, loanGroups []*types.LoanGroup) ([]*types.LoanGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	if len(loanGroups) == 0 {
		return []*types.LoanGroup{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&loanGroups).Error; err != nil {
		return nil, err
	}
	return loanGroups, nil
}

func (gr *loanGroupRepo) GetByID(ctx context.Context, tx *gorm.DB, loanGroupID uuid.UUID) (*types.LoanGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var result types.LoanGroup
	if err := transaction.WithContext(ctx).Where("id = ?", loanGroupID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (gr *loanGroupRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.LoanGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}
	var results []*types.LoanGroup
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type rateTableRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRateTableRepo(db *gorm.DB, baseLog *logger.Logger) RateTableRepo {
	return &rateTableRepo{db: db, log: baseLog.With("repo", "RateTableRepo")}
}

func (rr *rateTableRepo) Create(ctx context.Context, tx *gorm.DB, rateTables []*types.RateTable) ([]*types.RateTable, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(rateTables) == 0 {
		return []*types.RateTable{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&rateTables).Error; err != nil {
		return nil, err
	}
	return rateTables, nil
}

func (rr *rateTableRepo) GetByID(ctx context.Context, tx *gorm.DB, rateTableID uuid.UUID) (*types.RateTable, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.RateTable
	if err := transaction.WithContext(ctx).Where("id = ?", rateTableID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *rateTableRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.RateTable, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RateTable
	if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rateTableRepo) ListByBankID(ctx context.Context, tx *gorm.DB, bankID uuid.UUID) ([]*types.RateTable, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.RateTable
	if err := transaction.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
