package party

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type CustomerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, customers []*types.Customer) ([]*types.Customer, error)
	GetByID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) (*types.Customer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Customer, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, fields map[string]any) error
}

type customerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCustomerRepo(db *gorm.DB, baseLog *logger.Logger) CustomerRepo {
	repoLog := baseLog.With("repo", "CustomerRepo")
	return &customerRepo{db: db, log: repoLog}
}

func (cr *customerRepo) Create(ctx context.Context, tx *gorm.DB, customers []*types.Customer) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(customers) == 0 {
		return []*types.Customer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (cr *customerRepo) GetByID(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) (*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Customer
	if err := transaction.WithContext(ctx).
		Where("id = ?", customerID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (cr *customerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Customer, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Customer
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *customerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Customer{}).
		Where("id = ?", customerID).
		Updates(fields).Error
}
