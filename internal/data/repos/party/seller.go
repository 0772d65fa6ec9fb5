package party

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/credfacil/promotora-backend/internal/domain"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type SellerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sellers []*types.Seller) ([]*types.Seller, error)
	GetByID(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) (*types.Seller, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Seller, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, fields map[string]any) error
}

type sellerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSellerRepo(db *gorm.DB, baseLog *logger.Logger) SellerRepo {
	repoLog := baseLog.With("repo", "SellerRepo")
	return &sellerRepo{db: db, log: repoLog}
}

func (sr *sellerRepo) Create(ctx context.Context, tx *gorm.DB, sellers []*types.Seller) ([]*types.Seller, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sellers) == 0 {
		return []*types.Seller{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

func (sr *sellerRepo) GetByID(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID) (*types.Seller, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Seller
	if err := transaction.WithContext(ctx).
		Where("id = ?", sellerID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (sr *sellerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Seller, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Seller
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sellerRepo) UpdateFields(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Seller{}).
		Where("id = ?", sellerID).
		Updates(fields).Error
}
