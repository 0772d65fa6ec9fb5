package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

// CatalogService fronts the classification lookup tables. Each entity has its
// own typed repo underneath; there is deliberately no generic runtime-model
// dispatch here.
type CatalogService interface {
	CreateBank(ctx context.Context, code, name string) (*types.Bank, error)
	ListBanks(ctx context.Context) ([]*types.Bank, error)

	CreateOrgan(ctx context.Context, name string) (*types.Organ, error)
	ListOrgans(ctx context.Context) ([]*types.Organ, error)

	CreateLoanType(ctx context.Context, name string) (*types.LoanType, error)
	ListLoanTypes(ctx context.Context) ([]*types.LoanType, error)

	CreateLoanGroup(ctx context.Context, name string) (*types.LoanGroup, error)
	ListLoanGroups(ctx context.Context) ([]*types.LoanGroup, error)

	CreateRateTable(ctx context.Context, bankID uuid.UUID, name string, factor decimal.Decimal) (*types.RateTable, error)
	ListRateTables(ctx context.Context) ([]*types.RateTable, error)
}

type catalogService struct {
	db         *gorm.DB
	log        *logger.Logger
	banks      repos.BankRepo
	organs     repos.OrganRepo
	loanTypes  repos.LoanTypeRepo
	loanGroups repos.LoanGroupRepo
	rateTables repos.RateTableRepo
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	banks repos.BankRepo,
	organs repos.OrganRepo,
	loanTypes repos.LoanTypeRepo,
	loanGroups repos.LoanGroupRepo,
	rateTables repos.RateTableRepo,
) CatalogService {
	return &catalogService{
		db:         db,
		log:        baseLog.With("service", "CatalogService"),
		banks:      banks,
		organs:     organs,
		loanTypes:  loanTypes,
		loanGroups: loanGroups,
		rateTables: rateTables,
	}
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name required: %w", perrors.ErrValidation)
	}
	return name, nil
}

func (cs *catalogService) CreateBank(ctx context.Context, code, name string) (*types.Bank, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("bank code required: %w", perrors.ErrValidation)
	}

	now := time.Now().UTC()
	row := &types.Bank{ID: uuid.New(), Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	if _, err := cs.banks.Create(ctx, nil, []*types.Bank{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *catalogService) ListBanks(ctx context.Context) ([]*types.Bank, error) {
	return cs.banks.List(ctx, nil)
}

func (cs *catalogService) CreateOrgan(ctx context.Context, name string) (*types.Organ, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	row := &types.Organ{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	if _, err := cs.organs.Create(ctx, nil, []*types.Organ{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *catalogService) ListOrgans(ctx context.Context) ([]*types.Organ, error) {
	return cs.organs.List(ctx, nil)
}

func (cs *catalogService) CreateLoanType(ctx context.Context, name string) (*types.LoanType, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	row := &types.LoanType{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	if _, err := cs.loanTypes.Create(ctx, nil, []*types.LoanType{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *catalogService) ListLoanTypes(ctx context.Context) ([]*types.LoanType, error) {
	return cs.loanTypes.List(ctx, nil)
}

func (cs *catalogService) CreateLoanGroup(ctx context.Context, name string) (*types.LoanGroup, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	row := &types.LoanGroup{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	if _, err := cs.loanGroups.Create(ctx, nil, []*types.LoanGroup{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *catalogService) ListLoanGroups(ctx context.Context) ([]*types.LoanGroup, error) {
	return cs.loanGroups.List(ctx, nil)
}

func (cs *catalogService) CreateRateTable(ctx context.Context, bankID uuid.UUID, name string, factor decimal.Decimal) (*types.RateTable, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if bankID == uuid.Nil {
		return nil, fmt.Errorf("bank_id required: %w", perrors.ErrValidation)
	}
	if factor.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("factor must be positive: %w", perrors.ErrValidation)
	}

	bank, err := cs.banks.GetByID(ctx, nil, bankID)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, fmt.Errorf("bank %s: %w", bankID, perrors.ErrNotFound)
	}

	now := time.Now().UTC()
	row := &types.RateTable{ID: uuid.New(), BankID: bankID, Name: name, Factor: factor, CreatedAt: now, UpdatedAt: now}
	if _, err := cs.rateTables.Create(ctx, nil, []*types.RateTable{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *catalogService) ListRateTables(ctx context.Context) ([]*types.RateTable, error) {
	return cs.rateTables.List(ctx, nil)
}
