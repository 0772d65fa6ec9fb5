package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type PartyService interface {
	CreateCustomer(ctx context.Context, name, document, phone, email string) (*types.Customer, error)
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*types.Customer, error)
	ListCustomers(ctx context.Context) ([]*types.Customer, error)

	CreateSeller(ctx context.Context, name, email string, admin bool) (*types.Seller, error)
	GetSeller(ctx context.Context, sellerID uuid.UUID) (*types.Seller, error)
	ListSellers(ctx context.Context) ([]*types.Seller, error)
}

type partyService struct {
	db        *gorm.DB
	log       *logger.Logger
	customers repos.CustomerRepo
	sellers   repos.SellerRepo
}

func NewPartyService(db *gorm.DB, baseLog *logger.Logger, customers repos.CustomerRepo, sellers repos.SellerRepo) PartyService {
	return &partyService{
		db:        db,
		log:       baseLog.With("service", "PartyService"),
		customers: customers,
		sellers:   sellers,
	}
}

func (ps *partyService) CreateCustomer(ctx context.Context, name, document, phone, email string) (*types.Customer, error) {
	name = strings.TrimSpace(name)
	document = strings.TrimSpace(document)
	if name == "" {
		return nil, fmt.Errorf("customer name required: %w", perrors.ErrValidation)
	}
	if document == "" {
		return nil, fmt.Errorf("customer document required: %w", perrors.ErrValidation)
	}

	now := time.Now().UTC()
	row := &types.Customer{
		ID:        uuid.New(),
		Name:      name,
		Document:  document,
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ps.customers.Create(ctx, nil, []*types.Customer{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (ps *partyService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*types.Customer, error) {
	customer, err := ps.customers.GetByID(ctx, nil, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, perrors.ErrNotFound)
	}
	return customer, nil
}

func (ps *partyService) ListCustomers(ctx context.Context) ([]*types.Customer, error) {
	return ps.customers.List(ctx, nil)
}

func (ps *partyService) CreateSeller(ctx context.Context, name, email string, admin bool) (*types.Seller, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("seller name required: %w", perrors.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("seller email required: %w", perrors.ErrValidation)
	}

	now := time.Now().UTC()
	row := &types.Seller{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Active:    true,
		Admin:     admin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ps.sellers.Create(ctx, nil, []*types.Seller{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (ps *partyService) GetSeller(ctx context.Context, sellerID uuid.UUID) (*types.Seller, error) {
	seller, err := ps.sellers.GetByID(ctx, nil, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, fmt.Errorf("seller %s: %w", sellerID, perrors.ErrNotFound)
	}
	return seller, nil
}

func (ps *partyService) ListSellers(ctx context.Context) ([]*types.Seller, error) {
	return ps.sellers.List(ctx, nil)
}
