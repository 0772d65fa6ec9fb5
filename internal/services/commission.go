package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	redisclient "github.com/credfacil/promotora-backend/internal/clients/redis"
	"github.com/credfacil/promotora-backend/internal/data/repos"
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

const periodSummaryTTL = 60 * time.Second

var oneHundred = decimal.NewFromInt(100)

// PeriodSummary aggregates a month of commissions, optionally scoped to one
// seller by the caller.
type PeriodSummary struct {
	Period        string          `json:"period"`
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	OpenTotal     decimal.Decimal `json:"open_total"`
	ApprovedTotal decimal.Decimal `json:"approved_total"`
	PaidTotal     decimal.Decimal `json:"paid_total"`
}

type CommissionService interface {
	// CalculateAndCreate computes and stores the open commission for a freshly
	// registered loan. It always runs inside the caller's transaction so a
	// computation failure rolls the loan back too.
	CalculateAndCreate(ctx context.Context, tx *gorm.DB, loan *types.Loan) (*types.Commission, error)
	Approve(ctx context.Context, commissionID, actorID uuid.UUID) (*types.Commission, error)
	Cancel(ctx context.Context, commissionID, actorID uuid.UUID) (*types.Commission, error)
	// CancelInTx is the transactional body of Cancel, shared with the loan
	// ledger when a loan cancellation drags its commission along.
	CancelInTx(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.Commission, error)
	GetByFilters(ctx context.Context, filter repos.CommissionFilter) ([]*types.CommissionView, error)
	ListAll(ctx context.Context) ([]*types.CommissionView, error)
	PeriodSummary(ctx context.Context, period string, sellerID *uuid.UUID) (*PeriodSummary, error)
}

type commissionService struct {
	db           *gorm.DB
	log          *logger.Logger
	commissions  repos.CommissionRepo
	transactions repos.FinancialTransactionRepo
	audit        AuditService
	cache        redisclient.Cache
}

func NewCommissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	commissions repos.CommissionRepo,
	transactions repos.FinancialTransactionRepo,
	audit AuditService,
	cache redisclient.Cache,
) CommissionService {
	return &commissionService{
		db:           db,
		log:          baseLog.With("service", "CommissionService"),
		commissions:  commissions,
		transactions: transactions,
		audit:        audit,
		cache:        cache,
	}
}

// PeriodKey renders the month/year bucket a commission belongs to.
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// ComputeCommissionAmount resolves the declared basis into a concrete payout,
// rounded half-up to cents.
func ComputeCommissionAmount(basis string, basisValue, grossValue decimal.Decimal) (amount, reference decimal.Decimal, err error) {
	if basisValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("commission basis value must be positive: %w", perrors.ErrValidation)
	}
	switch basis {
	case types.CommissionBasisPercentage:
		if grossValue.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("gross value must be positive for a percentage basis: %w", perrors.ErrValidation)
		}
		// decimal.Round is round-half-away-from-zero, i.e. half-up for the
		// positive amounts handled here.
		return grossValue.Mul(basisValue).Div(oneHundred).Round(2), grossValue, nil
	case types.CommissionBasisFixed:
		return basisValue.Round(2), basisValue, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("unknown commission basis %q: %w", basis, perrors.ErrValidation)
	}
}

func (cs *commissionService) CalculateAndCreate(ctx context.Context, tx *gorm.DB, loan *types.Loan) (*types.Commission, error) {
	if loan == nil {
		return nil, fmt.Errorf("loan snapshot required: %w", perrors.ErrValidation)
	}

	amount, reference, err := ComputeCommissionAmount(loan.CommissionBasis, loan.CommissionBasisValue, loan.GrossValue)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &types.Commission{
		ID:             uuid.New(),
		LoanID:         loan.ID,
		SellerID:       loan.SellerID,
		Basis:          loan.CommissionBasis,
		ReferenceValue: reference,
		Amount:         amount,
		Period:         PeriodKey(loan.StartDate),
		Status:         types.CommissionStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := cs.commissions.Create(ctx, tx, []*types.Commission{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (cs *commissionService) Approve(ctx context.Context, commissionID, actorID uuid.UUID) (*types.Commission, error) {
	var approved *types.Commission
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commission, err := cs.commissions.GetByID(ctx, tx, commissionID)
		if err != nil {
			return err
		}
		if commission == nil {
			return fmt.Errorf("commission %s: %w", commissionID, perrors.ErrNotFound)
		}

		// The conditional update is the race guard: when two approvals run
		// concurrently only one flips the row, the other sees zero rows and
		// fails before a second transaction can be written.
		ok, err := cs.commissions.UpdateStatusIf(ctx, tx, commissionID, types.CommissionStatusOpen, types.CommissionStatusApproved)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("approve commission %s from status %q: %w", commissionID, commission.Status, perrors.ErrInvalidState)
		}

		now := time.Now().UTC()
		txn := &types.FinancialTransaction{
			ID:           uuid.New(),
			CommissionID: commission.ID,
			SellerID:     commission.SellerID,
			Amount:       commission.Amount,
			Status:       types.TransactionStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := cs.transactions.Create(ctx, tx, []*types.FinancialTransaction{txn}); err != nil {
			return err
		}

		commission.Status = types.CommissionStatusApproved
		approved = commission
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.audit.Record(ctx, actorID, AuditModuleCommissions, "approve", commissionID, map[string]any{
		"amount": approved.Amount.String(),
	})
	cs.invalidateSummary(ctx, approved.Period)
	return approved, nil
}

func (cs *commissionService) Cancel(ctx context.Context, commissionID, actorID uuid.UUID) (*types.Commission, error) {
	var canceled *types.Commission
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := cs.CancelInTx(ctx, tx, commissionID)
		if err != nil {
			return err
		}
		canceled = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	cs.audit.Record(ctx, actorID, AuditModuleCommissions, "cancel", commissionID, nil)
	cs.invalidateSummary(ctx, canceled.Period)
	return canceled, nil
}

func (cs *commissionService) CancelInTx(ctx context.Context, tx *gorm.DB, commissionID uuid.UUID) (*types.Commission, error) {
	commission, err := cs.commissions.GetByID(ctx, tx, commissionID)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, fmt.Errorf("commission %s: %w", commissionID, perrors.ErrNotFound)
	}

	txn, err := cs.transactions.GetByCommissionID(ctx, tx, commissionID)
	if err != nil {
		return nil, err
	}

	voidPending, err := DecideCommissionCancellation(commission, txn)
	if err != nil {
		return nil, fmt.Errorf("cancel commission %s: %w", commissionID, err)
	}

	if voidPending {
		rows, err := cs.transactions.DeleteByCommissionIDIfPending(ctx, tx, commissionID)
		if err != nil {
			return nil, err
		}
		if rows != 1 {
			// Paid between our read and the delete; the guard decision no
			// longer holds, abort the whole transaction.
			return nil, fmt.Errorf("cancel commission %s: %w", commissionID, perrors.ErrBlockedCancellation)
		}
	}

	ok, err := cs.commissions.UpdateStatusIf(ctx, tx, commissionID, commission.Status, types.CommissionStatusCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("cancel commission %s from status %q: %w", commissionID, commission.Status, perrors.ErrInvalidState)
	}

	commission.Status = types.CommissionStatusCanceled
	return commission, nil
}

func (cs *commissionService) GetByFilters(ctx context.Context, filter repos.CommissionFilter) ([]*types.CommissionView, error) {
	rows, err := cs.commissions.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	return cs.toViews(ctx, rows)
}

func (cs *commissionService) ListAll(ctx context.Context) ([]*types.CommissionView, error) {
	return cs.GetByFilters(ctx, repos.CommissionFilter{})
}

// toViews resolves the derived effective status: a commission whose
// transaction is paid reads as paid without duplicating the status on the row.
func (cs *commissionService) toViews(ctx context.Context, rows []*types.Commission) ([]*types.CommissionView, error) {
	views := make([]*types.CommissionView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	txns, err := cs.transactions.GetByCommissionIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	paid := make(map[uuid.UUID]bool, len(txns))
	for _, txn := range txns {
		if txn.Status == types.TransactionStatusPaid {
			paid[txn.CommissionID] = true
		}
	}

	for _, row := range rows {
		effective := row.Status
		if paid[row.ID] {
			effective = types.CommissionStatusPaid
		}
		views = append(views, &types.CommissionView{Commission: *row, EffectiveStatus: effective})
	}
	return views, nil
}

func (cs *commissionService) PeriodSummary(ctx context.Context, period string, sellerID *uuid.UUID) (*PeriodSummary, error) {
	if period == "" {
		return nil, fmt.Errorf("period required: %w", perrors.ErrValidation)
	}

	cacheKey := summaryCacheKey(period, sellerID)
	if cs.cache != nil {
		var cached PeriodSummary
		if hit, err := cs.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			cs.log.Warn("period summary cache read failed", "key", cacheKey, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	views, err := cs.GetByFilters(ctx, repos.CommissionFilter{Period: period, SellerID: sellerID})
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{Period: period}
	for _, v := range views {
		summary.Count++
		summary.Total = summary.Total.Add(v.Amount)
		switch v.EffectiveStatus {
		case types.CommissionStatusOpen:
			summary.OpenTotal = summary.OpenTotal.Add(v.Amount)
		case types.CommissionStatusApproved:
			summary.ApprovedTotal = summary.ApprovedTotal.Add(v.Amount)
		case types.CommissionStatusPaid:
			summary.PaidTotal = summary.PaidTotal.Add(v.Amount)
		}
	}

	if cs.cache != nil {
		if err := cs.cache.SetJSON(ctx, cacheKey, summary, periodSummaryTTL); err != nil {
			cs.log.Warn("period summary cache write failed", "key", cacheKey, "error", err)
		}
	}
	return summary, nil
}

func (cs *commissionService) invalidateSummary(ctx context.Context, period string) {
	if cs.cache == nil || period == "" {
		return
	}
	if err := cs.cache.DeleteByPrefix(ctx, "commission_summary:"+period); err != nil {
		cs.log.Warn("period summary cache invalidation failed", "period", period, "error", err)
	}
}

func summaryCacheKey(period string, sellerID *uuid.UUID) string {
	if sellerID == nil {
		return "commission_summary:" + period + ":all"
	}
	return "commission_summary:" + period + ":" + sellerID.String()
}
