package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	"github.com/credfacil/promotora-backend/internal/data/repos/testutil"
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
)

type testEnv struct {
	loans     LoanService
	engine    CommissionService
	financial FinancialService
	audit     AuditService
	loanRepo  repos.LoanRepo
	commRepo  repos.CommissionRepo
	txnRepo   repos.FinancialTransactionRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	loanRepo := repos.NewLoanRepo(gdb, log)
	commRepo := repos.NewCommissionRepo(gdb, log)
	txnRepo := repos.NewFinancialTransactionRepo(gdb, log)
	auditRepo := repos.NewAuditEventRepo(gdb, log)

	audit := NewAuditService(gdb, log, auditRepo)
	engine := NewCommissionService(gdb, log, commRepo, txnRepo, audit, nil)
	loans := NewLoanService(gdb, log, loanRepo, commRepo, txnRepo, engine, audit)
	financial := NewFinancialService(gdb, log, txnRepo, commRepo, audit)

	return &testEnv{
		loans:     loans,
		engine:    engine,
		financial: financial,
		audit:     audit,
		loanRepo:  loanRepo,
		commRepo:  commRepo,
		txnRepo:   txnRepo,
	}
}

func registerLoan(t *testing.T, env *testEnv, basis string, basisValue, gross decimal.Decimal) *types.Loan {
	t.Helper()
	loan, err := env.loans.Create(context.Background(), CreateLoanInput{
		CustomerID:           uuid.New(),
		SellerID:             uuid.New(),
		GrossValue:           gross,
		NetValue:             gross,
		InstallmentCount:     12,
		InstallmentValue:     decimal.NewFromInt(100),
		StartDate:            time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
		CommissionBasis:      basis,
		CommissionBasisValue: basisValue,
	}, uuid.New())
	if err != nil {
		t.Fatalf("Create loan: %v", err)
	}
	return loan
}

func loanCommission(t *testing.T, env *testEnv, loanID uuid.UUID) *types.Commission {
	t.Helper()
	commission, err := env.commRepo.GetByLoanID(context.Background(), nil, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	return commission
}

func TestCreateLoanCreatesOpenCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(1200))

	commission := loanCommission(t, env, loan.ID)
	if commission == nil {
		t.Fatalf("commission missing for new loan")
	}
	if commission.Status != types.CommissionStatusOpen {
		t.Fatalf("status: want=open got=%s", commission.Status)
	}
	if !commission.Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("amount: want=120 got=%s", commission.Amount)
	}
	if commission.Period != "2025-05" {
		t.Fatalf("period: want=2025-05 got=%s", commission.Period)
	}
	if commission.SellerID != loan.SellerID {
		t.Fatalf("seller: want=%s got=%s", loan.SellerID, commission.SellerID)
	}
}

func TestCreateLoanRollsBackOnCommissionFailure(t *testing.T) {
	env := newTestEnv(t)
	sellerID := uuid.New()
	_, err := env.loans.Create(context.Background(), CreateLoanInput{
		CustomerID:           uuid.New(),
		SellerID:             sellerID,
		GrossValue:           decimal.NewFromInt(1000),
		NetValue:             decimal.NewFromInt(900),
		InstallmentCount:     12,
		InstallmentValue:     decimal.NewFromInt(100),
		StartDate:            time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
		CommissionBasis:      "tiered",
		CommissionBasisValue: decimal.NewFromInt(10),
	}, uuid.New())
	if !errors.Is(err, perrors.ErrValidation) {
		t.Fatalf("want ErrValidation got %v", err)
	}

	rows, err := env.loanRepo.List(context.Background(), nil, repos.LoanFilter{SellerID: &sellerID})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("loan row survived a failed commission computation")
	}
}

func TestApproveCreatesPendingTransaction(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(1200))
	commission := loanCommission(t, env, loan.ID)

	approved, err := env.engine.Approve(context.Background(), commission.ID, uuid.New())
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != types.CommissionStatusApproved {
		t.Fatalf("status: want=approved got=%s", approved.Status)
	}

	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil {
		t.Fatalf("GetByCommissionID: %v", err)
	}
	if txn == nil {
		t.Fatalf("approval produced no transaction")
	}
	if txn.Status != types.TransactionStatusPending {
		t.Fatalf("transaction status: want=pending got=%s", txn.Status)
	}
	if !txn.Amount.Equal(commission.Amount) {
		t.Fatalf("transaction amount: want=%s got=%s", commission.Amount, txn.Amount)
	}

	// A second approval must fail instead of minting a second transaction.
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); !errors.Is(err, perrors.ErrInvalidState) {
		t.Fatalf("second approve: want ErrInvalidState got %v", err)
	}
}

func TestApproveMissingCommission(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.engine.Approve(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, perrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestPayLifecycle(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisFixed, decimal.NewFromInt(250), decimal.NewFromInt(5000))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}

	if _, err := env.financial.Pay(context.Background(), txn.ID, nil, "", uuid.New()); !errors.Is(err, perrors.ErrValidation) {
		t.Fatalf("pay without date: want ErrValidation got %v", err)
	}

	paidOn := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	paid, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "receipt-77", uuid.New())
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if paid.Status != types.TransactionStatusPaid {
		t.Fatalf("status: want=paid got=%s", paid.Status)
	}
	if paid.ProofRef != "receipt-77" {
		t.Fatalf("proof_ref: want=receipt-77 got=%s", paid.ProofRef)
	}

	// Paying twice is refused.
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); !errors.Is(err, perrors.ErrInvalidState) {
		t.Fatalf("double pay: want ErrInvalidState got %v", err)
	}

	edited, err := env.financial.EditPaid(context.Background(), txn.ID, decimal.RequireFromString("260.50"), uuid.New())
	if err != nil {
		t.Fatalf("EditPaid: %v", err)
	}
	if !edited.Amount.Equal(decimal.RequireFromString("260.50")) {
		t.Fatalf("edited amount: want=260.50 got=%s", edited.Amount)
	}

	reverted, err := env.financial.CancelPayment(context.Background(), txn.ID, uuid.New())
	if err != nil {
		t.Fatalf("CancelPayment: %v", err)
	}
	if reverted.Status != types.TransactionStatusPending {
		t.Fatalf("status after cancel: want=pending got=%s", reverted.Status)
	}
	if reverted.PaidOn != nil || reverted.ProofRef != "" {
		t.Fatalf("cancel payment must clear paid_on and proof_ref")
	}

	// Back to pending, corrections are refused again.
	if _, err := env.financial.EditPaid(context.Background(), txn.ID, decimal.NewFromInt(300), uuid.New()); !errors.Is(err, perrors.ErrInvalidState) {
		t.Fatalf("edit pending: want ErrInvalidState got %v", err)
	}
}

func TestDeleteLoanWithoutCommission(t *testing.T) {
	env := newTestEnv(t)

	// Seeded behind the service's back: a loan that never got a commission.
	now := time.Now().UTC()
	loan := &types.Loan{
		ID:                   uuid.New(),
		CustomerID:           uuid.New(),
		SellerID:             uuid.New(),
		GrossValue:           decimal.NewFromInt(1000),
		NetValue:             decimal.NewFromInt(950),
		InstallmentCount:     12,
		InstallmentValue:     decimal.NewFromInt(90),
		StartDate:            time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		CommissionBasis:      types.CommissionBasisPercentage,
		CommissionBasisValue: decimal.NewFromInt(10),
		Status:               types.LoanStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if _, err := env.loanRepo.Create(context.Background(), nil, []*types.Loan{loan}); err != nil {
		t.Fatalf("seed loan: %v", err)
	}

	if err := env.loans.Delete(context.Background(), loan.ID, uuid.New()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := env.loanRepo.GetByID(context.Background(), nil, loan.ID); got != nil {
		t.Fatalf("loan survived deletion")
	}
}

func TestDeleteLoanCascadesOpenCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(5), decimal.NewFromInt(2000))
	commission := loanCommission(t, env, loan.ID)

	if err := env.loans.Delete(context.Background(), loan.ID, uuid.New()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, err := env.loanRepo.GetByID(context.Background(), nil, loan.ID); err != nil || got != nil {
		t.Fatalf("loan survived deletion: loan=%v err=%v", got, err)
	}
	if got, err := env.commRepo.GetByID(context.Background(), nil, commission.ID); err != nil || got != nil {
		t.Fatalf("commission survived cascade: commission=%v err=%v", got, err)
	}
}

func TestDeleteLoanBlockedByFinancialImpact(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(1500))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	err := env.loans.Delete(context.Background(), loan.ID, uuid.New())
	if !errors.Is(err, perrors.ErrBlockedDeletion) {
		t.Fatalf("want ErrBlockedDeletion got %v", err)
	}

	// The refusal must leave the whole chain untouched.
	if got, _ := env.loanRepo.GetByID(context.Background(), nil, loan.ID); got == nil {
		t.Fatalf("blocked deletion removed the loan")
	}
	if got, _ := env.commRepo.GetByID(context.Background(), nil, commission.ID); got == nil || got.Status != types.CommissionStatusApproved {
		t.Fatalf("blocked deletion touched the commission: %+v", got)
	}
	if got, _ := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID); got == nil {
		t.Fatalf("blocked deletion removed the transaction")
	}
}

func TestReverseReopensCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(1200))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	paidOn := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if err := env.financial.Reverse(context.Background(), txn.ID, uuid.New()); err != nil {
		t.Fatalf("Reverse: %v", err)
	}

	if got, _ := env.txnRepo.GetByID(context.Background(), nil, txn.ID); got != nil {
		t.Fatalf("reversed transaction still present")
	}
	reopened, err := env.commRepo.GetByID(context.Background(), nil, commission.ID)
	if err != nil || reopened == nil {
		t.Fatalf("GetByID: commission=%v err=%v", reopened, err)
	}
	if reopened.Status != types.CommissionStatusOpen {
		t.Fatalf("status after reverse: want=open got=%s", reopened.Status)
	}

	// Approving again mints a fresh transaction over the same amount.
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	again, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || again == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", again, err)
	}
	if again.ID == txn.ID {
		t.Fatalf("re-approval reused the reversed transaction")
	}
	if !again.Amount.Equal(commission.Amount) {
		t.Fatalf("re-approval amount: want=%s got=%s", commission.Amount, again.Amount)
	}

	// With the chain reversed and reopened the loan can finally be deleted.
	if err := env.financial.Reverse(context.Background(), again.ID, uuid.New()); err != nil {
		t.Fatalf("second Reverse: %v", err)
	}
	if err := env.loans.Delete(context.Background(), loan.ID, uuid.New()); err != nil {
		t.Fatalf("Delete after reverse: %v", err)
	}
}

func TestCancelOpenCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisFixed, decimal.NewFromInt(100), decimal.NewFromInt(1000))
	commission := loanCommission(t, env, loan.ID)

	canceled, err := env.engine.Cancel(context.Background(), commission.ID, uuid.New())
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != types.CommissionStatusCanceled {
		t.Fatalf("status: want=canceled got=%s", canceled.Status)
	}

	// Canceling twice is invalid.
	if _, err := env.engine.Cancel(context.Background(), commission.ID, uuid.New()); !errors.Is(err, perrors.ErrInvalidState) {
		t.Fatalf("second cancel: want ErrInvalidState got %v", err)
	}
}

func TestCancelApprovedVoidsPendingTransaction(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisFixed, decimal.NewFromInt(100), decimal.NewFromInt(1000))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	canceled, err := env.engine.Cancel(context.Background(), commission.ID, uuid.New())
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != types.CommissionStatusCanceled {
		t.Fatalf("status: want=canceled got=%s", canceled.Status)
	}
	if txn, _ := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID); txn != nil {
		t.Fatalf("pending transaction survived the cancellation")
	}
}

func TestCancelBlockedByPaidTransaction(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisFixed, decimal.NewFromInt(100), decimal.NewFromInt(1000))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	paidOn := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if _, err := env.engine.Cancel(context.Background(), commission.ID, uuid.New()); !errors.Is(err, perrors.ErrBlockedCancellation) {
		t.Fatalf("want ErrBlockedCancellation got %v", err)
	}
	if got, _ := env.commRepo.GetByID(context.Background(), nil, commission.ID); got == nil || got.Status != types.CommissionStatusApproved {
		t.Fatalf("blocked cancellation touched the commission: %+v", got)
	}
}

func TestLoanCancellationCancelsCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(8), decimal.NewFromInt(900))
	commission := loanCommission(t, env, loan.ID)

	updated, err := env.loans.UpdateStatus(context.Background(), loan.ID, types.LoanStatusCanceled, uuid.New())
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != types.LoanStatusCanceled {
		t.Fatalf("loan status: want=canceled got=%s", updated.Status)
	}
	got, err := env.commRepo.GetByID(context.Background(), nil, commission.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: commission=%v err=%v", got, err)
	}
	if got.Status != types.CommissionStatusCanceled {
		t.Fatalf("commission status: want=canceled got=%s", got.Status)
	}
}

func TestLoanCancellationBlockedByPaidCommission(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(8), decimal.NewFromInt(900))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	paidOn := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if _, err := env.loans.UpdateStatus(context.Background(), loan.ID, types.LoanStatusCanceled, uuid.New()); !errors.Is(err, perrors.ErrBlockedCancellation) {
		t.Fatalf("want ErrBlockedCancellation got %v", err)
	}
	// The blocked cancellation leaves the loan active.
	got, err := env.loanRepo.GetByID(context.Background(), nil, loan.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: loan=%v err=%v", got, err)
	}
	if got.Status != types.LoanStatusActive {
		t.Fatalf("loan status: want=active got=%s", got.Status)
	}
}

func TestEffectiveStatusDerivedFromPayment(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(700))
	commission := loanCommission(t, env, loan.ID)
	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	paidOn := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	sellerID := loan.SellerID
	views, err := env.engine.GetByFilters(context.Background(), repos.CommissionFilter{SellerID: &sellerID})
	if err != nil {
		t.Fatalf("GetByFilters: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views: want=1 got=%d", len(views))
	}
	if views[0].Status != types.CommissionStatusApproved {
		t.Fatalf("stored status: want=approved got=%s", views[0].Status)
	}
	if views[0].EffectiveStatus != types.CommissionStatusPaid {
		t.Fatalf("effective status: want=paid got=%s", views[0].EffectiveStatus)
	}

	// Canceling the payment drops the derived status back to the stored one.
	if _, err := env.financial.CancelPayment(context.Background(), txn.ID, uuid.New()); err != nil {
		t.Fatalf("CancelPayment: %v", err)
	}
	views, err = env.engine.GetByFilters(context.Background(), repos.CommissionFilter{SellerID: &sellerID})
	if err != nil {
		t.Fatalf("GetByFilters: %v", err)
	}
	if views[0].EffectiveStatus != types.CommissionStatusApproved {
		t.Fatalf("effective status after cancel: want=approved got=%s", views[0].EffectiveStatus)
	}
}

func TestFullSettlementScenario(t *testing.T) {
	env := newTestEnv(t)
	loan := registerLoan(t, env, types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.NewFromInt(1200))

	commission := loanCommission(t, env, loan.ID)
	if commission.Status != types.CommissionStatusOpen || !commission.Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("commission after create: %+v", commission)
	}

	if _, err := env.engine.Approve(context.Background(), commission.ID, uuid.New()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, commission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	if txn.Status != types.TransactionStatusPending || !txn.Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("transaction after approve: %+v", txn)
	}

	paidOn := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "rcpt-scenario", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	if err := env.loans.Delete(context.Background(), loan.ID, uuid.New()); !errors.Is(err, perrors.ErrBlockedDeletion) {
		t.Fatalf("delete with paid impact: want ErrBlockedDeletion got %v", err)
	}

	if err := env.financial.Reverse(context.Background(), txn.ID, uuid.New()); err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	reopened, err := env.commRepo.GetByID(context.Background(), nil, commission.ID)
	if err != nil || reopened == nil || reopened.Status != types.CommissionStatusOpen {
		t.Fatalf("commission after reverse: %+v err=%v", reopened, err)
	}

	if err := env.loans.Delete(context.Background(), loan.ID, uuid.New()); err != nil {
		t.Fatalf("Delete after reverse: %v", err)
	}
	if got, _ := env.loanRepo.GetByID(context.Background(), nil, loan.ID); got != nil {
		t.Fatalf("loan survived final deletion")
	}
	if got, _ := env.commRepo.GetByID(context.Background(), nil, commission.ID); got != nil {
		t.Fatalf("commission survived final deletion")
	}
}

func TestPeriodSummaryTotals(t *testing.T) {
	env := newTestEnv(t)
	sellerID := uuid.New()
	start := time.Date(2031, time.July, 5, 0, 0, 0, 0, time.UTC)

	mkLoan := func(gross int64) *types.Loan {
		loan, err := env.loans.Create(context.Background(), CreateLoanInput{
			CustomerID:           uuid.New(),
			SellerID:             sellerID,
			GrossValue:           decimal.NewFromInt(gross),
			NetValue:             decimal.NewFromInt(gross),
			InstallmentCount:     10,
			InstallmentValue:     decimal.NewFromInt(100),
			StartDate:            start,
			CommissionBasis:      types.CommissionBasisPercentage,
			CommissionBasisValue: decimal.NewFromInt(10),
		}, uuid.New())
		if err != nil {
			t.Fatalf("Create loan: %v", err)
		}
		return loan
	}

	// 100 stays open, 200 ends approved, 300 ends paid.
	mkLoan(1000)
	approvedLoan := mkLoan(2000)
	paidLoan := mkLoan(3000)

	for _, l := range []*types.Loan{approvedLoan, paidLoan} {
		c := loanCommission(t, env, l.ID)
		if _, err := env.engine.Approve(context.Background(), c.ID, uuid.New()); err != nil {
			t.Fatalf("Approve: %v", err)
		}
	}
	paidCommission := loanCommission(t, env, paidLoan.ID)
	txn, err := env.txnRepo.GetByCommissionID(context.Background(), nil, paidCommission.ID)
	if err != nil || txn == nil {
		t.Fatalf("GetByCommissionID: txn=%v err=%v", txn, err)
	}
	paidOn := start.AddDate(0, 1, 0)
	if _, err := env.financial.Pay(context.Background(), txn.ID, &paidOn, "", uuid.New()); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	summary, err := env.engine.PeriodSummary(context.Background(), "2031-07", &sellerID)
	if err != nil {
		t.Fatalf("PeriodSummary: %v", err)
	}
	if summary.Count != 3 {
		t.Fatalf("count: want=3 got=%d", summary.Count)
	}
	if !summary.Total.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("total: want=600 got=%s", summary.Total)
	}
	if !summary.OpenTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("open total: want=100 got=%s", summary.OpenTotal)
	}
	if !summary.ApprovedTotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("approved total: want=200 got=%s", summary.ApprovedTotal)
	}
	if !summary.PaidTotal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("paid total: want=300 got=%s", summary.PaidTotal)
	}
}
