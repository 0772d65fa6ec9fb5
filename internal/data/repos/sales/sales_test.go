package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/credfacil/promotora-backend/internal/data/repos/testutil"
	types "github.com/credfacil/promotora-backend/internal/domain"
)

func seedLoan(tb testing.TB, tx *gorm.DB, repo LoanRepo) *types.Loan {
	tb.Helper()
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
	if _, err := repo.Create(context.Background(), tx, []*types.Loan{loan}); err != nil {
		tb.Fatalf("seed loan: %v", err)
	}
	return loan
}

func seedCommission(tb testing.TB, tx *gorm.DB, repo CommissionRepo, loan *types.Loan, status string) *types.Commission {
	tb.Helper()
	now := time.Now().UTC()
	commission := &types.Commission{
		ID:             uuid.New(),
		LoanID:         loan.ID,
		SellerID:       loan.SellerID,
		Basis:          loan.CommissionBasis,
		ReferenceValue: loan.GrossValue,
		Amount:         decimal.NewFromInt(100),
		Period:         "2025-04",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := repo.Create(context.Background(), tx, []*types.Commission{commission}); err != nil {
		tb.Fatalf("seed commission: %v", err)
	}
	return commission
}

func seedTransaction(tb testing.TB, tx *gorm.DB, repo FinancialTransactionRepo, commission *types.Commission, status string) *types.FinancialTransaction {
	tb.Helper()
	now := time.Now().UTC()
	txn := &types.FinancialTransaction{
		ID:           uuid.New(),
		CommissionID: commission.ID,
		SellerID:     commission.SellerID,
		Amount:       commission.Amount,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status == types.TransactionStatusPaid {
		paidOn := now
		txn.PaidOn = &paidOn
	}
	if _, err := repo.Create(context.Background(), tx, []*types.FinancialTransaction{txn}); err != nil {
		tb.Fatalf("seed transaction: %v", err)
	}
	return txn
}

func TestLoanUpdateStatusIfRequiresCurrentStatus(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	repo := NewLoanRepo(gdb, log)

	loan := seedLoan(t, tx, repo)

	ok, err := repo.UpdateStatusIf(context.Background(), tx, loan.ID, types.LoanStatusPaid, types.LoanStatusCanceled)
	if err != nil {
		t.Fatalf("UpdateStatusIf: %v", err)
	}
	if ok {
		t.Fatalf("flip from wrong status must report zero rows")
	}

	ok, err = repo.UpdateStatusIf(context.Background(), tx, loan.ID, types.LoanStatusActive, types.LoanStatusPaid)
	if err != nil {
		t.Fatalf("UpdateStatusIf: %v", err)
	}
	if !ok {
		t.Fatalf("flip from the current status should succeed")
	}

	got, err := repo.GetByID(context.Background(), tx, loan.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: loan=%v err=%v", got, err)
	}
	if got.Status != types.LoanStatusPaid {
		t.Fatalf("status: want=paid got=%s", got.Status)
	}
}

func TestCommissionLoanIDUnique(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	loanRepo := NewLoanRepo(gdb, log)
	commRepo := NewCommissionRepo(gdb, log)

	loan := seedLoan(t, tx, loanRepo)
	seedCommission(t, tx, commRepo, loan, types.CommissionStatusOpen)

	now := time.Now().UTC()
	second := &types.Commission{
		ID:             uuid.New(),
		LoanID:         loan.ID,
		SellerID:       loan.SellerID,
		Basis:          loan.CommissionBasis,
		ReferenceValue: loan.GrossValue,
		Amount:         decimal.NewFromInt(50),
		Period:         "2025-04",
		Status:         types.CommissionStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := commRepo.Create(context.Background(), tx, []*types.Commission{second}); err == nil {
		t.Fatalf("second commission for the same loan must violate the unique index")
	}
}

func TestDeleteByLoanIDInStatusSkipsApproved(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	loanRepo := NewLoanRepo(gdb, log)
	commRepo := NewCommissionRepo(gdb, log)

	loan := seedLoan(t, tx, loanRepo)
	seedCommission(t, tx, commRepo, loan, types.CommissionStatusApproved)

	rows, err := commRepo.DeleteByLoanIDInStatus(context.Background(), tx, loan.ID, []string{
		types.CommissionStatusOpen,
		types.CommissionStatusCanceled,
	})
	if err != nil {
		t.Fatalf("DeleteByLoanIDInStatus: %v", err)
	}
	if rows != 0 {
		t.Fatalf("approved commission deleted by the harmless-status cascade")
	}
}

func TestMarkPaidIfOnlyFlipsPending(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	loanRepo := NewLoanRepo(gdb, log)
	commRepo := NewCommissionRepo(gdb, log)
	txnRepo := NewFinancialTransactionRepo(gdb, log)

	loan := seedLoan(t, tx, loanRepo)
	commission := seedCommission(t, tx, commRepo, loan, types.CommissionStatusApproved)
	txn := seedTransaction(t, tx, txnRepo, commission, types.TransactionStatusPending)

	paidOn := time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)
	ok, err := txnRepo.MarkPaidIf(context.Background(), tx, txn.ID, paidOn, "rcpt-1")
	if err != nil {
		t.Fatalf("MarkPaidIf: %v", err)
	}
	if !ok {
		t.Fatalf("pending transaction should become paid")
	}

	ok, err = txnRepo.MarkPaidIf(context.Background(), tx, txn.ID, paidOn, "rcpt-2")
	if err != nil {
		t.Fatalf("MarkPaidIf: %v", err)
	}
	if ok {
		t.Fatalf("paid transaction must not be paid twice")
	}

	got, err := txnRepo.GetByID(context.Background(), tx, txn.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: txn=%v err=%v", got, err)
	}
	if got.ProofRef != "rcpt-1" {
		t.Fatalf("proof_ref: want=rcpt-1 got=%s", got.ProofRef)
	}
}

func TestDeleteByCommissionIDIfPendingIgnoresPaid(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	loanRepo := NewLoanRepo(gdb, log)
	commRepo := NewCommissionRepo(gdb, log)
	txnRepo := NewFinancialTransactionRepo(gdb, log)

	loan := seedLoan(t, tx, loanRepo)
	commission := seedCommission(t, tx, commRepo, loan, types.CommissionStatusApproved)
	seedTransaction(t, tx, txnRepo, commission, types.TransactionStatusPaid)

	rows, err := txnRepo.DeleteByCommissionIDIfPending(context.Background(), tx, commission.ID)
	if err != nil {
		t.Fatalf("DeleteByCommissionIDIfPending: %v", err)
	}
	if rows != 0 {
		t.Fatalf("paid transaction deleted by the pending-only void")
	}
}

func TestTransactionListFiltersByPeriod(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	loanRepo := NewLoanRepo(gdb, log)
	commRepo := NewCommissionRepo(gdb, log)
	txnRepo := NewFinancialTransactionRepo(gdb, log)

	loan := seedLoan(t, tx, loanRepo)
	commission := seedCommission(t, tx, commRepo, loan, types.CommissionStatusApproved)
	txn := seedTransaction(t, tx, txnRepo, commission, types.TransactionStatusPending)

	rows, err := txnRepo.List(context.Background(), tx, TransactionFilter{Period: "2025-04"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.ID == txn.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("transaction missing from its commission period")
	}

	rows, err = txnRepo.List(context.Background(), tx, TransactionFilter{Period: "1999-01"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, row := range rows {
		if row.ID == txn.ID {
			t.Fatalf("transaction listed under a foreign period")
		}
	}
}
