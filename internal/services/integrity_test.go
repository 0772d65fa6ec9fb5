package services

import (
	"errors"
	"testing"

	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
)

func TestDecideLoanDeletion(t *testing.T) {
	cases := []struct {
		name       string
		commission *types.Commission
		txn        *types.FinancialTransaction
		wantErr    error
		cascade    bool
	}{
		{
			name: "no commission deletes loan alone",
		},
		{
			name:       "open commission cascades",
			commission: &types.Commission{Status: types.CommissionStatusOpen},
			cascade:    true,
		},
		{
			name:       "canceled commission cascades",
			commission: &types.Commission{Status: types.CommissionStatusCanceled},
			cascade:    true,
		},
		{
			name:       "approved commission blocks",
			commission: &types.Commission{Status: types.CommissionStatusApproved},
			wantErr:    perrors.ErrBlockedDeletion,
		},
		{
			name:       "paid transaction blocks",
			commission: &types.Commission{Status: types.CommissionStatusCanceled},
			txn:        &types.FinancialTransaction{Status: types.TransactionStatusPaid},
			wantErr:    perrors.ErrBlockedDeletion,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := DecideLoanDeletion(tc.commission, tc.txn)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got %v", tc.wantErr, err)
				}
				if decision.Allowed {
					t.Fatalf("blocked deletion must not be allowed")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecideLoanDeletion: %v", err)
			}
			if !decision.Allowed {
				t.Fatalf("deletion should be allowed")
			}
			if decision.CascadeCommission != tc.cascade {
				t.Fatalf("cascade: want=%v got=%v", tc.cascade, decision.CascadeCommission)
			}
		})
	}
}

func TestDecideCommissionCancellation(t *testing.T) {
	cases := []struct {
		name        string
		commission  *types.Commission
		txn         *types.FinancialTransaction
		wantErr     error
		voidPending bool
	}{
		{
			name:    "missing commission",
			wantErr: perrors.ErrNotFound,
		},
		{
			name:       "open cancels without side effects",
			commission: &types.Commission{Status: types.CommissionStatusOpen},
		},
		{
			name:        "approved voids the pending transaction",
			commission:  &types.Commission{Status: types.CommissionStatusApproved},
			txn:         &types.FinancialTransaction{Status: types.TransactionStatusPending},
			voidPending: true,
		},
		{
			name:       "paid transaction blocks outright",
			commission: &types.Commission{Status: types.CommissionStatusApproved},
			txn:        &types.FinancialTransaction{Status: types.TransactionStatusPaid},
			wantErr:    perrors.ErrBlockedCancellation,
		},
		{
			name:       "already canceled is invalid",
			commission: &types.Commission{Status: types.CommissionStatusCanceled},
			wantErr:    perrors.ErrInvalidState,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			voidPending, err := DecideCommissionCancellation(tc.commission, tc.txn)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecideCommissionCancellation: %v", err)
			}
			if voidPending != tc.voidPending {
				t.Fatalf("voidPending: want=%v got=%v", tc.voidPending, voidPending)
			}
		})
	}
}
