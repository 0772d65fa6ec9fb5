package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
)

func TestComputeCommissionAmountPercentage(t *testing.T) {
	amount, reference, err := ComputeCommissionAmount(
		types.CommissionBasisPercentage,
		decimal.NewFromInt(10),
		decimal.NewFromInt(1200),
	)
	if err != nil {
		t.Fatalf("ComputeCommissionAmount: %v", err)
	}
	if amount.String() != "120" {
		t.Fatalf("amount: want=120 got=%s", amount)
	}
	if reference.String() != "1200" {
		t.Fatalf("reference: want=1200 got=%s", reference)
	}
}

func TestComputeCommissionAmountPercentageRoundsHalfUp(t *testing.T) {
	// 1000.05 * 10% = 100.005, the half cent rounds up.
	amount, _, err := ComputeCommissionAmount(
		types.CommissionBasisPercentage,
		decimal.NewFromInt(10),
		decimal.RequireFromString("1000.05"),
	)
	if err != nil {
		t.Fatalf("ComputeCommissionAmount: %v", err)
	}
	if amount.String() != "100.01" {
		t.Fatalf("amount: want=100.01 got=%s", amount)
	}
}

func TestComputeCommissionAmountFixed(t *testing.T) {
	amount, reference, err := ComputeCommissionAmount(
		types.CommissionBasisFixed,
		decimal.RequireFromString("350.455"),
		decimal.NewFromInt(99999),
	)
	if err != nil {
		t.Fatalf("ComputeCommissionAmount: %v", err)
	}
	if amount.String() != "350.46" {
		t.Fatalf("amount: want=350.46 got=%s", amount)
	}
	if reference.String() != "350.455" {
		t.Fatalf("reference: want=350.455 got=%s", reference)
	}
}

func TestComputeCommissionAmountRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		basis      string
		basisValue decimal.Decimal
		gross      decimal.Decimal
	}{
		{"zero basis value", types.CommissionBasisPercentage, decimal.Zero, decimal.NewFromInt(1000)},
		{"negative basis value", types.CommissionBasisFixed, decimal.NewFromInt(-5), decimal.NewFromInt(1000)},
		{"zero gross for percentage", types.CommissionBasisPercentage, decimal.NewFromInt(10), decimal.Zero},
		{"unknown basis", "tiered", decimal.NewFromInt(10), decimal.NewFromInt(1000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ComputeCommissionAmount(tc.basis, tc.basisValue, tc.gross)
			if !errors.Is(err, perrors.ErrValidation) {
				t.Fatalf("want ErrValidation got %v", err)
			}
		})
	}
}

func TestPeriodKey(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := PeriodKey(d); got != "2025-03" {
		t.Fatalf("PeriodKey: want=2025-03 got=%s", got)
	}
}
