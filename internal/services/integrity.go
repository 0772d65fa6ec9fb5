package services

import (
	types "github.com/credfacil/promotora-backend/internal/domain"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
)

// The integrity guard is a pure decision layer over the loan -> commission ->
// financial transaction chain. Loan deletion and commission cancellation both
// consult it inside their transaction, after re-reading the chain, so the
// decision and the destructive writes commit together.

// DeletionDecision says whether a loan may be deleted and what must go with it.
type DeletionDecision struct {
	Allowed           bool
	CascadeCommission bool
}

// DecideLoanDeletion applies the financial-impact rule: an approved commission
// or a paid transaction makes the loan immutable until the payment is reversed
// in the financial module. An absent, open or canceled commission is harmless;
// open and canceled commissions are cascaded away with the loan.
func DecideLoanDeletion(commission *types.Commission, txn *types.FinancialTransaction) (DeletionDecision, error) {
	if commission == nil {
		return DeletionDecision{Allowed: true}, nil
	}
	if commission.Status == types.CommissionStatusApproved {
		return DeletionDecision{}, perrors.ErrBlockedDeletion
	}
	if txn != nil && txn.Status == types.TransactionStatusPaid {
		return DeletionDecision{}, perrors.ErrBlockedDeletion
	}
	return DeletionDecision{Allowed: true, CascadeCommission: true}, nil
}

// DecideCommissionCancellation reports whether the commission may be canceled
// and whether a pending transaction must be voided alongside. A paid
// transaction blocks cancellation outright: the money already moved and has to
// be reversed explicitly first.
func DecideCommissionCancellation(commission *types.Commission, txn *types.FinancialTransaction) (voidPending bool, err error) {
	if commission == nil {
		return false, perrors.ErrNotFound
	}
	if txn != nil && txn.Status == types.TransactionStatusPaid {
		return false, perrors.ErrBlockedCancellation
	}
	switch commission.Status {
	case types.CommissionStatusOpen:
		return false, nil
	case types.CommissionStatusApproved:
		return true, nil
	default:
		return false, perrors.ErrInvalidState
	}
}
