package partnermock

import (
	"context"

	"prestamos-backend/internal/domain/partner"
)

var _ partner.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies partner.Repository.
type Repo struct {
	ReplaceForLoanFn func(ctx context.Context, loanID string, shares []partner.Share) error
	ListByLoanIDFn   func(ctx context.Context, loanID string) ([]partner.Share, error)
}

func (m *Repo) ReplaceForLoan(ctx context.Context, loanID string, shares []partner.Share) error {
	if m.ReplaceForLoanFn != nil {
		return m.ReplaceForLoanFn(ctx, loanID, shares)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]partner.Share, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
