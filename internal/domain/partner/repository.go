package partner

import "context"

type Repository interface {
	// ReplaceForLoan swaps the loan's share set atomically within the
	// caller's transaction.
	ReplaceForLoan(ctx context.Context, loanID string, shares []Share) error
	ListByLoanID(ctx context.Context, loanID string) ([]Share, error)
}
