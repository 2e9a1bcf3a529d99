package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// Oldest first, so replays walk history in order.
	ListByLoanID(ctx context.Context, loanID string) ([]Entry, error)
	ListByLoanIDAndKind(ctx context.Context, loanID string, kind Kind) ([]Entry, error)
}
