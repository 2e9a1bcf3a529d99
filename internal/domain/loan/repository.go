package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	State State
	// Case-insensitive substring match on borrower name.
	Query string
}

// Summary holds the portfolio KPIs for the management panel.
type Summary struct {
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	ProjectedInterest    decimal.Decimal `json:"projected_interest"`
	ActiveCount          int64           `json:"active_count"`
	PaidCount            int64           `json:"paid_count"`
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// Save persists a modified snapshot. The write is fenced on the
	// snapshot's version: a stale snapshot yields ErrStaleVersion.
	Save(ctx context.Context, l *Loan) error
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	Summarize(ctx context.Context) (*Summary, error)
	// ListDueWithin returns active loans whose next due date falls in
	// [from, from+days].
	ListDueWithin(ctx context.Context, from time.Time, days int) ([]Loan, error)
	SoftDelete(ctx context.Context, loanID, deletedBy string) error
}
