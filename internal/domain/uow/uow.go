package uow

import (
	"context"

	"prestamos-backend/internal/domain/audit"
	"prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/partner"
)

type Repos struct {
	Loans    loan.Repository
	Partners partner.Repository
	Audits   audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
