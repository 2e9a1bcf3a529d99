package loanmock

import (
	"context"
	"time"

	domain "prestamos-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	ListFn                 func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error)
	SummarizeFn            func(ctx context.Context) (*domain.Summary, error)
	ListDueWithinFn        func(ctx context.Context, from time.Time, days int) ([]domain.Loan, error)
	SoftDeleteFn           func(ctx context.Context, loanID, deletedBy string) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Summarize(ctx context.Context) (*domain.Summary, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx)
	}
	return &domain.Summary{}, nil
}

func (m *Repo) ListDueWithin(ctx context.Context, from time.Time, days int) ([]domain.Loan, error) {
	if m.ListDueWithinFn != nil {
		return m.ListDueWithinFn(ctx, from, days)
	}
	return nil, nil
}

func (m *Repo) SoftDelete(ctx context.Context, loanID, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, loanID, deletedBy)
	}
	return nil
}
