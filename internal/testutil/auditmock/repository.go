package auditmock

import (
	"context"
	"sync"

	"prestamos-backend/internal/domain/audit"
)

var _ audit.Repository = (*Repo)(nil)

// Repo is an in-memory audit log; tests inspect Entries after the fact.
// Function fields override the default append-and-remember behavior.
type Repo struct {
	mu      sync.Mutex
	Entries []audit.Entry

	AppendFn              func(ctx context.Context, e *audit.Entry) error
	ListByLoanIDFn        func(ctx context.Context, loanID string) ([]audit.Entry, error)
	ListByLoanIDAndKindFn func(ctx context.Context, loanID string, kind audit.Kind) ([]audit.Entry, error)
}

func (m *Repo) Append(ctx context.Context, e *audit.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uint64(len(m.Entries) + 1)
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]audit.Entry, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []audit.Entry
	for _, e := range m.Entries {
		if e.LoanID == loanID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Repo) ListByLoanIDAndKind(ctx context.Context, loanID string, kind audit.Kind) ([]audit.Entry, error) {
	if m.ListByLoanIDAndKindFn != nil {
		return m.ListByLoanIDAndKindFn(ctx, loanID, kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []audit.Entry
	for _, e := range m.Entries {
		if e.LoanID == loanID && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out, nil
}
