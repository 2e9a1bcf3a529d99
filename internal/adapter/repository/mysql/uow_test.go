package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	auditDomain "prestamos-backend/internal/domain/audit"
	domain "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/uow"
	"prestamos-backend/pkg/id"

	"gorm.io/gorm"
)

func openUoWTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(&auditDomain.Entry{}); err != nil {
		t.Fatalf("auto-migrate audit: %v", err)
	}
	return db
}

func TestWithinTx_Commit(t *testing.T) {
	db := openUoWTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	loanID := id.NewID32()
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(loanID, "Maria Quispe", time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Audits.Append(ctx, &auditDomain.Entry{
			LoanID: loanID, ActorID: "e1", ActorRole: "admin", Kind: auditDomain.KindIssue,
		})
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := NewLoanRepository(db).GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	entries, err := NewAuditRepository(db).ListByLoanID(ctx, loanID)
	if err != nil || len(entries) != 1 {
		t.Fatalf("audit after commit: %v, %d entries", err, len(entries))
	}
}

func TestWithinTx_Rollback(t *testing.T) {
	db := openUoWTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	loanID := id.NewID32()
	boom := errors.New("boom")
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, makeLoan(loanID, "Rosa Flores", time.Now().UTC())); err != nil {
			return err
		}
		return boom // force rollback
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx: got %v, want boom", err)
	}

	if _, err := NewLoanRepository(db).GetByLoanID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected rollback, got %v", err)
	}
}

func TestWithinLoanTx_LoadsAndPersists(t *testing.T) {
	db := openUoWTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	loanID := id.NewID32()
	seed := makeLoan(loanID, "Juan Huaman", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	if err := NewLoanRepository(db).Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := u.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.LoanID != loanID {
			t.Fatalf("loaded wrong loan: %+v", l)
		}
		l.Principal = dec("1050")
		l.InterestDue = dec("157.5")
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}

	got, err := NewLoanRepository(db).GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if !got.Principal.Equal(dec("1050")) || got.Version != 2 {
		t.Fatalf("not persisted: %+v", got)
	}
}

func TestWithinLoanTx_UnknownLoanAborts(t *testing.T) {
	db := openUoWTestDB(t)
	u := NewGormUoW(db)

	called := false
	err := u.WithinLoanTx(context.Background(), "00000000000000000000000000000000", func(r uow.Repos, l *domain.Loan) error {
		called = true
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("got %v, want ErrRecordNotFound", err)
	}
	if called {
		t.Fatal("callback must not run when the loan is missing")
	}
}
