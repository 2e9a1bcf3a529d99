package mysql

import (
	"context"
	"testing"

	partnerDomain "prestamos-backend/internal/domain/partner"

	"gorm.io/gorm"
)

func openShareTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	if err := db.AutoMigrate(&partnerDomain.Share{}); err != nil {
		t.Fatalf("auto-migrate shares: %v", err)
	}
	return db
}

func TestReplaceForLoan(t *testing.T) {
	db := openShareTestDB(t)
	repo := NewPartnerShareRepository(db)
	ctx := context.Background()

	loanID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	other := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	first := []partnerDomain.Share{
		{LoanID: loanID, Partner: "Ana", SharePct: dec("10")},
		{LoanID: loanID, Partner: "Beto", SharePct: dec("5")},
	}
	if err := repo.ReplaceForLoan(ctx, loanID, first); err != nil {
		t.Fatalf("ReplaceForLoan: %v", err)
	}
	if err := repo.ReplaceForLoan(ctx, other, []partnerDomain.Share{
		{LoanID: other, Partner: "Carla", SharePct: dec("12")},
	}); err != nil {
		t.Fatalf("ReplaceForLoan other: %v", err)
	}

	// second distribution replaces the first set wholesale
	second := []partnerDomain.Share{
		{LoanID: loanID, Partner: "Ana", SharePct: dec("7.5")},
		{LoanID: loanID, Partner: "Carla", SharePct: dec("7.5")},
	}
	if err := repo.ReplaceForLoan(ctx, loanID, second); err != nil {
		t.Fatalf("ReplaceForLoan again: %v", err)
	}

	got, err := repo.ListByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Partner != "Ana" || !got[0].SharePct.Equal(dec("7.5")) {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].Partner != "Carla" || !got[1].SharePct.Equal(dec("7.5")) {
		t.Errorf("row 1 = %+v", got[1])
	}

	// other loan untouched
	otherRows, err := repo.ListByLoanID(ctx, other)
	if err != nil {
		t.Fatalf("ListByLoanID other: %v", err)
	}
	if len(otherRows) != 1 || otherRows[0].Partner != "Carla" {
		t.Fatalf("other loan shares changed: %+v", otherRows)
	}
}

func TestReplaceForLoan_EmptyClears(t *testing.T) {
	db := openShareTestDB(t)
	repo := NewPartnerShareRepository(db)
	ctx := context.Background()

	loanID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	if err := repo.ReplaceForLoan(ctx, loanID, []partnerDomain.Share{
		{LoanID: loanID, Partner: "Ana", SharePct: dec("15")},
	}); err != nil {
		t.Fatalf("ReplaceForLoan: %v", err)
	}
	if err := repo.ReplaceForLoan(ctx, loanID, nil); err != nil {
		t.Fatalf("ReplaceForLoan clear: %v", err)
	}

	got, err := repo.ListByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected cleared set, got %+v", got)
	}
}
