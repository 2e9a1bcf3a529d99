package mysql

import (
	"context"
	"strings"
	"time"

	loanDomain "prestamos-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	if l.Version == 0 {
		l.Version = 1
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	// sqlite (used by the tests) has no row locks and rejects FOR UPDATE;
	// its transactions serialize writers on their own.
	if r.db.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// Save writes the snapshot back, fenced on its version: the UPDATE matches
// the row only if nobody moved it since the snapshot was read. Zero rows
// touched means a concurrent writer won, and the caller gets
// ErrStaleVersion instead of a silent overwrite.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	prev := l.Version
	l.Version = prev + 1
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("id = ? AND version = ?", l.ID, prev).
		Select("*").Omit("id", "created_at").
		Updates(l)
	if res.Error != nil {
		l.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		l.Version = prev
		return loanDomain.ErrStaleVersion
	}
	return nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Query != "" {
		q = q.Where("LOWER(borrower_name) LIKE ?", "%"+strings.ToLower(f.Query)+"%")
	}
	var out []loanDomain.Loan
	res := q.Order("next_due_date ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) Summarize(ctx context.Context) (*loanDomain.Summary, error) {
	var out loanDomain.Summary
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Select(`COALESCE(SUM(CASE WHEN state = 'active' THEN principal ELSE 0 END), 0)   AS outstanding_principal,
			COALESCE(SUM(CASE WHEN state = 'active' THEN interest_due ELSE 0 END), 0) AS projected_interest,
			COALESCE(SUM(CASE WHEN state = 'active' THEN 1 ELSE 0 END), 0)            AS active_count,
			COALESCE(SUM(CASE WHEN state = 'paid' THEN 1 ELSE 0 END), 0)              AS paid_count`).
		Scan(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListDueWithin(ctx context.Context, from time.Time, days int) ([]loanDomain.Loan, error) {
	until := from.AddDate(0, 0, days)
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("state = ? AND next_due_date >= ? AND next_due_date <= ?", loanDomain.StateActive, from, until).
		Order("next_due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) SoftDelete(ctx context.Context, loanID, deletedBy string) error {
	res := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).
		Where("loan_id = ?", loanID).
		Updates(map[string]any{
			"deleted_by": deletedBy,
			"deleted_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return loanDomain.ErrNotFound
	}
	return nil
}
