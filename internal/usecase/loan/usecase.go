package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/audit"
	"prestamos-backend/internal/domain/session"
	"prestamos-backend/internal/domain/uow"
	"prestamos-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo   domain.Repository
	audits audit.Repository
	uow    uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, audits audit.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, audits: audits, uow: tx}
}

type IssueLoanInput struct {
	BorrowerName   string
	BorrowerIDDoc  string
	BorrowerPhone  string
	Principal      decimal.Decimal
	MonthlyRatePct decimal.Decimal
	IssueDate      time.Time
}

type LoanDTO struct {
	LoanID         string          `json:"loan_id"`
	BorrowerName   string          `json:"borrower_name"`
	BorrowerIDDoc  string          `json:"borrower_id_doc"`
	BorrowerPhone  string          `json:"borrower_phone"`
	Principal      decimal.Decimal `json:"principal"`
	MonthlyRatePct decimal.Decimal `json:"monthly_rate_pct"`
	InterestDue    decimal.Decimal `json:"interest_due"`
	IssueDate      string          `json:"issue_date"`
	NextDueDate    string          `json:"next_due_date"`
	State          string          `json:"state"`
	Notes          string          `json:"notes,omitempty"`
	FinalizedDate  string          `json:"finalized_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

const dateLayout = "2006-01-02"

func toDTO(l *domain.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:         l.LoanID,
		BorrowerName:   l.BorrowerName,
		BorrowerIDDoc:  l.BorrowerIDDoc,
		BorrowerPhone:  l.BorrowerPhone,
		Principal:      l.Principal,
		MonthlyRatePct: l.MonthlyRatePct,
		InterestDue:    l.InterestDue,
		IssueDate:      l.IssueDate.Format(dateLayout),
		NextDueDate:    l.NextDueDate.Format(dateLayout),
		State:          string(l.State),
		Notes:          l.Notes,
		CreatedAt:      l.CreatedAt,
	}
	if l.FinalizedDate != nil {
		dto.FinalizedDate = l.FinalizedDate.Format(dateLayout)
	}
	return dto
}

func (u *Usecase) Issue(ctx context.Context, sess session.Session, in IssueLoanInput) (*LoanDTO, error) {
	if !sess.CanMutate() {
		return nil, domain.ErrForbidden
	}
	l, err := domain.Issue(domain.IssueInput{
		BorrowerName:   in.BorrowerName,
		BorrowerIDDoc:  in.BorrowerIDDoc,
		BorrowerPhone:  in.BorrowerPhone,
		Principal:      in.Principal,
		MonthlyRatePct: in.MonthlyRatePct,
		IssueDate:      in.IssueDate,
	})
	if err != nil {
		return nil, err
	}
	l.LoanID = id.NewID32()

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Audits.Append(ctx, &audit.Entry{
			LoanID:    l.LoanID,
			ActorID:   sess.ActorID,
			ActorRole: string(sess.Role),
			Kind:      audit.KindIssue,
			Detail: fmt.Sprintf("issued principal=%s rate=%s%% interest_due=%s next_due=%s",
				l.Principal.StringFixed(2), l.MonthlyRatePct.StringFixed(2),
				l.InterestDue.StringFixed(2), l.NextDueDate.Format(dateLayout)),
		})
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

func (u *Usecase) List(ctx context.Context, f domain.ListFilter) ([]LoanDTO, error) {
	loans, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}

func (u *Usecase) Summary(ctx context.Context) (*domain.Summary, error) {
	return u.repo.Summarize(ctx)
}

// CorrectInput mirrors domain.Correction plus a human reason recorded in
// the audit trail.
type CorrectInput struct {
	Correction domain.Correction
	Reason     string
}

func (u *Usecase) Correct(ctx context.Context, sess session.Session, loanID string, in CorrectInput) (*LoanDTO, error) {
	if !sess.CanMutate() {
		return nil, domain.ErrForbidden
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		fixed, err := domain.Correct(*l, in.Correction, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, &fixed); err != nil {
			return err
		}
		detail := "administrative correction"
		if in.Reason != "" {
			detail = fmt.Sprintf("administrative correction: %s", in.Reason)
		}
		if err := r.Audits.Append(ctx, &audit.Entry{
			LoanID:    loanID,
			ActorID:   sess.ActorID,
			ActorRole: string(sess.Role),
			Kind:      audit.KindCorrection,
			Detail:    detail,
		}); err != nil {
			return err
		}
		dto = toDTO(&fixed)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Delete soft-deletes a loan. Administrative action outside the normal
// lifecycle; the row stays behind for the audit trail.
func (u *Usecase) Delete(ctx context.Context, sess session.Session, loanID string) error {
	if !sess.CanMutate() {
		return domain.ErrForbidden
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.SoftDelete(ctx, loanID, sess.ActorID); err != nil {
			return err
		}
		return r.Audits.Append(ctx, &audit.Entry{
			LoanID:    loanID,
			ActorID:   sess.ActorID,
			ActorRole: string(sess.Role),
			Kind:      audit.KindDeletion,
			Detail:    "loan deleted",
		})
	})
}

func (u *Usecase) AuditTrail(ctx context.Context, loanID string) ([]audit.Entry, error) {
	if _, err := u.repo.GetByLoanID(ctx, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u.audits.ListByLoanID(ctx, loanID)
}
