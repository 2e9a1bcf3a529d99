package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"prestamos-backend/internal/domain/audit"
	domain "prestamos-backend/internal/domain/loan"
	"prestamos-backend/internal/domain/session"
	"prestamos-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type ApplyInput struct {
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal
	// Renew advances the next due date one month; left false for partial
	// or early payments where the operator keeps the cycle in place.
	Renew bool
	// Optional closing note; only written when the payment closes the loan.
	Note string
}

type SettlementDTO struct {
	LoanID         string          `json:"loan_id"`
	Shortfall      decimal.Decimal `json:"shortfall"`
	NewPrincipal   decimal.Decimal `json:"new_principal"`
	NewInterestDue decimal.Decimal `json:"new_interest_due"`
	NextDueDate    string          `json:"next_due_date"`
	State          string          `json:"state"`
	Closed         bool            `json:"closed"`
}

// Apply runs the payment algorithm against the locked loan row and records
// the settlement in the audit log. The detail payload carries the full
// delta so the partner earnings ledger can replay it later.
func (u *Usecase) Apply(ctx context.Context, sess session.Session, loanID string, in ApplyInput) (*SettlementDTO, error) {
	if !sess.CanMutate() {
		return nil, domain.ErrForbidden
	}
	var dto *SettlementDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		updated, st, err := domain.ApplyPayment(*l, in.InterestPaid, in.PrincipalPaid, in.Renew, time.Now().UTC(), in.Note)
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, &updated); err != nil {
			return err
		}

		raw, err := json.Marshal(audit.PaymentDetail{
			InterestPaid:  in.InterestPaid,
			PrincipalPaid: in.PrincipalPaid,
			Shortfall:     st.Shortfall,
			NewPrincipal:  st.NewPrincipal,
			Renewed:       in.Renew,
			Closed:        st.Closed,
		})
		if err != nil {
			return err
		}
		if err := r.Audits.Append(ctx, &audit.Entry{
			LoanID:    loanID,
			ActorID:   sess.ActorID,
			ActorRole: string(sess.Role),
			Kind:      audit.KindPayment,
			Detail:    string(raw),
		}); err != nil {
			return err
		}

		dto = &SettlementDTO{
			LoanID:         loanID,
			Shortfall:      st.Shortfall,
			NewPrincipal:   st.NewPrincipal,
			NewInterestDue: st.NewInterestDue,
			NextDueDate:    updated.NextDueDate.Format("2006-01-02"),
			State:          string(updated.State),
			Closed:         st.Closed,
		}
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
