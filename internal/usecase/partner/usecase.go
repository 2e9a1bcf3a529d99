package partner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"prestamos-backend/internal/domain/audit"
	domainLoan "prestamos-backend/internal/domain/loan"
	domainPartner "prestamos-backend/internal/domain/partner"
	"prestamos-backend/internal/domain/session"
	"prestamos-backend/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	loans    domainLoan.Repository
	partners domainPartner.Repository
	audits   audit.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, partners domainPartner.Repository, audits audit.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, partners: partners, audits: audits, uow: tx}
}

// Distribute validates that the shares sum to the loan rate and replaces
// the stored set. Already-recorded settlements are untouched; only future
// earnings replays see the new split.
func (u *Usecase) Distribute(ctx context.Context, sess session.Session, loanID string, shares map[string]decimal.Decimal) error {
	if !sess.CanMutate() {
		return domainLoan.ErrForbidden
	}
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if err := domainLoan.ValidateShares(*l, shares); err != nil {
			return err
		}
		rows := make([]domainPartner.Share, 0, len(shares))
		for name, pct := range shares {
			rows = append(rows, domainPartner.Share{LoanID: loanID, Partner: name, SharePct: pct})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Partner < rows[j].Partner })
		if err := r.Partners.ReplaceForLoan(ctx, loanID, rows); err != nil {
			return err
		}

		parts := make([]string, 0, len(rows))
		for _, s := range rows {
			parts = append(parts, fmt.Sprintf("%s=%s%%", s.Partner, s.SharePct.StringFixed(2)))
		}
		return r.Audits.Append(ctx, &audit.Entry{
			LoanID:    loanID,
			ActorID:   sess.ActorID,
			ActorRole: string(sess.Role),
			Kind:      audit.KindDistribution,
			Detail:    "shares distributed: " + strings.Join(parts, ", "),
		})
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLoan.ErrNotFound
	}
	return err
}

// EarningsLedger is the cumulative per-partner view built by replaying
// every payment recorded for the loan.
type EarningsLedger struct {
	LoanID        string                     `json:"loan_id"`
	InterestTotal decimal.Decimal            `json:"interest_collected_total"`
	Payments      int                        `json:"payments_replayed"`
	Earnings      map[string]decimal.Decimal `json:"earnings"`
}

// Earnings replays the loan's payment audit entries and apportions each
// collected interest amount across the current share set.
func (u *Usecase) Earnings(ctx context.Context, loanID string) (*EarningsLedger, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	shareRows, err := u.partners.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	shares := domainPartner.AsMap(shareRows)
	if len(shares) == 0 {
		// single-owner loan, nothing distributed
		return &EarningsLedger{LoanID: loanID, Earnings: map[string]decimal.Decimal{}}, nil
	}

	entries, err := u.audits.ListByLoanIDAndKind(ctx, loanID, audit.KindPayment)
	if err != nil {
		return nil, err
	}

	ledger := &EarningsLedger{LoanID: loanID, Earnings: make(map[string]decimal.Decimal, len(shares))}
	for _, e := range entries {
		var d audit.PaymentDetail
		if err := json.Unmarshal([]byte(e.Detail), &d); err != nil {
			return nil, fmt.Errorf("audit entry %d: malformed payment detail: %w", e.ID, err)
		}
		split, err := domainLoan.PartnerEarnings(*l, shares, d.InterestPaid)
		if err != nil {
			return nil, err
		}
		for name, amount := range split {
			ledger.Earnings[name] = ledger.Earnings[name].Add(amount)
		}
		ledger.InterestTotal = ledger.InterestTotal.Add(d.InterestPaid)
		ledger.Payments++
	}
	return ledger, nil
}
