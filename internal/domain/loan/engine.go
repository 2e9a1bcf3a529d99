package loan

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"prestamos-backend/pkg/calendar"
)

var (
	hundred = decimal.NewFromInt(100)
	// Tolerance when checking that partner shares sum to the loan rate.
	shareEpsilon = decimal.New(1, -2) // 0.01
)

// interestFor is the single source of truth for the interest_due cache:
// principal * rate / 100, at two decimal places.
func interestFor(principal, ratePct decimal.Decimal) decimal.Decimal {
	return principal.Mul(ratePct).Div(hundred).Round(2)
}

type IssueInput struct {
	BorrowerName   string
	BorrowerIDDoc  string
	BorrowerPhone  string
	Principal      decimal.Decimal
	MonthlyRatePct decimal.Decimal
	IssueDate      time.Time
}

// Issue creates a new active loan snapshot. The caller assigns the public
// identifier and persists the result.
func Issue(in IssueInput) (*Loan, error) {
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidInput
	}
	if in.MonthlyRatePct.IsNegative() {
		return nil, ErrInvalidInput
	}
	return &Loan{
		BorrowerName:   in.BorrowerName,
		BorrowerIDDoc:  in.BorrowerIDDoc,
		BorrowerPhone:  in.BorrowerPhone,
		Principal:      in.Principal,
		MonthlyRatePct: in.MonthlyRatePct,
		InterestDue:    interestFor(in.Principal, in.MonthlyRatePct),
		IssueDate:      in.IssueDate,
		NextDueDate:    calendar.AdvanceOneMonth(in.IssueDate),
		State:          StateActive,
	}, nil
}

// Settlement summarizes a payment so the caller can render a confirmation
// without recomputing anything.
type Settlement struct {
	Shortfall      decimal.Decimal `json:"shortfall"`
	NewPrincipal   decimal.Decimal `json:"new_principal"`
	NewInterestDue decimal.Decimal `json:"new_interest_due"`
	Closed         bool            `json:"closed"`
}

// ApplyPayment nets a borrower payment against the loan and returns a new
// snapshot; the input is never mutated.
//
// Interest not collected this period capitalizes into principal; interest
// overpaid is credited against it. Closure is decided on the unclamped
// computed principal: when it crosses zero the loan becomes paid, principal
// is forced to exactly zero and a caller-supplied note overwrites notes.
// principalPaid may exceed the outstanding principal; the overshoot simply
// drives the loan to closure.
func ApplyPayment(l Loan, interestPaid, principalPaid decimal.Decimal, renew bool, now time.Time, note string) (Loan, Settlement, error) {
	if l.State == StatePaid {
		return Loan{}, Settlement{}, ErrLoanClosed
	}
	if interestPaid.IsNegative() || principalPaid.IsNegative() {
		return Loan{}, Settlement{}, ErrInvalidInput
	}

	shortfall := l.InterestDue.Sub(interestPaid)
	newPrincipal := l.Principal.Sub(principalPaid).Add(shortfall)

	out := l
	if newPrincipal.LessThanOrEqual(decimal.Zero) {
		finalized := now
		out.Principal = decimal.Zero
		out.InterestDue = decimal.Zero
		out.State = StatePaid
		out.FinalizedDate = &finalized
		if note != "" {
			out.Notes = note
		}
		return out, Settlement{
			Shortfall:      shortfall,
			NewPrincipal:   decimal.Zero,
			NewInterestDue: decimal.Zero,
			Closed:         true,
		}, nil
	}

	out.Principal = newPrincipal
	out.InterestDue = interestFor(newPrincipal, l.MonthlyRatePct)
	if renew {
		out.NextDueDate = calendar.AdvanceOneMonth(l.NextDueDate)
	}
	return out, Settlement{
		Shortfall:      shortfall,
		NewPrincipal:   newPrincipal,
		NewInterestDue: out.InterestDue,
	}, nil
}

// Correction carries the fields an administrative overwrite may touch.
// Nil means "leave unchanged".
type Correction struct {
	BorrowerName   *string
	BorrowerIDDoc  *string
	BorrowerPhone  *string
	Principal      *decimal.Decimal
	MonthlyRatePct *decimal.Decimal
	NextDueDate    *time.Time
	State          *State
	Notes          *string
}

// Correct applies an administrative overwrite, bypassing the payment
// algorithm. Only type/range sanity is enforced; the interest cache is
// recomputed from whatever principal and rate the correction leaves behind.
func Correct(l Loan, c Correction, now time.Time) (Loan, error) {
	out := l
	if c.BorrowerName != nil {
		out.BorrowerName = *c.BorrowerName
	}
	if c.BorrowerIDDoc != nil {
		out.BorrowerIDDoc = *c.BorrowerIDDoc
	}
	if c.BorrowerPhone != nil {
		out.BorrowerPhone = *c.BorrowerPhone
	}
	if c.Principal != nil {
		if c.Principal.IsNegative() {
			return Loan{}, ErrInvalidInput
		}
		out.Principal = *c.Principal
	}
	if c.MonthlyRatePct != nil {
		if c.MonthlyRatePct.IsNegative() {
			return Loan{}, ErrInvalidInput
		}
		out.MonthlyRatePct = *c.MonthlyRatePct
	}
	if c.NextDueDate != nil {
		out.NextDueDate = *c.NextDueDate
	}
	if c.State != nil {
		if !c.State.Valid() {
			return Loan{}, ErrInvalidInput
		}
		out.State = *c.State
		if out.State == StatePaid && out.FinalizedDate == nil {
			finalized := now
			out.FinalizedDate = &finalized
		}
	}
	if c.Notes != nil {
		out.Notes = *c.Notes
	}
	out.InterestDue = interestFor(out.Principal, out.MonthlyRatePct)
	return out, nil
}

// ValidateShares checks that the partner percentages sum to the loan rate
// within the epsilon. On imbalance it returns an *UnbalancedError carrying
// the signed difference ("over by X" / "short by X").
func ValidateShares(l Loan, shares map[string]decimal.Decimal) error {
	if len(shares) == 0 {
		return ErrInvalidInput
	}
	sum := decimal.Zero
	for partner, pct := range shares {
		if partner == "" || pct.IsNegative() {
			return ErrInvalidInput
		}
		sum = sum.Add(pct)
	}
	if diff := sum.Sub(l.MonthlyRatePct); diff.Abs().GreaterThan(shareEpsilon) {
		return &UnbalancedError{Difference: diff}
	}
	return nil
}

// PartnerEarnings apportions interest actually collected across partners in
// proportion to their stake. Shortfalls and overpayments flow through pro
// rata: each partner gets (share / rate) * interestPaid. Amounts are rounded
// to cents; the final partner (by name order) absorbs the rounding remainder
// so the split always sums to exactly interestPaid.
func PartnerEarnings(l Loan, shares map[string]decimal.Decimal, interestPaid decimal.Decimal) (map[string]decimal.Decimal, error) {
	if l.MonthlyRatePct.IsZero() {
		return nil, ErrZeroRate
	}
	if interestPaid.IsNegative() {
		return nil, ErrInvalidInput
	}

	partners := make([]string, 0, len(shares))
	for p := range shares {
		partners = append(partners, p)
	}
	sort.Strings(partners)

	out := make(map[string]decimal.Decimal, len(shares))
	allocated := decimal.Zero
	for i, p := range partners {
		if i == len(partners)-1 {
			out[p] = interestPaid.Sub(allocated)
			break
		}
		amount := shares[p].Mul(interestPaid).Div(l.MonthlyRatePct).Round(2)
		out[p] = amount
		allocated = allocated.Add(amount)
	}
	return out, nil
}
