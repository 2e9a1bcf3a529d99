package loan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrInvalidInput = errors.New("invalid input")
	// Payments against a paid loan are rejected outright; the audit trail
	// should show the mistake rather than swallow it.
	ErrLoanClosed = errors.New("loan is already paid")
	// Rate-based proration is undefined on a zero-rate loan.
	ErrZeroRate = errors.New("loan rate is zero")
	// Returned by Save when the persisted row has moved past the snapshot.
	ErrStaleVersion = errors.New("loan was modified concurrently")
	ErrForbidden    = errors.New("operation requires an admin session")
)

// UnbalancedError reports partner shares that do not sum to the loan rate.
// Difference is signed: positive means the shares exceed the rate.
type UnbalancedError struct {
	Difference decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("partner shares differ from loan rate by %s%%", e.Difference.StringFixed(2))
}
