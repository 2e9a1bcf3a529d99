package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type State string

const (
	StateActive State = "active"
	StatePaid   State = "paid"
)

func (s State) Valid() bool { return s == StateActive || s == StatePaid }

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`

	BorrowerName  string `gorm:"size:120;index:idx_loans_borrower_name" json:"borrower_name"`
	BorrowerIDDoc string `gorm:"size:32" json:"borrower_id_doc"`
	BorrowerPhone string `gorm:"size:32" json:"borrower_phone"`

	Principal      decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	MonthlyRatePct decimal.Decimal `gorm:"type:decimal(6,2)" json:"monthly_rate_pct"`
	// Derived cache: principal * rate / 100. Recomputed after every
	// state-changing operation, never trusted on its own.
	InterestDue decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest_due"`

	IssueDate   time.Time `gorm:"type:date" json:"issue_date"`
	NextDueDate time.Time `gorm:"type:date" json:"next_due_date"`

	State State  `gorm:"type:enum('active','paid');default:'active'" json:"state"`
	Notes string `gorm:"type:text" json:"notes"`
	// Set exactly once, when the loan transitions to paid.
	FinalizedDate *time.Time `gorm:"type:date" json:"finalized_date,omitempty"`

	// Optimistic-concurrency fence: Save rejects a stale snapshot.
	Version uint64 `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Loan) TableName() string { return "loans" }
