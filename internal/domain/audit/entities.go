package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIssue        Kind = "issue"
	KindPayment      Kind = "payment"
	KindCorrection   Kind = "correction"
	KindDistribution Kind = "distribution"
	KindDeletion     Kind = "deletion"
)

// Entry is one row of the append-only audit log. Entries are never edited
// or deleted once written; the partner earnings ledger is rebuilt by
// replaying them.
type Entry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID    string    `gorm:"column:loan_id;size:32;not null;index:idx_audit_loan_kind" json:"loan_id"`
	ActorID   string    `gorm:"column:actor_id;size:32;not null" json:"actor_id"`
	ActorRole string    `gorm:"column:actor_role;size:16;not null" json:"actor_role"`
	Kind      Kind      `gorm:"column:kind;size:16;not null;index:idx_audit_loan_kind" json:"kind"`
	Detail    string    `gorm:"column:detail;type:text" json:"detail"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_entries" }

// PaymentDetail is the JSON payload stored in Detail for payment entries.
// It carries the full financial delta so settlements can be reconstructed
// and replayed without a second table.
type PaymentDetail struct {
	InterestPaid  decimal.Decimal `json:"interest_paid"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	Shortfall     decimal.Decimal `json:"shortfall"`
	NewPrincipal  decimal.Decimal `json:"new_principal"`
	Renewed       bool            `json:"renewed"`
	Closed        bool            `json:"closed"`
}
