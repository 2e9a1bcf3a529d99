package partner

import (
	"time"

	"github.com/shopspring/decimal"
)

// Share is one partner's slice of a loan's interest rate. The shares of a
// loan must sum to its monthly rate; that is validated before they are
// stored, and a successful distribution replaces the set wholesale.
type Share struct {
	ID        uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanID    string          `gorm:"column:loan_id;size:32;not null;uniqueIndex:ux_partner_shares_loan_partner" json:"loan_id"`
	Partner   string          `gorm:"column:partner;size:64;not null;uniqueIndex:ux_partner_shares_loan_partner" json:"partner"`
	SharePct  decimal.Decimal `gorm:"column:share_pct;type:decimal(6,2)" json:"share_pct"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Share) TableName() string { return "partner_shares" }

// AsMap flattens share rows into the partner → percentage mapping the
// engine works with.
func AsMap(shares []Share) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(shares))
	for _, s := range shares {
		out[s.Partner] = s.SharePct
	}
	return out
}
