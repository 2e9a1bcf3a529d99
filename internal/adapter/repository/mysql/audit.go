package mysql

import (
	"context"

	auditDomain "prestamos-backend/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

// Append only. There is deliberately no update or delete here.
func (r *AuditRepository) Append(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListByLoanID(ctx context.Context, loanID string) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AuditRepository) ListByLoanIDAndKind(ctx context.Context, loanID string, kind auditDomain.Kind) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND kind = ?", loanID, kind).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
