package mysql

import (
	"context"

	partnerDomain "prestamos-backend/internal/domain/partner"

	"gorm.io/gorm"
)

type PartnerShareRepository struct{ db *gorm.DB }

func NewPartnerShareRepository(db *gorm.DB) *PartnerShareRepository {
	return &PartnerShareRepository{db: db}
}

// ReplaceForLoan swaps the loan's share rows. Runs inside the caller's
// transaction when invoked through the unit of work.
func (r *PartnerShareRepository) ReplaceForLoan(ctx context.Context, loanID string, shares []partnerDomain.Share) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("loan_id = ?", loanID).Delete(&partnerDomain.Share{}).Error; err != nil {
		return err
	}
	if len(shares) == 0 {
		return nil
	}
	return tx.Create(&shares).Error
}

func (r *PartnerShareRepository) ListByLoanID(ctx context.Context, loanID string) ([]partnerDomain.Share, error) {
	var out []partnerDomain.Share
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("partner ASC").
		Find(&out)
	return out, res.Error
}
