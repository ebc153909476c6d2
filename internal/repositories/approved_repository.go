package repositories

import (
	"context"
	"fmt"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type approvedRepository struct {
	db   *gorm.DB
	bank bool
}

func (r *approvedRepository) table() string {
	if r.bank {
		return models.ApprovedBankBusiness{}.TableName()
	}
	return models.ApprovedBusiness{}.TableName()
}

func (r *approvedRepository) FindByOwner(ctx context.Context, ownerID string) (*models.ApprovedBusiness, error) {
	var snapshot models.ApprovedBusiness
	err := r.db.WithContext(ctx).Table(r.table()).Where("owner_id = ?", ownerID).Take(&snapshot).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to get approved business")
	}
	return &snapshot, nil
}

func (r *approvedRepository) FindByOwners(ctx context.Context, ownerIDs []string) ([]models.ApprovedBusiness, error) {
	var snapshots []models.ApprovedBusiness
	if len(ownerIDs) == 0 {
		return snapshots, nil
	}
	err := r.db.WithContext(ctx).Table(r.table()).Where("owner_id IN ?", ownerIDs).Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get approved businesses: %w", err)
	}
	return snapshots, nil
}

func (r *approvedRepository) Replace(ctx context.Context, snapshot *models.ApprovedBusiness) error {
	var row interface{} = snapshot
	if r.bank {
		row = &models.ApprovedBankBusiness{ApprovedBusiness: *snapshot}
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to replace approved business: %w", err)
	}
	return nil
}

func (r *approvedRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	err := r.db.WithContext(ctx).
		Table(r.table()).
		Where("owner_id = ?", ownerID).
		Delete(&models.ApprovedBusiness{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete approved business: %w", err)
	}
	return nil
}

func (r *approvedRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(r.table()+" AS s").
		Joins("JOIN accounts a ON a.id = s.owner_id").
		Where("a.approval_status IN ?", []models.ApprovalStatus{models.StatusApproved, models.StatusUnblocked}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active owners: %w", err)
	}
	return count, nil
}
