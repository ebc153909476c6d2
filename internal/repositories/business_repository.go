package repositories

import (
	"context"
	"fmt"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
)

// businessRepository serves both business tables; bank selects bank_businesses.
type businessRepository struct {
	db   *gorm.DB
	bank bool
}

func (r *businessRepository) table() string {
	if r.bank {
		return models.BankBusiness{}.TableName()
	}
	return models.Business{}.TableName()
}

func (r *businessRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table())
}

func (r *businessRepository) FindByID(ctx context.Context, id string) (*models.Business, error) {
	var business models.Business
	if err := r.scoped(ctx).Where("id = ?", id).Take(&business).Error; err != nil {
		return nil, notFoundOr(err, "failed to get business")
	}
	return &business, nil
}

func (r *businessRepository) FindPendingByOwner(ctx context.Context, ownerID string) (*models.Business, error) {
	var business models.Business
	err := r.scoped(ctx).
		Where("owner_id = ? AND approval_status = ?", ownerID, models.StatusPending).
		Take(&business).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to get pending business")
	}
	return &business, nil
}

func (r *businessRepository) FindLatestByOwner(ctx context.Context, ownerID string) (*models.Business, error) {
	var business models.Business
	err := r.scoped(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Take(&business).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to get latest business")
	}
	return &business, nil
}

// Save upserts the row. Bank rows go through their own model so gorm picks
// the right table for the insert path.
func (r *businessRepository) Save(ctx context.Context, business *models.Business) error {
	if !r.bank {
		if err := r.db.WithContext(ctx).Save(business).Error; err != nil {
			return fmt.Errorf("failed to save business: %w", err)
		}
		return nil
	}

	row := models.BankBusiness{Business: *business}
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save bank business: %w", err)
	}
	*business = row.Business
	return nil
}

func (r *businessRepository) ListPending(ctx context.Context, q PageQuery) (Page[models.Business], error) {
	base := r.scoped(ctx).Where("approval_status = ?", models.StatusPending)
	if q.SearchTerm != "" {
		base = base.Where("business_name LIKE ?", containsPattern(q.SearchTerm))
	}
	return paginate[models.Business](base, "updated_at ASC", q)
}
