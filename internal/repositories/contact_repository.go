package repositories

import (
	"context"
	"fmt"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

func (r *contactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&contact).Error; err != nil {
		return nil, notFoundOr(err, "failed to get contact")
	}
	return &contact, nil
}

func (r *contactRepository) FindPendingByOwner(ctx context.Context, ownerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND approval_status = ?", ownerID, models.StatusPending).
		Take(&contact).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to get pending contact")
	}
	return &contact, nil
}

func (r *contactRepository) FindLatestByOwner(ctx context.Context, ownerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Take(&contact).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to get latest contact")
	}
	return &contact, nil
}

func (r *contactRepository) Save(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (r *contactRepository) ListPending(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.Contact], error) {
	base := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("approval_status = ? AND role_type = ?", models.StatusPending, role)
	if q.SearchTerm != "" {
		base = base.Where("name LIKE ?", containsPattern(q.SearchTerm))
	}
	return paginate[models.Contact](base, "updated_at ASC", q)
}
