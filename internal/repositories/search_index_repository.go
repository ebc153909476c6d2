package repositories

import (
	"context"
	"fmt"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
)

type searchIndexRepository struct {
	db *gorm.DB
}

func (r *searchIndexRepository) FindByUserID(ctx context.Context, userID string) (*models.SearchIndexEntry, error) {
	var entry models.SearchIndexEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&entry).Error; err != nil {
		return nil, notFoundOr(err, "failed to get search index entry")
	}
	return &entry, nil
}

func (r *searchIndexRepository) Save(ctx context.Context, entry *models.SearchIndexEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("failed to save search index entry: %w", err)
	}
	return nil
}

func (r *searchIndexRepository) Search(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.SearchIndexEntry], error) {
	base := r.db.WithContext(ctx).
		Model(&models.SearchIndexEntry{}).
		Where("user_role = ?", role)
	if q.SearchTerm != "" {
		pattern := containsPattern(q.SearchTerm)
		base = base.Where("business_name LIKE ? OR full_name LIKE ?", pattern, pattern)
	}
	return paginate[models.SearchIndexEntry](base, "full_name ASC", q)
}
