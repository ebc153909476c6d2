package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&account).Error; err != nil {
		return nil, notFoundOr(err, "failed to get account")
	}
	return &account, nil
}

func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&account).Error
	if err != nil {
		return nil, notFoundOr(err, "failed to lock account")
	}
	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Save(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *accountRepository) ListPending(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.Account], error) {
	base := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("approval_status = ? AND role = ?", models.StatusPending, role)
	if q.SearchTerm != "" {
		base = base.Where("full_name LIKE ?", containsPattern(q.SearchTerm))
	}
	return paginate[models.Account](base, "created_at ASC", q)
}

func (r *accountRepository) CountByRole(ctx context.Context, role models.RoleType, since time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Account{}).Where("role = ?", role)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s accounts: %w", role, err)
	}
	return count, nil
}
