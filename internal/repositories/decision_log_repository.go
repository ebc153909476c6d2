package repositories

import (
	"context"
	"fmt"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"gorm.io/gorm"
)

type rejectionRepository struct {
	db *gorm.DB
}

func (r *rejectionRepository) Append(ctx context.Context, entry *models.RejectedProfileUpdate) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append rejected profile update: %w", err)
	}
	return nil
}

type blockedCommentRepository struct {
	db *gorm.DB
}

func (r *blockedCommentRepository) Append(ctx context.Context, entry *models.BlockedMerchantComment) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append blocked merchant comment: %w", err)
	}
	return nil
}
