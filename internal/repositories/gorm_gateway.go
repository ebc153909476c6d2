package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type gormGateway struct {
	db *gorm.DB
}

// NewGormGateway returns a Gateway backed by db.
func NewGormGateway(db *gorm.DB) Gateway {
	return &gormGateway{db: db}
}

func (g *gormGateway) WithinTx(ctx context.Context, fn func(Stores) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStores{db: tx})
	})
}

func (g *gormGateway) Reader() Stores {
	return &gormStores{db: g.db}
}

func (g *gormGateway) SearchIndex() SearchIndexStore {
	return &searchIndexRepository{db: g.db}
}

type gormStores struct {
	db *gorm.DB
}

func (s *gormStores) Accounts() AccountStore {
	return &accountRepository{db: s.db}
}

func (s *gormStores) Businesses(kind ProfileKind) (BusinessStore, error) {
	switch kind {
	case KindBusiness:
		return &businessRepository{db: s.db, bank: false}, nil
	case KindBankBusiness:
		return &businessRepository{db: s.db, bank: true}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no business store", ErrUnsupportedEntityKind, kind)
	}
}

func (s *gormStores) Contacts() ContactStore {
	return &contactRepository{db: s.db}
}

func (s *gormStores) ApprovedSnapshots(kind ProfileKind) (ApprovedStore, error) {
	switch kind {
	case KindBusiness:
		return &approvedRepository{db: s.db, bank: false}, nil
	case KindBankBusiness:
		return &approvedRepository{db: s.db, bank: true}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no approved snapshot store", ErrUnsupportedOutcomeKind, kind)
	}
}

func (s *gormStores) Rejections() RejectionLog {
	return &rejectionRepository{db: s.db}
}

func (s *gormStores) BlockedComments() BlockedCommentLog {
	return &blockedCommentRepository{db: s.db}
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// paginate counts base, then loads one ordered page of it into T.
func paginate[T any](base *gorm.DB, order string, q PageQuery) (Page[T], error) {
	var page Page[T]
	if err := base.Session(&gorm.Session{}).Count(&page.Total).Error; err != nil {
		return page, fmt.Errorf("failed to count rows: %w", err)
	}
	err := base.Session(&gorm.Session{}).
		Order(order).
		Offset(q.Offset()).
		Limit(q.Size).
		Find(&page.Items).Error
	if err != nil {
		return page, fmt.Errorf("failed to list rows: %w", err)
	}
	return page, nil
}
