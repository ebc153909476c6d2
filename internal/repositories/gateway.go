package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

var (
	ErrNotFound               = errors.New("record not found")
	ErrUnsupportedEntityKind  = errors.New("unsupported entity kind")
	ErrUnsupportedOutcomeKind = errors.New("unsupported outcome kind")
	ErrReadOnly               = errors.New("store handle is read-only")
)

// ProfileKind selects the backing store for an approvable entity.
type ProfileKind int

const (
	KindAccount ProfileKind = iota
	KindBusiness
	KindBankBusiness
	KindContact
)

func (k ProfileKind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindBusiness:
		return "business"
	case KindBankBusiness:
		return "bank_business"
	case KindContact:
		return "contact"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OutcomeKind selects the side store written for a decision outcome.
type OutcomeKind int

const (
	OutcomeApproved OutcomeKind = iota
	OutcomeRejected
	OutcomeBlocked
)

// BusinessKindFor maps an owner role to its business store.
func BusinessKindFor(role models.RoleType) (ProfileKind, error) {
	switch role {
	case models.RoleMerchant:
		return KindBusiness, nil
	case models.RoleBank:
		return KindBankBusiness, nil
	default:
		return 0, fmt.Errorf("%w: no business store for role %q", ErrUnsupportedEntityKind, role)
	}
}

// OutcomeFor maps a decided status to the side store it writes, if any.
func OutcomeFor(status models.ApprovalStatus) (OutcomeKind, bool) {
	switch status {
	case models.StatusApproved:
		return OutcomeApproved, true
	case models.StatusRejected:
		return OutcomeRejected, true
	case models.StatusBlocked:
		return OutcomeBlocked, true
	default:
		return 0, false
	}
}

// MaxPageSize caps list queries.
const MaxPageSize = 250

// AllSearchTerm is the path sentinel for "no name filter".
const AllSearchTerm = "ALL"

// PageQuery is a zero-based page request. An empty SearchTerm means no filter.
type PageQuery struct {
	Page       int
	Size       int
	SearchTerm string
}

// Validate checks page bounds.
func (q PageQuery) Validate() error {
	if q.Page < 0 {
		return fmt.Errorf("page must be >= 0, got %d", q.Page)
	}
	if q.Size < 1 || q.Size > MaxPageSize {
		return fmt.Errorf("size must be between 1 and %d, got %d", MaxPageSize, q.Size)
	}
	return nil
}

func (q PageQuery) Offset() int { return q.Page * q.Size }

// Page is one page of results plus the total match count.
type Page[T any] struct {
	Items []T
	Total int64
}

type AccountStore interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Save(ctx context.Context, account *models.Account) error
	ListPending(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.Account], error)
	// CountByRole counts accounts of role created at or after since. A zero
	// since counts all of them.
	CountByRole(ctx context.Context, role models.RoleType, since time.Time) (int64, error)
}

type BusinessStore interface {
	FindByID(ctx context.Context, id string) (*models.Business, error)
	FindPendingByOwner(ctx context.Context, ownerID string) (*models.Business, error)
	// FindLatestByOwner returns the most recently updated row regardless of status.
	FindLatestByOwner(ctx context.Context, ownerID string) (*models.Business, error)
	Save(ctx context.Context, business *models.Business) error
	ListPending(ctx context.Context, q PageQuery) (Page[models.Business], error)
}

type ContactStore interface {
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	FindPendingByOwner(ctx context.Context, ownerID string) (*models.Contact, error)
	FindLatestByOwner(ctx context.Context, ownerID string) (*models.Contact, error)
	Save(ctx context.Context, contact *models.Contact) error
	ListPending(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.Contact], error)
}

type ApprovedStore interface {
	FindByOwner(ctx context.Context, ownerID string) (*models.ApprovedBusiness, error)
	FindByOwners(ctx context.Context, ownerIDs []string) ([]models.ApprovedBusiness, error)
	// Replace writes the snapshot for its owner in one statement.
	Replace(ctx context.Context, snapshot *models.ApprovedBusiness) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	// CountActive counts snapshots whose owner account is APPROVED or UNBLOCKED.
	CountActive(ctx context.Context) (int64, error)
}

type RejectionLog interface {
	Append(ctx context.Context, entry *models.RejectedProfileUpdate) error
}

type BlockedCommentLog interface {
	Append(ctx context.Context, entry *models.BlockedMerchantComment) error
}

type SearchIndexStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.SearchIndexEntry, error)
	Save(ctx context.Context, entry *models.SearchIndexEntry) error
	Search(ctx context.Context, role models.RoleType, q PageQuery) (Page[models.SearchIndexEntry], error)
}

// Stores resolves the store for each entity and outcome kind.
type Stores interface {
	Accounts() AccountStore
	Businesses(kind ProfileKind) (BusinessStore, error)
	Contacts() ContactStore
	ApprovedSnapshots(kind ProfileKind) (ApprovedStore, error)
	Rejections() RejectionLog
	BlockedComments() BlockedCommentLog
}

// Gateway is the persistence entry point used by the services.
type Gateway interface {
	// WithinTx runs fn against stores bound to one transaction. Any error
	// returned by fn rolls back every write made through those stores.
	WithinTx(ctx context.Context, fn func(Stores) error) error
	// Reader returns stores for reads outside a transaction.
	Reader() Stores
	SearchIndex() SearchIndexStore
}
