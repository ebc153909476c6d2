// Package memstore is an in-memory repositories.Gateway. Transactions run one
// at a time against a copy of the committed state which replaces it on success.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
)

// Operation names accepted by FailOn.
const (
	OpAccountCreate   = "accounts.create"
	OpAccountSave     = "accounts.save"
	OpBusinessSave    = "businesses.save"
	OpContactSave     = "contacts.save"
	OpApprovedReplace = "approved.replace"
	OpRejectionAppend = "rejections.append"
	OpBlockedAppend   = "blocked.append"
	OpSearchIndexSave = "search_index.save"
	OpSearchIndexFind = "search_index.find"
)

type state struct {
	accounts       map[string]models.Account
	businesses     map[string]models.Business
	bankBusinesses map[string]models.Business
	contacts       map[string]models.Contact
	approved       map[string]models.ApprovedBusiness
	approvedBank   map[string]models.ApprovedBusiness
	rejections     []models.RejectedProfileUpdate
	blocked        []models.BlockedMerchantComment
}

func newState() *state {
	return &state{
		accounts:       map[string]models.Account{},
		businesses:     map[string]models.Business{},
		bankBusinesses: map[string]models.Business{},
		contacts:       map[string]models.Contact{},
		approved:       map[string]models.ApprovedBusiness{},
		approvedBank:   map[string]models.ApprovedBusiness{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.bankBusinesses {
		c.bankBusinesses[k] = v
	}
	for k, v := range s.contacts {
		c.contacts[k] = v
	}
	for k, v := range s.approved {
		c.approved[k] = v
	}
	for k, v := range s.approvedBank {
		c.approvedBank[k] = v
	}
	c.rejections = append([]models.RejectedProfileUpdate(nil), s.rejections...)
	c.blocked = append([]models.BlockedMerchantComment(nil), s.blocked...)
	return c
}

// Store implements repositories.Gateway in memory.
type Store struct {
	txMu    sync.Mutex
	mu      sync.RWMutex
	current *state

	failMu   sync.RWMutex
	failures map[string]error

	index *searchIndex
}

var _ repositories.Gateway = (*Store)(nil)

func New() *Store {
	s := &Store{
		current:  newState(),
		failures: map[string]error{},
	}
	s.index = &searchIndex{store: s, entries: map[string]models.SearchIndexEntry{}}
	return s
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	s.failMu.RLock()
	defer s.failMu.RUnlock()
	return s.failures[op]
}

func (s *Store) WithinTx(ctx context.Context, fn func(repositories.Stores) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	work := s.current.clone()
	s.mu.RUnlock()

	if err := fn(&view{store: s, st: work, writable: true}); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = work
	s.mu.Unlock()
	return nil
}

// Reader returns a read-only view of the committed state.
func (s *Store) Reader() repositories.Stores {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &view{store: s, st: s.current}
}

func (s *Store) SearchIndex() repositories.SearchIndexStore {
	return s.index
}

func (s *Store) committed() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AllBusinesses returns the committed rows of one business table.
func (s *Store) AllBusinesses(kind repositories.ProfileKind) []models.Business {
	st := s.committed()
	rows := st.businesses
	if kind == repositories.KindBankBusiness {
		rows = st.bankBusinesses
	}
	return sortedValues(rows, func(a, b models.Business) bool { return a.ID < b.ID })
}

func (s *Store) AllContacts() []models.Contact {
	return sortedValues(s.committed().contacts, func(a, b models.Contact) bool { return a.ID < b.ID })
}

func (s *Store) AllApproved(kind repositories.ProfileKind) []models.ApprovedBusiness {
	st := s.committed()
	rows := st.approved
	if kind == repositories.KindBankBusiness {
		rows = st.approvedBank
	}
	return sortedValues(rows, func(a, b models.ApprovedBusiness) bool { return a.OwnerID < b.OwnerID })
}

func (s *Store) AllRejections() []models.RejectedProfileUpdate {
	return append([]models.RejectedProfileUpdate(nil), s.committed().rejections...)
}

func (s *Store) AllBlockedComments() []models.BlockedMerchantComment {
	return append([]models.BlockedMerchantComment(nil), s.committed().blocked...)
}

type view struct {
	store    *Store
	st       *state
	writable bool
}

func (v *view) check(op string) error {
	if !v.writable {
		return repositories.ErrReadOnly
	}
	return v.store.fail(op)
}

func (v *view) Accounts() repositories.AccountStore {
	return &accounts{v: v}
}

func (v *view) Businesses(kind repositories.ProfileKind) (repositories.BusinessStore, error) {
	switch kind {
	case repositories.KindBusiness:
		return &businesses{v: v, rows: v.st.businesses}, nil
	case repositories.KindBankBusiness:
		return &businesses{v: v, rows: v.st.bankBusinesses}, nil
	default:
		return nil, repositories.ErrUnsupportedEntityKind
	}
}

func (v *view) Contacts() repositories.ContactStore {
	return &contacts{v: v}
}

func (v *view) ApprovedSnapshots(kind repositories.ProfileKind) (repositories.ApprovedStore, error) {
	switch kind {
	case repositories.KindBusiness:
		return &approved{v: v, rows: v.st.approved}, nil
	case repositories.KindBankBusiness:
		return &approved{v: v, rows: v.st.approvedBank}, nil
	default:
		return nil, repositories.ErrUnsupportedOutcomeKind
	}
}

func (v *view) Rejections() repositories.RejectionLog {
	return &rejections{v: v}
}

func (v *view) BlockedComments() repositories.BlockedCommentLog {
	return &blockedComments{v: v}
}

type accounts struct{ v *view }

func (a *accounts) FindByID(_ context.Context, id string) (*models.Account, error) {
	account, ok := a.v.st.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &account, nil
}

func (a *accounts) FindByIDForUpdate(ctx context.Context, id string) (*models.Account, error) {
	return a.FindByID(ctx, id)
}

func (a *accounts) Create(_ context.Context, account *models.Account) error {
	if err := a.v.check(OpAccountCreate); err != nil {
		return err
	}
	if _, exists := a.v.st.accounts[account.ID]; exists {
		return errDuplicate("account", account.ID)
	}
	stamp(&account.CreatedAt, &account.UpdatedAt)
	a.v.st.accounts[account.ID] = *account
	return nil
}

func (a *accounts) Save(_ context.Context, account *models.Account) error {
	if err := a.v.check(OpAccountSave); err != nil {
		return err
	}
	stamp(&account.CreatedAt, &account.UpdatedAt)
	a.v.st.accounts[account.ID] = *account
	return nil
}

func (a *accounts) ListPending(_ context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.Account], error) {
	var rows []models.Account
	for _, acc := range a.v.st.accounts {
		if acc.ApprovalStatus != models.StatusPending || acc.Role != role {
			continue
		}
		if q.SearchTerm != "" && !strings.Contains(acc.FullName, q.SearchTerm) {
			continue
		}
		rows = append(rows, acc)
	}
	sort.SliceStable(rows, func(i, j int) bool { return before(rows[i].CreatedAt, rows[j].CreatedAt, rows[i].ID, rows[j].ID) })
	return page(rows, q), nil
}

func (a *accounts) CountByRole(_ context.Context, role models.RoleType, since time.Time) (int64, error) {
	var n int64
	for _, acc := range a.v.st.accounts {
		if acc.Role == role && !acc.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type businesses struct {
	v    *view
	rows map[string]models.Business
}

func (b *businesses) FindByID(_ context.Context, id string) (*models.Business, error) {
	row, ok := b.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (b *businesses) FindPendingByOwner(_ context.Context, ownerID string) (*models.Business, error) {
	for _, row := range b.rows {
		if row.OwnerID == ownerID && row.ApprovalStatus == models.StatusPending {
			return &row, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (b *businesses) FindLatestByOwner(_ context.Context, ownerID string) (*models.Business, error) {
	var latest *models.Business
	for _, row := range b.rows {
		if row.OwnerID != ownerID {
			continue
		}
		if latest == nil || row.UpdatedAt.After(latest.UpdatedAt) {
			r := row
			latest = &r
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return latest, nil
}

func (b *businesses) Save(_ context.Context, business *models.Business) error {
	if err := b.v.check(OpBusinessSave); err != nil {
		return err
	}
	if business.ApprovalStatus == models.StatusPending {
		for id, row := range b.rows {
			if id != business.ID && row.OwnerID == business.OwnerID && row.ApprovalStatus == models.StatusPending {
				return errDuplicate("pending business for owner", business.OwnerID)
			}
		}
	}
	stamp(&business.CreatedAt, &business.UpdatedAt)
	b.rows[business.ID] = *business
	return nil
}

func (b *businesses) ListPending(_ context.Context, q repositories.PageQuery) (repositories.Page[models.Business], error) {
	var rows []models.Business
	for _, row := range b.rows {
		if row.ApprovalStatus != models.StatusPending {
			continue
		}
		if q.SearchTerm != "" && !strings.Contains(row.BusinessName, q.SearchTerm) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return before(rows[i].UpdatedAt, rows[j].UpdatedAt, rows[i].ID, rows[j].ID) })
	return page(rows, q), nil
}

type contacts struct{ v *view }

func (c *contacts) FindByID(_ context.Context, id string) (*models.Contact, error) {
	row, ok := c.v.st.contacts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (c *contacts) FindPendingByOwner(_ context.Context, ownerID string) (*models.Contact, error) {
	for _, row := range c.v.st.contacts {
		if row.OwnerID == ownerID && row.ApprovalStatus == models.StatusPending {
			return &row, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *contacts) FindLatestByOwner(_ context.Context, ownerID string) (*models.Contact, error) {
	var latest *models.Contact
	for _, row := range c.v.st.contacts {
		if row.OwnerID != ownerID {
			continue
		}
		if latest == nil || row.UpdatedAt.After(latest.UpdatedAt) {
			r := row
			latest = &r
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return latest, nil
}

func (c *contacts) Save(_ context.Context, contact *models.Contact) error {
	if err := c.v.check(OpContactSave); err != nil {
		return err
	}
	if contact.ApprovalStatus == models.StatusPending {
		for id, row := range c.v.st.contacts {
			if id != contact.ID && row.OwnerID == contact.OwnerID && row.ApprovalStatus == models.StatusPending {
				return errDuplicate("pending contact for owner", contact.OwnerID)
			}
		}
	}
	stamp(&contact.CreatedAt, &contact.UpdatedAt)
	c.v.st.contacts[contact.ID] = *contact
	return nil
}

func (c *contacts) ListPending(_ context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.Contact], error) {
	var rows []models.Contact
	for _, row := range c.v.st.contacts {
		if row.ApprovalStatus != models.StatusPending || row.RoleType != role {
			continue
		}
		if q.SearchTerm != "" && !strings.Contains(row.Name, q.SearchTerm) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return before(rows[i].UpdatedAt, rows[j].UpdatedAt, rows[i].ID, rows[j].ID) })
	return page(rows, q), nil
}

type approved struct {
	v    *view
	rows map[string]models.ApprovedBusiness
}

func (a *approved) FindByOwner(_ context.Context, ownerID string) (*models.ApprovedBusiness, error) {
	row, ok := a.rows[ownerID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &row, nil
}

func (a *approved) FindByOwners(_ context.Context, ownerIDs []string) ([]models.ApprovedBusiness, error) {
	var rows []models.ApprovedBusiness
	for _, id := range ownerIDs {
		if row, ok := a.rows[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (a *approved) Replace(_ context.Context, snapshot *models.ApprovedBusiness) error {
	if err := a.v.check(OpApprovedReplace); err != nil {
		return err
	}
	a.rows[snapshot.OwnerID] = *snapshot
	return nil
}

func (a *approved) DeleteByOwner(_ context.Context, ownerID string) error {
	if err := a.v.check(OpApprovedReplace); err != nil {
		return err
	}
	delete(a.rows, ownerID)
	return nil
}

func (a *approved) CountActive(_ context.Context) (int64, error) {
	var n int64
	for ownerID := range a.rows {
		if acc, ok := a.v.st.accounts[ownerID]; ok && acc.ApprovalStatus.IsActive() {
			n++
		}
	}
	return n, nil
}

type rejections struct{ v *view }

func (r *rejections) Append(_ context.Context, entry *models.RejectedProfileUpdate) error {
	if err := r.v.check(OpRejectionAppend); err != nil {
		return err
	}
	stamp(&entry.CreatedAt, nil)
	r.v.st.rejections = append(r.v.st.rejections, *entry)
	return nil
}

type blockedComments struct{ v *view }

func (b *blockedComments) Append(_ context.Context, entry *models.BlockedMerchantComment) error {
	if err := b.v.check(OpBlockedAppend); err != nil {
		return err
	}
	stamp(&entry.CreatedAt, nil)
	b.v.st.blocked = append(b.v.st.blocked, *entry)
	return nil
}

type searchIndex struct {
	store   *Store
	mu      sync.RWMutex
	entries map[string]models.SearchIndexEntry
}

func (s *searchIndex) FindByUserID(_ context.Context, userID string) (*models.SearchIndexEntry, error) {
	if err := s.store.fail(OpSearchIndexFind); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &entry, nil
}

func (s *searchIndex) Save(_ context.Context, entry *models.SearchIndexEntry) error {
	if err := s.store.fail(OpSearchIndexSave); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.UserID] = *entry
	return nil
}

func (s *searchIndex) Search(_ context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.SearchIndexEntry], error) {
	s.mu.RLock()
	var rows []models.SearchIndexEntry
	for _, e := range s.entries {
		if e.UserRole != role {
			continue
		}
		if q.SearchTerm != "" && !strings.Contains(e.BusinessName, q.SearchTerm) && !strings.Contains(e.FullName, q.SearchTerm) {
			continue
		}
		rows = append(rows, e)
	}
	s.mu.RUnlock()
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FullName != rows[j].FullName {
			return rows[i].FullName < rows[j].FullName
		}
		return rows[i].UserID < rows[j].UserID
	})
	return page(rows, q), nil
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil && updated.IsZero() {
		*updated = now
	}
}

func before(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.Before(b)
	}
	return idA < idB
}

func page[T any](rows []T, q repositories.PageQuery) repositories.Page[T] {
	p := repositories.Page[T]{Total: int64(len(rows)), Items: []T{}}
	start := q.Offset()
	if start >= len(rows) {
		return p
	}
	end := start + q.Size
	if end > len(rows) {
		end = len(rows)
	}
	p.Items = append(p.Items, rows[start:end]...)
	return p
}

func sortedValues[T any](m map[string]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
