// Package searchindex maintains the merchant/bank listing projection.
//
// Entries are derived from accounts and business rows after their primary
// write has committed. Update failures are logged and never returned; the
// projection is a read accelerator, not a source of truth.
package searchindex

import (
	"context"
	"errors"
	"log"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
)

type Projector struct {
	store repositories.SearchIndexStore
}

func NewProjector(store repositories.SearchIndexStore) *Projector {
	if store == nil {
		panic("search index store is required")
	}
	return &Projector{store: store}
}

// UpsertOnAccountCreate writes the initial entry for a merchant or bank account.
func (p *Projector) UpsertOnAccountCreate(ctx context.Context, account *models.Account) {
	if !account.Role.IsBusinessRole() {
		return
	}
	entry := &models.SearchIndexEntry{UserID: account.ID}
	applyAccount(entry, account)
	if err := p.store.Save(ctx, entry); err != nil {
		log.Printf("Search index: failed to create entry for account %s: %v", account.ID, err)
	}
}

// UpdateAccountFields refreshes identity fields. A missing entry is recreated.
func (p *Projector) UpdateAccountFields(ctx context.Context, account *models.Account) {
	if !account.Role.IsBusinessRole() {
		return
	}
	entry, err := p.store.FindByUserID(ctx, account.ID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		entry = &models.SearchIndexEntry{UserID: account.ID}
	case err != nil:
		log.Printf("Search index: failed to load entry for account %s: %v", account.ID, err)
		return
	}
	applyAccount(entry, account)
	if err := p.store.Save(ctx, entry); err != nil {
		log.Printf("Search index: failed to update account fields for %s: %v", account.ID, err)
	}
}

// UpdateBusinessSnapshot copies the latest business row into the owner's
// entry. Owners without an entry are skipped.
func (p *Projector) UpdateBusinessSnapshot(ctx context.Context, ownerID string, business *models.Business) {
	entry, err := p.store.FindByUserID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Search index: failed to load entry for owner %s: %v", ownerID, err)
		}
		return
	}
	entry.BusinessID = business.ID
	entry.BusinessName = business.BusinessName
	entry.BusinessApprovalStatus = business.ApprovalStatus
	entry.BusinessImageURL = business.ImageURL
	if err := p.store.Save(ctx, entry); err != nil {
		log.Printf("Search index: failed to update business %s for owner %s: %v", business.ID, ownerID, err)
	}
}

// Search lists entries of role whose business or full name contains the
// query term. The term "ALL" disables filtering.
func (p *Projector) Search(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.SearchIndexEntry], error) {
	if q.SearchTerm == repositories.AllSearchTerm {
		q.SearchTerm = ""
	}
	if err := q.Validate(); err != nil {
		return repositories.Page[models.SearchIndexEntry]{}, apperr.ErrValidation.Withf("%v", err)
	}
	page, err := p.store.Search(ctx, role, q)
	if err != nil {
		return page, apperr.Persistence("search index listing", err, string(role))
	}
	return page, nil
}

func applyAccount(entry *models.SearchIndexEntry, account *models.Account) {
	entry.FullName = account.FullName
	entry.ImageURL = account.ImageURL
	entry.UserRole = account.Role
	entry.MerchantApprovalStatus = account.ApprovalStatus
	entry.JoinedOn = account.CreatedAt
}
