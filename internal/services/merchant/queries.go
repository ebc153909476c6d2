package merchant

import (
	"context"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
)

func normalizeQuery(q repositories.PageQuery) (repositories.PageQuery, error) {
	if q.SearchTerm == repositories.AllSearchTerm {
		q.SearchTerm = ""
	}
	if err := q.Validate(); err != nil {
		return q, apperr.ErrValidation.Withf("%v", err)
	}
	return q, nil
}

func businessKind(role models.RoleType) (repositories.ProfileKind, error) {
	kind, err := repositories.BusinessKindFor(role)
	if err != nil {
		return 0, apperr.ErrInvalidUser.Withf("role %s has no business profiles", role)
	}
	return kind, nil
}

// GetApprovedBusiness returns the owner's approved snapshot, reading
// through the snapshot cache.
func (s *Service) GetApprovedBusiness(ctx context.Context, ownerID string, role models.RoleType) (*models.ApprovedBusiness, error) {
	kind, err := businessKind(role)
	if err != nil {
		return nil, err
	}
	if snapshot, ok := s.cache.Get(ctx, role, ownerID); ok {
		return snapshot, nil
	}

	snapshots, err := s.gateway.Reader().ApprovedSnapshots(kind)
	if err != nil {
		return nil, persistence("load approved business", err, ownerID)
	}
	snapshot, err := snapshots.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistence("load approved business", notFoundAs(err, apperr.ErrBusinessProfileNotFound, "load approved business"), ownerID)
	}
	s.cache.Fill(ctx, role, snapshot)
	return snapshot, nil
}

// GetLatestApprovedBusiness prefers the approved snapshot and falls back to
// the most recently updated business row when the owner was never approved.
func (s *Service) GetLatestApprovedBusiness(ctx context.Context, ownerID string, role models.RoleType) (*models.Business, error) {
	snapshot, err := s.GetApprovedBusiness(ctx, ownerID, role)
	if err == nil {
		return snapshot.ToBusiness(), nil
	}
	if !apperr.Is(err, apperr.ErrBusinessProfileNotFound) {
		return nil, err
	}

	kind, _ := businessKind(role)
	businesses, err := s.gateway.Reader().Businesses(kind)
	if err != nil {
		return nil, persistence("load latest business", err, ownerID)
	}
	latest, err := businesses.FindLatestByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistence("load latest business", notFoundAs(err, apperr.ErrBusinessProfileNotFound, "load latest business"), ownerID)
	}
	return latest, nil
}

// ValidateApprovedOwner fails with InvalidUser unless the owner has an
// approved business.
func (s *Service) ValidateApprovedOwner(ctx context.Context, ownerID string, role models.RoleType) error {
	_, err := s.GetApprovedBusiness(ctx, ownerID, role)
	if apperr.Is(err, apperr.ErrBusinessProfileNotFound) {
		return apperr.ErrInvalidUser.Withf("no approved business for %s", ownerID)
	}
	return err
}

// GetOwnerSummary loads a merchant or bank account of role together with its
// latest approved business, falling back to the latest submission.
func (s *Service) GetOwnerSummary(ctx context.Context, ownerID string, role models.RoleType) (*OwnerSummary, error) {
	if _, err := businessKind(role); err != nil {
		return nil, err
	}
	account, err := s.gateway.Reader().Accounts().FindByID(ctx, ownerID)
	if err != nil {
		return nil, persistence("load account", notFoundAs(err, apperr.ErrInvalidUser, "load account"), ownerID)
	}
	if account.Role != role {
		return nil, apperr.ErrInvalidUser.Withf("account %s is not a %s", ownerID, role)
	}

	summary := &OwnerSummary{Account: account}
	business, err := s.GetLatestApprovedBusiness(ctx, ownerID, role)
	switch {
	case err == nil:
		summary.Business = business
		summary.Active = business.ApprovalStatus == models.StatusApproved && account.ApprovalStatus.IsActive()
	case !apperr.Is(err, apperr.ErrBusinessProfileNotFound):
		return nil, err
	}
	return summary, nil
}

func (s *Service) LoginProfileStatus(ctx context.Context, ownerID string, role models.RoleType) (LoginProfile, error) {
	business, err := s.GetLatestApprovedBusiness(ctx, ownerID, role)
	if err != nil {
		if apperr.Is(err, apperr.ErrBusinessProfileNotFound) {
			return LoginProfile{Updated: false}, nil
		}
		return LoginProfile{}, err
	}
	return LoginProfile{Updated: true, ApprovalStatus: business.ApprovalStatus}, nil
}

// GetBulkApproved returns the approved snapshots of the listed owners.
// Owners without one are skipped.
func (s *Service) GetBulkApproved(ctx context.Context, ownerIDs []string, role models.RoleType) ([]models.ApprovedBusiness, error) {
	kind, err := businessKind(role)
	if err != nil {
		return nil, err
	}
	if len(ownerIDs) == 0 {
		return []models.ApprovedBusiness{}, nil
	}
	snapshots, err := s.gateway.Reader().ApprovedSnapshots(kind)
	if err != nil {
		return nil, persistence("load approved businesses", err)
	}
	found, err := snapshots.FindByOwners(ctx, ownerIDs)
	if err != nil {
		return nil, persistence("load approved businesses", err, ownerIDs...)
	}
	return found, nil
}

func (s *Service) GetBusinessByID(ctx context.Context, businessID string, role models.RoleType) (*models.Business, error) {
	kind, err := businessKind(role)
	if err != nil {
		return nil, err
	}
	return s.findBusiness(ctx, s.gateway.Reader(), kind, businessID)
}

func (s *Service) GetContactByID(ctx context.Context, contactID string) (*models.Contact, error) {
	return s.findContact(ctx, s.gateway.Reader(), contactID)
}

// GetLatestContact returns the owner's most recently updated contact.
func (s *Service) GetLatestContact(ctx context.Context, ownerID string) (*models.Contact, error) {
	contact, err := s.gateway.Reader().Contacts().FindLatestByOwner(ctx, ownerID)
	if err != nil {
		return nil, persistence("load latest contact", notFoundAs(err, apperr.ErrContactProfileNotFound, "load latest contact"), ownerID)
	}
	return contact, nil
}

// GetPendingBusinesses lists pending business profiles, least recently
// updated first.
func (s *Service) GetPendingBusinesses(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.Business], error) {
	kind, err := repositories.BusinessKindFor(role)
	if err != nil {
		return repositories.Page[models.Business]{}, apperr.ErrValidation.Withf("role %s has no business profiles", role)
	}
	q, err = normalizeQuery(q)
	if err != nil {
		return repositories.Page[models.Business]{}, err
	}
	businesses, err := s.gateway.Reader().Businesses(kind)
	if err != nil {
		return repositories.Page[models.Business]{}, persistence("list pending businesses", err)
	}
	page, err := businesses.ListPending(ctx, q)
	if err != nil {
		return page, persistence("list pending businesses", err, string(role))
	}
	return page, nil
}

func (s *Service) GetPendingContacts(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.Contact], error) {
	if !role.IsBusinessRole() {
		return repositories.Page[models.Contact]{}, apperr.ErrValidation.Withf("role %s has no contact profiles", role)
	}
	q, err := normalizeQuery(q)
	if err != nil {
		return repositories.Page[models.Contact]{}, err
	}
	page, err := s.gateway.Reader().Contacts().ListPending(ctx, role, q)
	if err != nil {
		return page, persistence("list pending contacts", err, string(role))
	}
	return page, nil
}

// PendingContactsWithBusiness lists pending contacts, each with the latest
// business of its owner. Contacts whose owner has no business yet are left
// out; Total still counts the underlying contact page.
func (s *Service) PendingContactsWithBusiness(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[PendingContact], error) {
	contacts, err := s.GetPendingContacts(ctx, role, q)
	if err != nil {
		return repositories.Page[PendingContact]{}, err
	}

	out := repositories.Page[PendingContact]{
		Items: make([]PendingContact, 0, len(contacts.Items)),
		Total: contacts.Total,
	}
	for _, contact := range contacts.Items {
		business, err := s.GetLatestApprovedBusiness(ctx, contact.OwnerID, role)
		if err != nil {
			if apperr.Is(err, apperr.ErrBusinessProfileNotFound) {
				continue
			}
			return repositories.Page[PendingContact]{}, err
		}
		out.Items = append(out.Items, PendingContact{Contact: contact, Business: business})
	}
	return out, nil
}

// Search lists index entries of role matching the business or owner name.
func (s *Service) Search(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.SearchIndexEntry], error) {
	if !role.IsBusinessRole() {
		return repositories.Page[models.SearchIndexEntry]{}, apperr.ErrValidation.Withf("role %s is not listed", role)
	}
	return s.projector.Search(ctx, role, q)
}
