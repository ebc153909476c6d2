package merchant

import (
	"context"
	"errors"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/approval"
	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/events"
)

// SubmitBusiness creates the owner's pending business profile, or edits it
// in place when one is already pending. A previously approved or rejected
// row is left untouched and a new pending row is created next to it.
func (s *Service) SubmitBusiness(ctx context.Context, ownerID string, role models.RoleType, in BusinessInput) (*models.Business, error) {
	kind, err := repositories.BusinessKindFor(role)
	if err != nil {
		return nil, apperr.ErrInvalidUser.Withf("role %s cannot own a business profile", role)
	}

	unlock := s.locker.Lock(ownerKey(ownerID))
	defer unlock()

	var saved *models.Business
	err = s.inTx(ctx, "submit business", []string{ownerID}, func(st repositories.Stores) error {
		if _, err := lockOwner(ctx, st, ownerID, role); err != nil {
			return err
		}
		businesses, err := st.Businesses(kind)
		if err != nil {
			return err
		}

		now := s.now()
		business, err := businesses.FindPendingByOwner(ctx, ownerID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			business = &models.Business{
				ID:             models.NewID(models.PrefixBusiness),
				OwnerID:        ownerID,
				ApprovalStatus: models.StatusPending,
				CreatedAt:      now,
			}
		case err != nil:
			return err
		}
		business.Apply(in.details())
		business.UpdatedAt = now

		if err := businesses.Save(ctx, business); err != nil {
			return err
		}
		saved = business
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.projector.UpdateBusinessSnapshot(ctx, ownerID, saved)
	return saved, nil
}

// SubmitContact is SubmitBusiness for contact profiles. Contacts are not
// part of the search index.
func (s *Service) SubmitContact(ctx context.Context, ownerID string, role models.RoleType, in ContactInput) (*models.Contact, error) {
	if !role.IsBusinessRole() {
		return nil, apperr.ErrInvalidUser.Withf("role %s cannot own a contact profile", role)
	}

	unlock := s.locker.Lock(ownerKey(ownerID))
	defer unlock()

	var saved *models.Contact
	err := s.inTx(ctx, "submit contact", []string{ownerID}, func(st repositories.Stores) error {
		if _, err := lockOwner(ctx, st, ownerID, role); err != nil {
			return err
		}

		now := s.now()
		contact, err := st.Contacts().FindPendingByOwner(ctx, ownerID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			contact = &models.Contact{
				ID:             models.NewID(models.PrefixContact),
				OwnerID:        ownerID,
				RoleType:       role,
				ApprovalStatus: models.StatusPending,
				CreatedAt:      now,
			}
		case err != nil:
			return err
		}
		contact.Apply(in.details())
		contact.UpdatedAt = now

		if err := st.Contacts().Save(ctx, contact); err != nil {
			return err
		}
		saved = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DecideBusinessApproval applies an APPROVE or REJECT to a business profile.
func (s *Service) DecideBusinessApproval(ctx context.Context, d Decision) (*models.Business, error) {
	action, err := approval.ParseAction(d.Action)
	if err != nil {
		return nil, err
	}
	kind, err := repositories.BusinessKindFor(d.Role)
	if err != nil {
		return nil, apperr.ErrValidation.Withf("role %s has no business profiles", d.Role)
	}

	current, err := s.findBusiness(ctx, s.gateway.Reader(), kind, d.ReferenceID)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(ownerKey(current.OwnerID))
	defer unlock()

	var (
		decided  *models.Business
		approved *models.ApprovedBusiness
		owner    *models.Account
		previous models.ApprovalStatus
	)
	err = s.inTx(ctx, "decide business approval", []string{d.ReferenceID}, func(st repositories.Stores) error {
		business, err := s.findBusiness(ctx, st, kind, d.ReferenceID)
		if err != nil {
			return err
		}
		account, err := st.Accounts().FindByIDForUpdate(ctx, business.OwnerID)
		if err != nil {
			return notFoundAs(err, apperr.ErrInvalidUser, "load business owner")
		}
		next, err := approval.Decide(approval.SubjectBusiness, business.ApprovalStatus, action)
		if err != nil {
			return err
		}

		now := s.now()
		if outcome, ok := repositories.OutcomeFor(next); ok {
			switch outcome {
			case repositories.OutcomeApproved:
				snapshots, err := st.ApprovedSnapshots(kind)
				if err != nil {
					return err
				}
				snapshot := models.NewApprovedBusiness(business, now)
				if err := snapshots.Replace(ctx, snapshot); err != nil {
					return err
				}
				approved = snapshot
			case repositories.OutcomeRejected:
				if err := st.Rejections().Append(ctx, &models.RejectedProfileUpdate{
					ID:          models.NewID(models.PrefixRejectedUpdate),
					ReferenceID: business.ID,
					RoleType:    d.Role,
					InfoType:    models.InfoBusiness,
					Comment:     d.Comment,
					ReviewerID:  d.ReviewerID,
					CreatedAt:   now,
				}); err != nil {
					return err
				}
			}
		}

		previous = business.ApprovalStatus
		business.ApprovalStatus = next
		business.UpdatedAt = now
		businesses, err := st.Businesses(kind)
		if err != nil {
			return err
		}
		if err := businesses.Save(ctx, business); err != nil {
			return err
		}
		decided, owner = business, account
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approved != nil {
		s.cache.Set(ctx, d.Role, approved)
	}
	s.projector.UpdateBusinessSnapshot(ctx, decided.OwnerID, decided)
	s.publish(ctx, events.ApprovalDecided{
		Subject:     approval.SubjectBusiness.String(),
		ReferenceID: decided.ID,
		OwnerID:     decided.OwnerID,
		Role:        d.Role,
		Action:      action,
		Previous:    previous,
		Outcome:     decided.ApprovalStatus,
		ReviewerID:  d.ReviewerID,
		DecidedAt:   decided.UpdatedAt,
	})
	s.notify(owner, decided.ApprovalStatus, d.TimeZone)
	return decided, nil
}

// DecideContactApproval applies an APPROVE or REJECT to a contact profile.
// The role recorded on a rejection is the contact's own role.
func (s *Service) DecideContactApproval(ctx context.Context, d Decision) (*models.Contact, error) {
	action, err := approval.ParseAction(d.Action)
	if err != nil {
		return nil, err
	}

	current, err := s.findContact(ctx, s.gateway.Reader(), d.ReferenceID)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(ownerKey(current.OwnerID))
	defer unlock()

	var (
		decided  *models.Contact
		owner    *models.Account
		previous models.ApprovalStatus
	)
	err = s.inTx(ctx, "decide contact approval", []string{d.ReferenceID}, func(st repositories.Stores) error {
		contact, err := s.findContact(ctx, st, d.ReferenceID)
		if err != nil {
			return err
		}
		account, err := st.Accounts().FindByIDForUpdate(ctx, contact.OwnerID)
		if err != nil {
			return notFoundAs(err, apperr.ErrInvalidUser, "load contact owner")
		}
		next, err := approval.Decide(approval.SubjectContact, contact.ApprovalStatus, action)
		if err != nil {
			return err
		}

		now := s.now()
		if next == models.StatusRejected {
			if err := st.Rejections().Append(ctx, &models.RejectedProfileUpdate{
				ID:          models.NewID(models.PrefixRejectedUpdate),
				ReferenceID: contact.ID,
				RoleType:    contact.RoleType,
				InfoType:    models.InfoContact,
				Comment:     d.Comment,
				ReviewerID:  d.ReviewerID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		previous = contact.ApprovalStatus
		contact.ApprovalStatus = next
		contact.UpdatedAt = now
		if err := st.Contacts().Save(ctx, contact); err != nil {
			return err
		}
		decided, owner = contact, account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ApprovalDecided{
		Subject:     approval.SubjectContact.String(),
		ReferenceID: decided.ID,
		OwnerID:     decided.OwnerID,
		Role:        decided.RoleType,
		Action:      action,
		Previous:    previous,
		Outcome:     decided.ApprovalStatus,
		ReviewerID:  d.ReviewerID,
		DecidedAt:   decided.UpdatedAt,
	})
	s.notify(owner, decided.ApprovalStatus, d.TimeZone)
	return decided, nil
}

func lockOwner(ctx context.Context, st repositories.Stores, ownerID string, role models.RoleType) (*models.Account, error) {
	account, err := st.Accounts().FindByIDForUpdate(ctx, ownerID)
	if err != nil {
		return nil, notFoundAs(err, apperr.ErrInvalidUser, "load owner")
	}
	if !account.Role.IsBusinessRole() || account.Role != role {
		return nil, apperr.ErrInvalidUser.Withf("account %s is not a %s", ownerID, role)
	}
	return account, nil
}

func (s *Service) findBusiness(ctx context.Context, st repositories.Stores, kind repositories.ProfileKind, id string) (*models.Business, error) {
	businesses, err := st.Businesses(kind)
	if err != nil {
		return nil, persistence("load business", err, id)
	}
	business, err := businesses.FindByID(ctx, id)
	if err != nil {
		return nil, persistence("load business", notFoundAs(err, apperr.ErrBusinessProfileNotFound, "load business"), id)
	}
	return business, nil
}

func (s *Service) findContact(ctx context.Context, st repositories.Stores, id string) (*models.Contact, error) {
	contact, err := st.Contacts().FindByID(ctx, id)
	if err != nil {
		return nil, persistence("load contact", notFoundAs(err, apperr.ErrContactProfileNotFound, "load contact"), id)
	}
	return contact, nil
}
