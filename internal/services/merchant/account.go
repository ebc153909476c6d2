package merchant

import (
	"context"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/approval"
	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/events"
)

// RegisterAccount creates an account. Merchant and bank accounts start
// PENDING and get a search index entry; every other role starts APPROVED.
func (s *Service) RegisterAccount(ctx context.Context, in AccountInput) (*models.Account, error) {
	role, ok := models.ParseRoleType(string(in.Role))
	if !ok {
		return nil, apperr.ErrValidation.Withf("unknown role %q", in.Role)
	}

	now := s.now()
	account := &models.Account{
		ID:             models.NewID(models.PrefixAccount),
		FullName:       in.FullName,
		Email:          in.Email,
		MobileNo:       in.MobileNo,
		ImageURL:       in.ImageURL,
		Role:           role,
		ApprovalStatus: models.StatusApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if role.IsBusinessRole() {
		account.ApprovalStatus = models.StatusPending
	}

	err := s.inTx(ctx, "register account", []string{account.ID}, func(st repositories.Stores) error {
		return st.Accounts().Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.projector.UpsertOnAccountCreate(ctx, account)
	return account, nil
}

// DecideAccountApproval moves a merchant or bank account through the full
// transition table. Blocking records the reviewer's comment.
func (s *Service) DecideAccountApproval(ctx context.Context, d AccountDecision) (*models.Account, error) {
	action, err := approval.ParseAction(d.Action)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(ownerKey(d.AccountID))
	defer unlock()

	var (
		decided  *models.Account
		previous models.ApprovalStatus
	)
	err = s.inTx(ctx, "decide account approval", []string{d.AccountID}, func(st repositories.Stores) error {
		account, err := st.Accounts().FindByIDForUpdate(ctx, d.AccountID)
		if err != nil {
			return notFoundAs(err, apperr.ErrInvalidUser, "load account")
		}
		if !account.Role.IsBusinessRole() {
			return apperr.ErrInvalidUser.Withf("account %s is not a merchant or bank", d.AccountID)
		}
		next, err := approval.Decide(approval.SubjectAccount, account.ApprovalStatus, action)
		if err != nil {
			return err
		}

		now := s.now()
		if outcome, ok := repositories.OutcomeFor(next); ok && outcome == repositories.OutcomeBlocked {
			if err := st.BlockedComments().Append(ctx, &models.BlockedMerchantComment{
				ID:         models.NewID(models.PrefixBlockedComment),
				AccountID:  account.ID,
				Comment:    d.Comment,
				ReviewerID: d.ReviewerID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}

		previous = account.ApprovalStatus
		account.ApprovalStatus = next
		account.UpdatedAt = now
		if err := st.Accounts().Save(ctx, account); err != nil {
			return err
		}
		decided = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.projector.UpdateAccountFields(ctx, decided)
	s.publish(ctx, events.ApprovalDecided{
		Subject:     approval.SubjectAccount.String(),
		ReferenceID: decided.ID,
		OwnerID:     decided.ID,
		Role:        decided.Role,
		Action:      action,
		Previous:    previous,
		Outcome:     decided.ApprovalStatus,
		ReviewerID:  d.ReviewerID,
		DecidedAt:   decided.UpdatedAt,
	})
	s.notify(decided, decided.ApprovalStatus, d.TimeZone)
	return decided, nil
}

// GetPendingAccounts lists pending accounts of role, oldest first.
func (s *Service) GetPendingAccounts(ctx context.Context, role models.RoleType, q repositories.PageQuery) (repositories.Page[models.Account], error) {
	if !role.IsBusinessRole() {
		return repositories.Page[models.Account]{}, apperr.ErrValidation.Withf("role %s has no approval workflow", role)
	}
	q, err := normalizeQuery(q)
	if err != nil {
		return repositories.Page[models.Account]{}, err
	}
	page, err := s.gateway.Reader().Accounts().ListPending(ctx, role, q)
	if err != nil {
		return page, persistence("list pending accounts", err, string(role))
	}
	return page, nil
}

// IsActive reports whether the owner may operate publicly: an APPROVED or
// UNBLOCKED merchant or bank account with an approved business.
func (s *Service) IsActive(ctx context.Context, ownerID string) (bool, error) {
	account, err := s.gateway.Reader().Accounts().FindByID(ctx, ownerID)
	if err != nil {
		if apperr.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, persistence("load account", err, ownerID)
	}
	if !account.Role.IsBusinessRole() || !account.ApprovalStatus.IsActive() {
		return false, nil
	}
	if _, err := s.GetApprovedBusiness(ctx, ownerID, account.Role); err != nil {
		if apperr.Is(err, apperr.ErrBusinessProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ActiveMerchantCount counts merchants that are active and hold an approved
// business.
func (s *Service) ActiveMerchantCount(ctx context.Context) (int64, error) {
	return s.activeCount(ctx, repositories.KindBusiness, "count active merchants")
}

// ActiveBankCount counts banks that are active and hold an approved business.
func (s *Service) ActiveBankCount(ctx context.Context) (int64, error) {
	return s.activeCount(ctx, repositories.KindBankBusiness, "count active banks")
}

func (s *Service) activeCount(ctx context.Context, kind repositories.ProfileKind, op string) (int64, error) {
	snapshots, err := s.gateway.Reader().ApprovedSnapshots(kind)
	if err != nil {
		return 0, persistence(op, err)
	}
	count, err := snapshots.CountActive(ctx)
	if err != nil {
		return 0, persistence(op, err)
	}
	return count, nil
}
