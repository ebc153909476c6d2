package merchant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	apperr "github.com/Rizan-Swivel/prod-qpon-auth-service/internal/errors"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/memstore"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/events"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/notification"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/searchindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sentNotification struct {
	Recipient notification.Recipient
	Outcome   models.ApprovalStatus
	TimeZone  string
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (d *recordingDispatcher) SendApprovalOutcome(_ context.Context, r notification.Recipient, outcome models.ApprovalStatus, timeZone string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{Recipient: r, Outcome: outcome, TimeZone: timeZone})
	return nil
}

func (d *recordingDispatcher) all() []sentNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]sentNotification(nil), d.sent...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ApprovalDecided
}

func (p *recordingPublisher) PublishApprovalDecided(_ context.Context, evt events.ApprovalDecided) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishApprovalDecided(ctx context.Context, evt events.ApprovalDecided) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// stepClock advances one second per call so rows get distinct timestamps.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	store      *memstore.Store
	svc        *Service
	dispatcher *recordingDispatcher
	publisher  *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	f := &fixture{
		store:      store,
		dispatcher: &recordingDispatcher{},
		publisher:  &recordingPublisher{},
	}
	clock := &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	f.svc = NewService(store, searchindex.NewProjector(store.SearchIndex()), Options{
		Dispatcher: f.dispatcher,
		Publisher:  f.publisher,
		Now:        clock.Now,
	})
	return f
}

func (f *fixture) register(t *testing.T, name string, role models.RoleType) *models.Account {
	t.Helper()
	acc, err := f.svc.RegisterAccount(context.Background(), AccountInput{
		FullName: name,
		Email:    "owner@example.com",
		MobileNo: "+94771234567",
		Role:     role,
	})
	require.NoError(t, err)
	return acc
}

// approvedOwner registers an owner and approves the account.
func (f *fixture) approvedOwner(t *testing.T, name string, role models.RoleType) *models.Account {
	t.Helper()
	acc := f.register(t, name, role)
	acc, err := f.svc.DecideAccountApproval(context.Background(), AccountDecision{AccountID: acc.ID, Action: "APPROVE"})
	require.NoError(t, err)
	f.svc.Wait()
	f.dispatcher.mu.Lock()
	f.dispatcher.sent = nil
	f.dispatcher.mu.Unlock()
	return acc
}

func singer() BusinessInput {
	return BusinessInput{
		BusinessName: "Singer",
		OwnerName:    "Nimal Perera",
		MobileNo:     "+94771234567",
		Email:        "singer@example.com",
		Address:      "Colombo 03",
	}
}

func TestRegisterAccount(t *testing.T) {
	tests := []struct {
		role       models.RoleType
		wantStatus models.ApprovalStatus
		indexed    bool
	}{
		{models.RoleMerchant, models.StatusPending, true},
		{models.RoleBank, models.StatusPending, true},
		{models.RoleUser, models.StatusApproved, false},
		{models.RoleAdmin, models.StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			f := newFixture(t)
			acc := f.register(t, "Owner", tt.role)

			assert.Contains(t, acc.ID, models.PrefixAccount)
			assert.Equal(t, tt.wantStatus, acc.ApprovalStatus)

			_, err := f.store.SearchIndex().FindByUserID(context.Background(), acc.ID)
			if tt.indexed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, repositories.ErrNotFound)
			}
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RegisterAccount(context.Background(), AccountInput{FullName: "x", Role: "GUEST"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestApproveBusiness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, submitted.ApprovalStatus)
	assert.Contains(t, submitted.ID, models.PrefixBusiness)

	decided, err := f.svc.DecideBusinessApproval(ctx, Decision{
		ReferenceID: submitted.ID,
		Role:        models.RoleMerchant,
		Action:      "APPROVE",
		ReviewerID:  "uid-admin",
	})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, models.StatusApproved, decided.ApprovalStatus)

	approved := f.store.AllApproved(repositories.KindBusiness)
	require.Len(t, approved, 1)
	assert.Equal(t, "Singer", approved[0].BusinessName)
	assert.Equal(t, submitted.ID, approved[0].BusinessID)
	assert.Empty(t, f.store.AllApproved(repositories.KindBankBusiness))

	sent := f.dispatcher.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.StatusApproved, sent[0].Outcome)
	assert.Equal(t, owner.ID, sent[0].Recipient.AccountID)
	assert.Equal(t, notification.DefaultTimeZone, sent[0].TimeZone)

	entry, err := f.store.SearchIndex().FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Singer", entry.BusinessName)
	assert.Equal(t, models.StatusApproved, entry.BusinessApprovalStatus)
}

func TestRejectBusiness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	decided, err := f.svc.DecideBusinessApproval(ctx, Decision{
		ReferenceID: submitted.ID,
		Role:        models.RoleMerchant,
		Action:      "REJECT",
		Comment:     "registration number missing",
		ReviewerID:  "uid-admin",
		TimeZone:    "UTC",
	})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, models.StatusRejected, decided.ApprovalStatus)
	assert.Empty(t, f.store.AllApproved(repositories.KindBusiness))

	rejections := f.store.AllRejections()
	require.Len(t, rejections, 1)
	assert.Equal(t, submitted.ID, rejections[0].ReferenceID)
	assert.Equal(t, models.InfoBusiness, rejections[0].InfoType)
	assert.Equal(t, models.RoleMerchant, rejections[0].RoleType)
	assert.Equal(t, "registration number missing", rejections[0].Comment)

	sent := f.dispatcher.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.StatusRejected, sent[0].Outcome)
	assert.Equal(t, "UTC", sent[0].TimeZone)
}

func TestBlockAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	blocked, err := f.svc.DecideAccountApproval(ctx, AccountDecision{
		AccountID:  owner.ID,
		Action:     "BLOCK",
		Comment:    "chargebacks",
		ReviewerID: "uid-admin",
	})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, models.StatusBlocked, blocked.ApprovalStatus)
	comments := f.store.AllBlockedComments()
	require.Len(t, comments, 1)
	assert.Equal(t, owner.ID, comments[0].AccountID)
	assert.Equal(t, "chargebacks", comments[0].Comment)

	sent := f.dispatcher.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.StatusBlocked, sent[0].Outcome)

	_, err = f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: owner.ID, Action: "BLOCK"})
	assert.ErrorIs(t, err, apperr.ErrInvalidAction)
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
	assert.Len(t, f.store.AllBlockedComments(), 1)

	unblocked, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: owner.ID, Action: "UNBLOCK"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnblocked, unblocked.ApprovalStatus)

	f.svc.Wait()

	entry, err := f.store.SearchIndex().FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnblocked, entry.MerchantApprovalStatus)
}

func TestDecideBusiness_UnknownReference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.approvedOwner(t, "Nimal", models.RoleMerchant)

	_, err := f.svc.DecideBusinessApproval(ctx, Decision{
		ReferenceID: "bisid-missing",
		Role:        models.RoleMerchant,
		Action:      "APPROVE",
	})
	f.svc.Wait()

	assert.ErrorIs(t, err, apperr.ErrBusinessProfileNotFound)
	assert.Empty(t, f.store.AllBusinesses(repositories.KindBusiness))
	assert.Empty(t, f.store.AllApproved(repositories.KindBusiness))
	assert.Empty(t, f.store.AllRejections())
	assert.Empty(t, f.dispatcher.all())
	assert.Len(t, f.publisher.events, 1)
}

func TestDecideBusiness_MalformedAction(t *testing.T) {
	f := newFixture(t)

	for _, token := range []string{"approve", "DELETE", ""} {
		t.Run(fmt.Sprintf("token %q", token), func(t *testing.T) {
			_, err := f.svc.DecideBusinessApproval(context.Background(), Decision{
				ReferenceID: "bisid-1",
				Role:        models.RoleMerchant,
				Action:      token,
			})
			assert.ErrorIs(t, err, apperr.ErrMalformedAction)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestDecideBusiness_IllegalTransitionLeavesStoresUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)
	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)
	f.svc.Wait()

	tests := []struct {
		name   string
		action string
	}{
		{"approve twice", "APPROVE"},
		{"reject approved", "REJECT"},
		{"block profile", "BLOCK"},
		{"unblock profile", "UNBLOCK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: tt.action})
			assert.ErrorIs(t, err, apperr.ErrInvalidAction)
			assert.Equal(t, apperr.KindState, apperr.KindOf(err))

			rows := f.store.AllBusinesses(repositories.KindBusiness)
			require.Len(t, rows, 1)
			assert.Equal(t, models.StatusApproved, rows[0].ApprovalStatus)
			assert.Len(t, f.store.AllApproved(repositories.KindBusiness), 1)
			assert.Empty(t, f.store.AllRejections())
		})
	}
	f.svc.Wait()
	assert.Len(t, f.dispatcher.all(), 1)
}

func TestDecideBusiness_SnapshotFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)
	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	f.store.FailOn(memstore.OpApprovedReplace, errors.New("disk full"))
	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	f.svc.Wait()

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrPersistenceFailure)
	assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	assert.NotContains(t, err.Error(), "Singer")

	rows := f.store.AllBusinesses(repositories.KindBusiness)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusPending, rows[0].ApprovalStatus)
	assert.Empty(t, f.store.AllApproved(repositories.KindBusiness))
	assert.Empty(t, f.dispatcher.all())

	f.store.FailOn(memstore.OpApprovedReplace, nil)
	decided, err := f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.ApprovalStatus)
	f.svc.Wait()
}

func TestDecideBusiness_RejectionLogFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)
	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	f.store.FailOn(memstore.OpRejectionAppend, errors.New("constraint violated"))
	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "REJECT"})

	assert.ErrorIs(t, err, apperr.ErrPersistenceFailure)
	rows := f.store.AllBusinesses(repositories.KindBusiness)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusPending, rows[0].ApprovalStatus)
}

func TestSubmitBusiness_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	first, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	edited := singer()
	edited.BusinessName = "Singer Mega"
	second, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, edited)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	rows := f.store.AllBusinesses(repositories.KindBusiness)
	require.Len(t, rows, 1)
	assert.Equal(t, "Singer Mega", rows[0].BusinessName)
	assert.Equal(t, models.StatusPending, rows[0].ApprovalStatus)
}

func TestSubmitBusiness_ResubmitAfterDecision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	first, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: first.ID, Role: models.RoleMerchant, Action: "REJECT"})
	require.NoError(t, err)

	second, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	f.svc.Wait()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.StatusPending, second.ApprovalStatus)
	assert.Len(t, f.store.AllBusinesses(repositories.KindBusiness), 2)
}

func TestSubmitBusiness_ConcurrentSubmitsKeepOnePendingRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := singer()
			in.BusinessName = fmt.Sprintf("Singer %d", i)
			_, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, in)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rows := f.store.AllBusinesses(repositories.KindBusiness)
	assert.Len(t, rows, 1)
}

func TestSubmitBusiness_InvalidOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.register(t, "Nimal", models.RoleMerchant)
	user := f.register(t, "Kamal", models.RoleUser)

	tests := []struct {
		name    string
		ownerID string
		role    models.RoleType
	}{
		{"missing account", "uid-missing", models.RoleMerchant},
		{"role mismatch", owner.ID, models.RoleBank},
		{"non-business account", user.ID, models.RoleMerchant},
		{"non-business role", user.ID, models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitBusiness(ctx, tt.ownerID, tt.role, singer())
			assert.ErrorIs(t, err, apperr.ErrInvalidUser)

			_, err = f.svc.SubmitContact(ctx, tt.ownerID, tt.role, ContactInput{Name: "Sunil"})
			assert.ErrorIs(t, err, apperr.ErrInvalidUser)
		})
	}
	assert.Empty(t, f.store.AllBusinesses(repositories.KindBusiness))
	assert.Empty(t, f.store.AllBusinesses(repositories.KindBankBusiness))
	assert.Empty(t, f.store.AllContacts())
}

func TestBankBusinessUsesBankTables(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bank := f.approvedOwner(t, "Bank of Ceylon", models.RoleBank)

	in := singer()
	in.BusinessName = "BOC Card Centre"
	submitted, err := f.svc.SubmitBusiness(ctx, bank.ID, models.RoleBank, in)
	require.NoError(t, err)

	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	assert.ErrorIs(t, err, apperr.ErrBusinessProfileNotFound)

	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleBank, Action: "APPROVE"})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Empty(t, f.store.AllBusinesses(repositories.KindBusiness))
	assert.Len(t, f.store.AllBusinesses(repositories.KindBankBusiness), 1)
	require.Len(t, f.store.AllApproved(repositories.KindBankBusiness), 1)
	assert.Empty(t, f.store.AllApproved(repositories.KindBusiness))

	active, err := f.svc.IsActive(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestContactApproval(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Bank of Ceylon", models.RoleBank)

	first, err := f.svc.SubmitContact(ctx, owner.ID, models.RoleBank, ContactInput{Name: "Sunil", Designation: "Manager"})
	require.NoError(t, err)
	again, err := f.svc.SubmitContact(ctx, owner.ID, models.RoleBank, ContactInput{Name: "Sunil Silva", Designation: "Manager"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Contains(t, first.ID, models.PrefixContact)

	rejected, err := f.svc.DecideContactApproval(ctx, Decision{
		ReferenceID: first.ID,
		Role:        models.RoleMerchant,
		Action:      "REJECT",
		Comment:     "wrong designation",
	})
	require.NoError(t, err)
	f.svc.Wait()
	assert.Equal(t, models.StatusRejected, rejected.ApprovalStatus)

	rejections := f.store.AllRejections()
	require.Len(t, rejections, 1)
	assert.Equal(t, models.InfoContact, rejections[0].InfoType)
	assert.Equal(t, models.RoleBank, rejections[0].RoleType)

	sent := f.dispatcher.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.StatusRejected, sent[0].Outcome)

	_, err = f.svc.DecideContactApproval(ctx, Decision{ReferenceID: first.ID, Action: "APPROVE"})
	assert.ErrorIs(t, err, apperr.ErrInvalidAction)

	_, err = f.svc.DecideContactApproval(ctx, Decision{ReferenceID: "conid-missing", Action: "APPROVE"})
	assert.ErrorIs(t, err, apperr.ErrContactProfileNotFound)

	latest, err := f.svc.GetLatestContact(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, "Sunil Silva", latest.Name)
}

func TestAccountDecisions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actions    []string
		wantStatus models.ApprovalStatus
		wantErr    error
	}{
		{"approve pending", []string{"APPROVE"}, models.StatusApproved, nil},
		{"reject pending", []string{"REJECT"}, models.StatusRejected, nil},
		{"block approved", []string{"APPROVE", "BLOCK"}, models.StatusBlocked, nil},
		{"unblock blocked", []string{"APPROVE", "BLOCK", "UNBLOCK"}, models.StatusUnblocked, nil},
		{"block unblocked", []string{"APPROVE", "BLOCK", "UNBLOCK", "BLOCK"}, models.StatusBlocked, nil},
		{"block pending", []string{"BLOCK"}, models.StatusPending, apperr.ErrInvalidAction},
		{"unblock approved", []string{"APPROVE", "UNBLOCK"}, models.StatusApproved, apperr.ErrInvalidAction},
		{"approve rejected", []string{"REJECT", "APPROVE"}, models.StatusRejected, apperr.ErrInvalidAction},
		{"lowercase token", []string{"approve"}, models.StatusPending, apperr.ErrMalformedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			acc := f.register(t, "Nimal", models.RoleMerchant)

			var err error
			for _, action := range tt.actions {
				_, err = f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: acc.ID, Action: action})
			}
			f.svc.Wait()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			stored, err := f.store.Reader().Accounts().FindByID(ctx, acc.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.ApprovalStatus)
		})
	}

	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: "uid-missing", Action: "APPROVE"})
		assert.ErrorIs(t, err, apperr.ErrInvalidUser)
	})

	t.Run("non-business account", func(t *testing.T) {
		f := newFixture(t)
		user := f.register(t, "Kamal", models.RoleUser)
		_, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: user.ID, Action: "BLOCK"})
		assert.ErrorIs(t, err, apperr.ErrInvalidUser)
	})
}

func TestDecisionEventsArePublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)
	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: models.RoleMerchant, Action: "APPROVE", ReviewerID: "uid-admin"})
	require.NoError(t, err)
	f.svc.Wait()

	require.Len(t, f.publisher.events, 2)
	accountEvt, businessEvt := f.publisher.events[0], f.publisher.events[1]
	assert.Equal(t, "account", accountEvt.Subject)
	assert.Equal(t, models.StatusPending, accountEvt.Previous)
	assert.Equal(t, models.StatusApproved, accountEvt.Outcome)

	assert.Equal(t, "business", businessEvt.Subject)
	assert.Equal(t, submitted.ID, businessEvt.ReferenceID)
	assert.Equal(t, owner.ID, businessEvt.OwnerID)
	assert.Equal(t, models.ActionApprove, businessEvt.Action)
	assert.Equal(t, "uid-admin", businessEvt.ReviewerID)
}

func TestPublishFailureDoesNotFailDecision(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	pub := new(MockPublisher)
	pub.On("PublishApprovalDecided", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))
	dispatcher := &recordingDispatcher{}
	svc := NewService(store, searchindex.NewProjector(store.SearchIndex()), Options{Dispatcher: dispatcher, Publisher: pub})

	acc, err := svc.RegisterAccount(ctx, AccountInput{FullName: "Nimal", MobileNo: "+94771234567", Role: models.RoleMerchant})
	require.NoError(t, err)
	decided, err := svc.DecideAccountApproval(ctx, AccountDecision{AccountID: acc.ID, Action: "APPROVE"})
	svc.Wait()

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.ApprovalStatus)
	assert.Len(t, dispatcher.all(), 1)
	pub.AssertNumberOfCalls(t, "PublishApprovalDecided", 1)
}

func TestGetLatestApprovedBusiness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)

	_, err := f.svc.GetLatestApprovedBusiness(ctx, owner.ID, models.RoleMerchant)
	assert.ErrorIs(t, err, apperr.ErrBusinessProfileNotFound)
	profile, err := f.svc.LoginProfileStatus(ctx, owner.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.False(t, profile.Updated)

	first, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	latest, err := f.svc.GetLatestApprovedBusiness(ctx, owner.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, models.StatusPending, latest.ApprovalStatus)
	_, err = f.svc.GetApprovedBusiness(ctx, owner.ID, models.RoleMerchant)
	assert.ErrorIs(t, err, apperr.ErrBusinessProfileNotFound)
	assert.ErrorIs(t, f.svc.ValidateApprovedOwner(ctx, owner.ID, models.RoleMerchant), apperr.ErrInvalidUser)

	_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: first.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)

	edited := singer()
	edited.BusinessName = "Singer Mega"
	_, err = f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, edited)
	require.NoError(t, err)
	f.svc.Wait()

	latest, err = f.svc.GetLatestApprovedBusiness(ctx, owner.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
	assert.Equal(t, "Singer", latest.BusinessName)
	assert.Equal(t, models.StatusApproved, latest.ApprovalStatus)

	profile, err = f.svc.LoginProfileStatus(ctx, owner.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, LoginProfile{Updated: true, ApprovalStatus: models.StatusApproved}, profile)
	assert.NoError(t, f.svc.ValidateApprovedOwner(ctx, owner.ID, models.RoleMerchant))
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]models.ApprovedBusiness
	// beforeFill runs once, after a read has loaded its snapshot and before
	// that snapshot reaches the cache.
	beforeFill func()
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]models.ApprovedBusiness{}}
}

func (c *mapCache) Get(_ context.Context, role models.RoleType, ownerID string) (*models.ApprovedBusiness, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.entries[string(role)+ownerID]
	if !ok {
		return nil, false
	}
	return &snap, true
}

func (c *mapCache) Fill(_ context.Context, role models.RoleType, snapshot *models.ApprovedBusiness) {
	c.mu.Lock()
	hook := c.beforeFill
	c.beforeFill = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	key := string(role) + snapshot.OwnerID
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = *snapshot
	}
}

func (c *mapCache) Set(_ context.Context, role models.RoleType, snapshot *models.ApprovedBusiness) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[string(role)+snapshot.OwnerID] = *snapshot
}

func (c *mapCache) evict(role models.RoleType, ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, string(role)+ownerID)
}

func TestApprovalWritesSnapshotToCache(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	cache := newMapCache()
	svc := NewService(store, searchindex.NewProjector(store.SearchIndex()), Options{Dispatcher: &recordingDispatcher{}, Cache: cache})

	acc, err := svc.RegisterAccount(ctx, AccountInput{FullName: "Nimal", Role: models.RoleMerchant})
	require.NoError(t, err)
	first, err := svc.SubmitBusiness(ctx, acc.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = svc.DecideBusinessApproval(ctx, Decision{ReferenceID: first.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)

	cached, ok := cache.Get(ctx, models.RoleMerchant, acc.ID)
	require.True(t, ok)
	assert.Equal(t, "Singer", cached.BusinessName)

	in := singer()
	in.BusinessName = "Singer Mega"
	second, err := svc.SubmitBusiness(ctx, acc.ID, models.RoleMerchant, in)
	require.NoError(t, err)
	_, err = svc.DecideBusinessApproval(ctx, Decision{ReferenceID: second.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)
	svc.Wait()

	snap, err := svc.GetApprovedBusiness(ctx, acc.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, "Singer Mega", snap.BusinessName)
	assert.Len(t, store.AllApproved(repositories.KindBusiness), 1)

	rejected, err := svc.SubmitBusiness(ctx, acc.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = svc.DecideBusinessApproval(ctx, Decision{ReferenceID: rejected.ID, Role: models.RoleMerchant, Action: "REJECT"})
	require.NoError(t, err)
	svc.Wait()

	cached, ok = cache.Get(ctx, models.RoleMerchant, acc.ID)
	require.True(t, ok)
	assert.Equal(t, "Singer Mega", cached.BusinessName)
}

func TestReadRacingApprovalKeepsNewSnapshotCached(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	cache := newMapCache()
	svc := NewService(store, searchindex.NewProjector(store.SearchIndex()), Options{Dispatcher: &recordingDispatcher{}, Cache: cache})

	acc, err := svc.RegisterAccount(ctx, AccountInput{FullName: "Nimal", Role: models.RoleMerchant})
	require.NoError(t, err)
	first, err := svc.SubmitBusiness(ctx, acc.ID, models.RoleMerchant, singer())
	require.NoError(t, err)
	_, err = svc.DecideBusinessApproval(ctx, Decision{ReferenceID: first.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	require.NoError(t, err)

	in := singer()
	in.BusinessName = "Singer Mega"
	second, err := svc.SubmitBusiness(ctx, acc.ID, models.RoleMerchant, in)
	require.NoError(t, err)

	// The entry expires, a reader loads the old snapshot, and the approval
	// commits before the reader writes it back.
	cache.evict(models.RoleMerchant, acc.ID)
	var decideErr error
	cache.beforeFill = func() {
		_, decideErr = svc.DecideBusinessApproval(ctx, Decision{ReferenceID: second.ID, Role: models.RoleMerchant, Action: "APPROVE"})
	}

	snap, err := svc.GetApprovedBusiness(ctx, acc.ID, models.RoleMerchant)
	require.NoError(t, err)
	require.NoError(t, decideErr)
	svc.Wait()
	assert.Equal(t, "Singer", snap.BusinessName)

	cached, ok := cache.Get(ctx, models.RoleMerchant, acc.ID)
	require.True(t, ok)
	assert.Equal(t, "Singer Mega", cached.BusinessName)

	snap, err = svc.GetApprovedBusiness(ctx, acc.ID, models.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, "Singer Mega", snap.BusinessName)
}

func TestPendingListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var owners []*models.Account
	for _, name := range []string{"Amal", "Bimal", "Chamal"} {
		owners = append(owners, f.approvedOwner(t, name, models.RoleMerchant))
	}
	pendingAccount := f.register(t, "Dinesh", models.RoleMerchant)

	for i, name := range []string{"Abans", "Singer", "Softlogic"} {
		in := singer()
		in.BusinessName = name
		_, err := f.svc.SubmitBusiness(ctx, owners[i].ID, models.RoleMerchant, in)
		require.NoError(t, err)
		_, err = f.svc.SubmitContact(ctx, owners[i].ID, models.RoleMerchant, ContactInput{Name: "Contact " + name})
		require.NoError(t, err)
	}

	all, err := f.svc.GetPendingBusinesses(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 10, SearchTerm: "ALL"})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, int64(3), all.Total)
	assert.Equal(t, "Abans", all.Items[0].BusinessName)
	assert.Equal(t, "Softlogic", all.Items[2].BusinessName)

	filtered, err := f.svc.GetPendingBusinesses(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 10, SearchTerm: "Sing"})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "Singer", filtered.Items[0].BusinessName)

	paged, err := f.svc.GetPendingBusinesses(ctx, models.RoleMerchant, repositories.PageQuery{Page: 1, Size: 2, SearchTerm: "ALL"})
	require.NoError(t, err)
	require.Len(t, paged.Items, 1)
	assert.Equal(t, int64(3), paged.Total)

	noBusiness := f.approvedOwner(t, "Eranga", models.RoleMerchant)
	_, err = f.svc.SubmitContact(ctx, noBusiness.ID, models.RoleMerchant, ContactInput{Name: "Contact Eranga"})
	require.NoError(t, err)

	contacts, err := f.svc.PendingContactsWithBusiness(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 10, SearchTerm: "ALL"})
	require.NoError(t, err)
	require.Len(t, contacts.Items, 3)
	assert.Equal(t, int64(4), contacts.Total)
	for _, item := range contacts.Items {
		require.NotNil(t, item.Business)
		assert.NotEqual(t, noBusiness.ID, item.Contact.OwnerID)
	}
	assert.Equal(t, "Abans", contacts.Items[0].Business.BusinessName)

	accounts, err := f.svc.GetPendingAccounts(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 10, SearchTerm: "ALL"})
	require.NoError(t, err)
	require.Len(t, accounts.Items, 1)
	assert.Equal(t, pendingAccount.ID, accounts.Items[0].ID)

	_, err = f.svc.GetPendingBusinesses(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 251})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.svc.GetPendingContacts(ctx, models.RoleUser, repositories.PageQuery{Page: 0, Size: 10})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestActiveOwners(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	active := f.approvedOwner(t, "Amal", models.RoleMerchant)
	noBusiness := f.approvedOwner(t, "Bimal", models.RoleMerchant)
	blocked := f.approvedOwner(t, "Chamal", models.RoleMerchant)
	pending := f.register(t, "Dinesh", models.RoleMerchant)

	for _, owner := range []*models.Account{active, blocked} {
		b, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
		require.NoError(t, err)
		_, err = f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: b.ID, Role: models.RoleMerchant, Action: "APPROVE"})
		require.NoError(t, err)
	}
	_, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: blocked.ID, Action: "BLOCK"})
	require.NoError(t, err)
	f.svc.Wait()

	tests := []struct {
		name    string
		ownerID string
		want    bool
	}{
		{"approved with business", active.ID, true},
		{"approved without business", noBusiness.ID, false},
		{"blocked", blocked.ID, false},
		{"pending", pending.ID, false},
		{"unknown", "uid-missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.IsActive(ctx, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	count, err := f.svc.ActiveMerchantCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	bulk, err := f.svc.GetBulkApproved(ctx, []string{active.ID, noBusiness.ID, blocked.ID}, models.RoleMerchant)
	require.NoError(t, err)
	assert.Len(t, bulk, 2)

	bulk, err = f.svc.GetBulkApproved(ctx, nil, models.RoleMerchant)
	require.NoError(t, err)
	assert.Empty(t, bulk)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.approvedOwner(t, "Nimal", models.RoleMerchant)
	f.register(t, "Bank of Ceylon", models.RoleBank)

	_, err := f.svc.SubmitBusiness(ctx, owner.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	page, err := f.svc.Search(ctx, models.RoleMerchant, repositories.PageQuery{Page: 0, Size: 10, SearchTerm: "Singer"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, owner.ID, page.Items[0].UserID)

	_, err = f.svc.Search(ctx, models.RoleAdmin, repositories.PageQuery{Page: 0, Size: 10})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNewServicePanicsWithoutGateway(t *testing.T) {
	assert.Panics(t, func() {
		NewService(nil, nil, Options{})
	})
}

// approveBusiness submits and approves a business for an approved owner.
func (f *fixture) approveBusiness(t *testing.T, owner *models.Account, name string) *models.Business {
	t.Helper()
	ctx := context.Background()
	in := singer()
	in.BusinessName = name
	submitted, err := f.svc.SubmitBusiness(ctx, owner.ID, owner.Role, in)
	require.NoError(t, err)
	decided, err := f.svc.DecideBusinessApproval(ctx, Decision{ReferenceID: submitted.ID, Role: owner.Role, Action: "APPROVE"})
	require.NoError(t, err)
	f.svc.Wait()
	return decided
}

// seedAccount stores an account with a fixed creation time.
func (f *fixture) seedAccount(t *testing.T, role models.RoleType, createdAt time.Time) {
	t.Helper()
	err := f.store.WithinTx(context.Background(), func(st repositories.Stores) error {
		return st.Accounts().Create(context.Background(), &models.Account{
			ID:             models.NewID(models.PrefixAccount),
			FullName:       "Seeded " + string(role),
			Role:           role,
			ApprovalStatus: models.StatusApproved,
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		})
	})
	require.NoError(t, err)
}

func TestTodaySummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Registered through the service on 2024-03-01 around 09:00 UTC.
	seller := f.approvedOwner(t, "Amal", models.RoleMerchant)
	f.approveBusiness(t, seller, "Abans")
	f.register(t, "Bimal", models.RoleMerchant)
	bank := f.approvedOwner(t, "Bank of Ceylon", models.RoleBank)
	f.approveBusiness(t, bank, "BOC")
	f.register(t, "Kamal", models.RoleUser)

	// 23:00 and 20:00 UTC on 2024-02-29 are still 2024-03-01 in Colombo (+05:30).
	f.seedAccount(t, models.RoleMerchant, time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC))
	f.seedAccount(t, models.RoleBank, time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC))
	f.seedAccount(t, models.RoleUser, time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		timeZone string
		want     TodaySummary
	}{
		{
			name:     "utc",
			timeZone: "UTC",
			want: TodaySummary{
				NewMerchants: 2, TotalMerchants: 3, ActiveMerchants: 1,
				NewMobileUsers: 1, TotalMobileUsers: 2,
				NewBanks: 1, TotalBanks: 2, ActiveBanks: 1,
			},
		},
		{
			name:     "colombo",
			timeZone: "Asia/Colombo",
			want: TodaySummary{
				NewMerchants: 3, TotalMerchants: 3, ActiveMerchants: 1,
				NewMobileUsers: 1, TotalMobileUsers: 2,
				NewBanks: 2, TotalBanks: 2, ActiveBanks: 1,
			},
		},
		{
			name:     "default time zone",
			timeZone: "",
			want: TodaySummary{
				NewMerchants: 3, TotalMerchants: 3, ActiveMerchants: 1,
				NewMobileUsers: 1, TotalMobileUsers: 2,
				NewBanks: 2, TotalBanks: 2, ActiveBanks: 1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.TodaySummary(ctx, tt.timeZone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("invalid time zone", func(t *testing.T) {
		_, err := f.svc.TodaySummary(ctx, "Mars/Olympus_Mons")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestActiveBankCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	active := f.approvedOwner(t, "Bank of Ceylon", models.RoleBank)
	f.approveBusiness(t, active, "BOC")
	blocked := f.approvedOwner(t, "People's Bank", models.RoleBank)
	f.approveBusiness(t, blocked, "PB")
	_, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: blocked.ID, Action: "BLOCK"})
	require.NoError(t, err)
	f.approvedOwner(t, "HNB", models.RoleBank)
	seller := f.approvedOwner(t, "Amal", models.RoleMerchant)
	f.approveBusiness(t, seller, "Abans")
	f.svc.Wait()

	banks, err := f.svc.ActiveBankCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), banks)

	merchants, err := f.svc.ActiveMerchantCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), merchants)
}

func TestGetOwnerSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	approved := f.approvedOwner(t, "Amal", models.RoleMerchant)
	f.approveBusiness(t, approved, "Abans")

	blocked := f.approvedOwner(t, "Bimal", models.RoleMerchant)
	f.approveBusiness(t, blocked, "Singer")
	_, err := f.svc.DecideAccountApproval(ctx, AccountDecision{AccountID: blocked.ID, Action: "BLOCK"})
	require.NoError(t, err)
	f.svc.Wait()

	submitted := f.approvedOwner(t, "Chamal", models.RoleMerchant)
	_, err = f.svc.SubmitBusiness(ctx, submitted.ID, models.RoleMerchant, singer())
	require.NoError(t, err)

	bare := f.register(t, "Dinesh", models.RoleMerchant)
	user := f.register(t, "Kamal", models.RoleUser)

	tests := []struct {
		name         string
		ownerID      string
		role         models.RoleType
		wantBusiness string
		wantStatus   models.ApprovalStatus
		wantActive   bool
	}{
		{"approved owner and business", approved.ID, models.RoleMerchant, "Abans", models.StatusApproved, true},
		{"blocked owner", blocked.ID, models.RoleMerchant, "Singer", models.StatusApproved, false},
		{"pending business only", submitted.ID, models.RoleMerchant, "Singer", models.StatusPending, false},
		{"no business", bare.ID, models.RoleMerchant, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := f.svc.GetOwnerSummary(ctx, tt.ownerID, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.ownerID, summary.Account.ID)
			assert.Equal(t, tt.wantActive, summary.Active)
			if tt.wantBusiness == "" {
				assert.Nil(t, summary.Business)
				return
			}
			require.NotNil(t, summary.Business)
			assert.Equal(t, tt.wantBusiness, summary.Business.BusinessName)
			assert.Equal(t, tt.wantStatus, summary.Business.ApprovalStatus)
		})
	}

	errorCases := []struct {
		name    string
		ownerID string
		role    models.RoleType
	}{
		{"unknown owner", "uid-missing", models.RoleMerchant},
		{"role mismatch", approved.ID, models.RoleBank},
		{"non-business role", user.ID, models.RoleUser},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.GetOwnerSummary(ctx, tt.ownerID, tt.role)
			assert.ErrorIs(t, err, apperr.ErrInvalidUser)
		})
	}
}
