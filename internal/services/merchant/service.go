package merchant

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/keylock"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/events"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/notification"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/searchindex"
)

const DefaultNotifyTimeout = 10 * time.Second

// SnapshotCache is a read-through cache of approved business snapshots.
type SnapshotCache interface {
	Get(ctx context.Context, role models.RoleType, ownerID string) (*models.ApprovedBusiness, bool)
	// Fill stores a snapshot read from the store unless one is cached.
	Fill(ctx context.Context, role models.RoleType, snapshot *models.ApprovedBusiness)
	// Set overwrites the cached snapshot.
	Set(ctx context.Context, role models.RoleType, snapshot *models.ApprovedBusiness)
}

type noopSnapshotCache struct{}

func (noopSnapshotCache) Get(context.Context, models.RoleType, string) (*models.ApprovedBusiness, bool) {
	return nil, false
}

func (noopSnapshotCache) Fill(context.Context, models.RoleType, *models.ApprovedBusiness) {}

func (noopSnapshotCache) Set(context.Context, models.RoleType, *models.ApprovedBusiness) {}

// Options holds the optional collaborators of a Service. Zero values fall
// back to log-only notification, no events, no cache and time.Now.
type Options struct {
	Dispatcher      notification.Dispatcher
	Publisher       events.Publisher
	Cache           SnapshotCache
	Locker          *keylock.Locker
	NotifyTimeout   time.Duration
	DefaultTimeZone string
	Now             func() time.Time
}

type Service struct {
	gateway         repositories.Gateway
	projector       *searchindex.Projector
	dispatcher      notification.Dispatcher
	publisher       events.Publisher
	cache           SnapshotCache
	locker          *keylock.Locker
	notifyTimeout   time.Duration
	defaultTimeZone string
	now             func() time.Time

	inflight sync.WaitGroup
}

func NewService(gateway repositories.Gateway, projector *searchindex.Projector, opts Options) *Service {
	if gateway == nil || projector == nil {
		panic("merchant service requires a gateway and a projector")
	}
	s := &Service{
		gateway:         gateway,
		projector:       projector,
		dispatcher:      opts.Dispatcher,
		publisher:       opts.Publisher,
		cache:           opts.Cache,
		locker:          opts.Locker,
		notifyTimeout:   opts.NotifyTimeout,
		defaultTimeZone: opts.DefaultTimeZone,
		now:             opts.Now,
	}
	if s.dispatcher == nil {
		s.dispatcher = notification.NewLogDispatcher()
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	if s.cache == nil {
		s.cache = noopSnapshotCache{}
	}
	if s.locker == nil {
		s.locker = keylock.New()
	}
	if s.notifyTimeout <= 0 {
		s.notifyTimeout = DefaultNotifyTimeout
	}
	if s.defaultTimeZone == "" {
		s.defaultTimeZone = notification.DefaultTimeZone
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Wait blocks until every notification started so far has been handed to
// the dispatcher.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func ownerKey(ownerID string) string {
	return "owner:" + ownerID
}

// inTx runs fn in one transaction and converts store errors into
// persistence failures.
func (s *Service) inTx(ctx context.Context, op string, ids []string, fn func(repositories.Stores) error) error {
	return persistence(op, s.gateway.WithinTx(ctx, fn), ids...)
}

func (s *Service) notify(account *models.Account, outcome models.ApprovalStatus, timeZone string) {
	if timeZone == "" {
		timeZone = s.defaultTimeZone
	}
	recipient := notification.RecipientFor(account)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.dispatcher.SendApprovalOutcome(ctx, recipient, outcome, timeZone); err != nil {
			log.Printf("Failed to dispatch %s notification for account %s: %v", outcome, recipient.AccountID, err)
		}
	}()
}

func (s *Service) publish(ctx context.Context, evt events.ApprovalDecided) {
	if err := s.publisher.PublishApprovalDecided(ctx, evt); err != nil {
		log.Printf("Failed to publish %s decision for %s: %v", evt.Subject, evt.ReferenceID, err)
	}
}
