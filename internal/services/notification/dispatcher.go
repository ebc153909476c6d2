package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"github.com/hibiken/asynq"
)

// Each channel of an approval notification is its own asynq task, so a
// failed email is retried without sending the SMS again.
const (
	TypeApprovalSMS   = "notification:approval_outcome:sms"
	TypeApprovalEmail = "notification:approval_outcome:email"
)

// DefaultQueue is used when no queue name is configured.
const DefaultQueue = "notifications"

// Recipient identifies who is notified about a decision.
type Recipient struct {
	AccountID string `json:"accountId"`
	FullName  string `json:"fullName"`
	MobileNo  string `json:"mobileNo"`
	Email     string `json:"email,omitempty"`
}

// RecipientFor builds the recipient of an account.
func RecipientFor(a *models.Account) Recipient {
	return Recipient{
		AccountID: a.ID,
		FullName:  a.FullName,
		MobileNo:  a.MobileNo,
		Email:     a.Email,
	}
}

// ApprovalOutcomePayload is the task body.
type ApprovalOutcomePayload struct {
	Recipient Recipient             `json:"recipient"`
	Outcome   models.ApprovalStatus `json:"outcome"`
	TimeZone  string                `json:"timeZone"`
}

// Dispatcher hands an approval outcome to the notification pipeline.
type Dispatcher interface {
	SendApprovalOutcome(ctx context.Context, r Recipient, outcome models.ApprovalStatus, timeZone string) error
}

// NewApprovalOutcomeTasks encodes the tasks enqueued for one outcome: an SMS
// task, plus an email task when the recipient has an address.
func NewApprovalOutcomeTasks(p ApprovalOutcomePayload) ([]*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	tasks := []*asynq.Task{asynq.NewTask(TypeApprovalSMS, payload)}
	if p.Recipient.Email != "" {
		tasks = append(tasks, asynq.NewTask(TypeApprovalEmail, payload))
	}
	return tasks, nil
}

// AsynqDispatcher enqueues approval notifications for cmd/notifier.
type AsynqDispatcher struct {
	client   *asynq.Client
	queue    string
	maxRetry int
	timeout  time.Duration
}

func NewAsynqDispatcher(client *asynq.Client, queue string) *AsynqDispatcher {
	if client == nil {
		panic("asynq client is required")
	}
	if queue == "" {
		queue = DefaultQueue
	}
	return &AsynqDispatcher{
		client:   client,
		queue:    queue,
		maxRetry: 5,
		timeout:  30 * time.Second,
	}
}

func (d *AsynqDispatcher) SendApprovalOutcome(ctx context.Context, r Recipient, outcome models.ApprovalStatus, timeZone string) error {
	tasks, err := NewApprovalOutcomeTasks(ApprovalOutcomePayload{
		Recipient: r,
		Outcome:   outcome,
		TimeZone:  timeZone,
	})
	if err != nil {
		return err
	}

	for _, task := range tasks {
		info, err := d.client.EnqueueContext(ctx, task,
			asynq.Queue(d.queue),
			asynq.MaxRetry(d.maxRetry),
			asynq.Timeout(d.timeout),
		)
		if err != nil {
			return fmt.Errorf("failed to enqueue %s for account %s: %w", task.Type(), r.AccountID, err)
		}
		log.Printf("Enqueued %s %s notification %s for account %s", outcome, task.Type(), info.ID, r.AccountID)
	}
	return nil
}
