package notification

import (
	"context"
	"log"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
)

// LogDispatcher only logs outcomes. It is used when no queue is configured.
type LogDispatcher struct{}

// NewLogDispatcher creates a dispatcher that writes to the process log.
func NewLogDispatcher() *LogDispatcher { return &LogDispatcher{} }

// SendApprovalOutcome logs the outcome for the account.
func (d *LogDispatcher) SendApprovalOutcome(ctx context.Context, r Recipient, outcome models.ApprovalStatus, timeZone string) error {
	log.Printf("Notify account %s of approval outcome %s (tz %s)", r.AccountID, outcome, timeZone)
	return nil
}
