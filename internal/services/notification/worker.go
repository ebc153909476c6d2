package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Handler processes approval notification tasks on the worker side.
type Handler struct {
	sender Sender
}

func NewHandler(sender Sender) *Handler {
	if sender == nil {
		panic("notification sender is required")
	}
	return &Handler{sender: sender}
}

// ProcessSMS sends the SMS of one approval outcome.
func (h *Handler) ProcessSMS(ctx context.Context, t *asynq.Task) error {
	p, msg, err := decode(t)
	if err != nil {
		return err
	}
	if err := h.sender.SendSMS(ctx, msg.MobileNo, msg.SMS, p.TimeZone); err != nil {
		log.Printf("Sending %s sms failed for account %s: %v", p.Outcome, p.Recipient.AccountID, err)
		return err
	}
	log.Printf("Sent %s sms for account %s", p.Outcome, p.Recipient.AccountID)
	return nil
}

// ProcessEmail sends the email of one approval outcome. A recipient without
// an address is a no-op.
func (h *Handler) ProcessEmail(ctx context.Context, t *asynq.Task) error {
	p, msg, err := decode(t)
	if err != nil {
		return err
	}
	if !msg.HasEmail() {
		return nil
	}
	if err := h.sender.SendEmail(ctx, msg.Email, msg.EmailSubject, msg.EmailBody, p.TimeZone); err != nil {
		log.Printf("Sending %s email failed for account %s: %v", p.Outcome, p.Recipient.AccountID, err)
		return err
	}
	log.Printf("Sent %s email for account %s", p.Outcome, p.Recipient.AccountID)
	return nil
}

// decode reads the payload and renders its message. Its errors skip retry:
// a malformed task will never succeed.
func decode(t *asynq.Task) (ApprovalOutcomePayload, Message, error) {
	var p ApprovalOutcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, Message{}, fmt.Errorf("invalid notification payload: %v: %w", err, asynq.SkipRetry)
	}
	msg, err := Render(p.Outcome, p.Recipient)
	if err != nil {
		return p, Message{}, fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return p, msg, nil
}

// NewServeMux routes notification task types to h.
func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeApprovalSMS, h.ProcessSMS)
	mux.HandleFunc(TypeApprovalEmail, h.ProcessEmail)
	return mux
}
