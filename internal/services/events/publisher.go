// Package events publishes approval decisions for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// ApprovalDecided is emitted after a decision commits.
type ApprovalDecided struct {
	Subject     string                `json:"subject"`
	ReferenceID string                `json:"referenceId"`
	OwnerID     string                `json:"ownerId"`
	Role        models.RoleType       `json:"role"`
	Action      models.ApprovalAction `json:"action"`
	Previous    models.ApprovalStatus `json:"previous"`
	Outcome     models.ApprovalStatus `json:"outcome"`
	ReviewerID  string                `json:"reviewerId,omitempty"`
	DecidedAt   time.Time             `json:"decidedAt"`
}

type Publisher interface {
	PublishApprovalDecided(ctx context.Context, evt ApprovalDecided) error
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishApprovalDecided(context.Context, ApprovalDecided) error { return nil }

// NewKafkaWriter builds the shared writer for topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           5 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// KafkaPublisher writes events keyed by owner id so one owner's decisions
// land on one partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishApprovalDecided(ctx context.Context, evt ApprovalDecided) error {
	msg, err := encode(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish approval event for %s: %w", evt.ReferenceID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(evt ApprovalDecided) (kafka.Message, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal approval event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.OwnerID),
		Value: body,
		Time:  evt.DecidedAt,
	}, nil
}
