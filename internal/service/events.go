package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"portfolio-service/internal/entity"
)

// EventPublisher announces committed content changes.
type EventPublisher interface {
	PublishChange(ctx context.Context, event entity.ChangeEvent) error
}

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishChange(ctx context.Context, event entity.ChangeEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// project-created-1 or blog-cleared-0
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%s-%d", event.Kind, event.Action, event.ID)),
		Value: eventJSON,
	}
	return p.writer.WriteMessages(ctx, msg)
}

type NopPublisher struct{}

func (NopPublisher) PublishChange(context.Context, entity.ChangeEvent) error { return nil }

// defaultPublishTimeout bounds how long a write request waits on the broker.
const defaultPublishTimeout = 3 * time.Second

// changeNotifier publishes events for one content kind. The row is already
// committed when it runs, so failures are only logged.
type changeNotifier struct {
	kind    string
	pub     EventPublisher
	now     func() time.Time
	timeout time.Duration
}

func newChangeNotifier(kind string, pub EventPublisher) changeNotifier {
	if pub == nil {
		pub = NopPublisher{}
	}
	return changeNotifier{kind: kind, pub: pub, now: time.Now, timeout: defaultPublishTimeout}
}

func (n changeNotifier) notify(ctx context.Context, action string, id int, data interface{}) {
	event := entity.ChangeEvent{
		Kind:       n.kind,
		Action:     action,
		ID:         id,
		OccurredAt: n.now().UTC(),
		Data:       data,
	}

	// a client hanging up must not drop the event for a committed row
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.pub.PublishChange(ctx, event); err != nil {
		logger.Warn().Err(err).Str("kind", n.kind).Str("action", action).Int("id", id).Msg("Error publishing change event")
	}
}
