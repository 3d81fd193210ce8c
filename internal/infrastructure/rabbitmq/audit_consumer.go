package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/avenstek/avenstek-api/internal/domain/repository"
)

// AuditConsumer drains queued auth events into a durable recorder.
type AuditConsumer struct {
	Store   repository.AuthEventRecorder
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewAuditConsumer(store repository.AuthEventRecorder, logger *logrus.Logger) *AuditConsumer {
	return &AuditConsumer{Store: store, Logger: logger, Timeout: 15 * time.Second}
}

// Handle stores one delivery. Undecodable bodies are dropped; store
// failures are requeued.
func (c *AuditConsumer) Handle(ctx context.Context, msg amqp.Delivery) {
	ev, err := DecodeAuthEvent(msg.Body)
	if err != nil {
		c.Logger.WithError(err).WithField("message_id", msg.MessageId).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}

	rctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	if err := c.Store.Record(rctx, ev); err != nil {
		c.Logger.WithError(err).WithField("event_id", ev.ID).Error("store auth event failed")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}

// Run handles deliveries until msgs closes or ctx is done.
func (c *AuditConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			c.Handle(ctx, msg)
		}
	}
}
