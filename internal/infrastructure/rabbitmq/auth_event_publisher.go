// Package rabbitmq forwards auth events to a queue for the audit worker.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
)

// JSONPublisher is satisfied by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any, messageID string) error
}

// AuthEventPublisher implements repository.AuthEventRecorder on top of a queue.
type AuthEventPublisher struct {
	pub JSONPublisher
}

func NewAuthEventPublisher(pub JSONPublisher) *AuthEventPublisher {
	return &AuthEventPublisher{pub: pub}
}

func (p *AuthEventPublisher) Record(ctx context.Context, ev *entity.AuthEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := p.pub.PublishJSON(ctx, ev, ev.ID); err != nil {
		return fmt.Errorf("publish auth event: %w", err)
	}
	return nil
}

// DecodeAuthEvent parses a queue message body produced by Record.
func DecodeAuthEvent(body []byte) (*entity.AuthEvent, error) {
	var ev entity.AuthEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode auth event: %w", err)
	}
	if ev.ID == "" || ev.Action == "" {
		return nil, fmt.Errorf("decode auth event: missing id or action")
	}
	return &ev, nil
}

var _ repository.AuthEventRecorder = (*AuthEventPublisher)(nil)
