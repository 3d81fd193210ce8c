package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
)

// AuthEventRepository appends auth events to the auth_events table.
type AuthEventRepository struct {
	db DBTX
}

func NewAuthEventRepository(db DBTX) *AuthEventRepository {
	return &AuthEventRepository{db: db}
}

// Record inserts ev. Replays of the same event ID are ignored so the audit
// worker can redeliver safely.
func (r *AuthEventRepository) Record(ctx context.Context, ev *entity.AuthEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO auth_events (id, user_id, email, action, ip, user_agent, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, ev.ID, nullable(ev.UserID), nullable(ev.Email), string(ev.Action),
		nullable(ev.IP), nullable(ev.UserAgent), nullable(ev.RequestID), ev.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.AuthEventRecorder = (*AuthEventRepository)(nil)
