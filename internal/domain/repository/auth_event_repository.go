package repository

import (
	"context"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
)

// AuthEventRecorder stores or forwards auth audit events.
type AuthEventRecorder interface {
	Record(ctx context.Context, ev *entity.AuthEvent) error
}
