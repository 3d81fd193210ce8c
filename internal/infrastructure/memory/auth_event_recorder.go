package memory

import (
	"context"
	"sync"

	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
)

// AuthEventRecorder appends events to a slice. With a positive limit only
// the newest limit events are kept.
type AuthEventRecorder struct {
	mu     sync.Mutex
	limit  int
	events []entity.AuthEvent
}

func NewAuthEventRecorder() *AuthEventRecorder {
	return &AuthEventRecorder{}
}

// NewBoundedAuthEventRecorder keeps at most limit events, dropping the oldest.
func NewBoundedAuthEventRecorder(limit int) *AuthEventRecorder {
	return &AuthEventRecorder{limit: limit}
}

func (r *AuthEventRecorder) Record(ctx context.Context, ev *entity.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	if r.limit > 0 && len(r.events) > r.limit {
		// copy down so the backing array does not keep growing
		n := copy(r.events, r.events[len(r.events)-r.limit:])
		clear(r.events[n:])
		r.events = r.events[:n]
	}
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *AuthEventRecorder) Events() []entity.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}

var _ repository.AuthEventRecorder = (*AuthEventRecorder)(nil)
