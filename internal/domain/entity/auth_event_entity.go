package entity

import "time"

// AuthAction names what happened in an auth event.
type AuthAction string

const (
	ActionRegister     AuthAction = "register"
	ActionLoginSuccess AuthAction = "login_success"
	ActionLoginFailed  AuthAction = "login_failed"
	ActionLogout       AuthAction = "logout"
)

// AuthEvent is an append-only audit record of an auth request.
// UserID is empty when the request did not resolve to a user.
type AuthEvent struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id,omitempty"`
	Email      string     `json:"email,omitempty"`
	Action     AuthAction `json:"action"`
	IP         string     `json:"ip,omitempty"`
	UserAgent  string     `json:"user_agent,omitempty"`
	RequestID  string     `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
