package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avenstek/avenstek-api/internal/application"
	"github.com/avenstek/avenstek-api/internal/domain/entity"
	repo "github.com/avenstek/avenstek-api/internal/domain/repository"
	"github.com/avenstek/avenstek-api/pkg/helpers"
	"github.com/avenstek/avenstek-api/pkg/response"
	"github.com/avenstek/avenstek-api/pkg/validation"
)

// Authenticator is the auth service surface the handler needs.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*application.AuthResult, error)
	Login(ctx context.Context, email, password string) (*application.AuthResult, error)
	Logout(ctx context.Context) error
}

type AuthHandler struct {
	Svc    Authenticator
	Events repo.AuthEventRecorder // optional
	Logger *logrus.Logger
}

func NewAuthHandler(svc Authenticator, events repo.AuthEventRecorder, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Events: events, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"omitempty,emaillen,nonul"`
	Password string `json:"password"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// audit records an auth event. Failures are logged and never reach the client.
func (h *AuthHandler) audit(c *gin.Context, userID, email string, action entity.AuthAction) {
	if h.Events == nil {
		return
	}
	ev := &entity.AuthEvent{
		UserID:     userID,
		Email:      email,
		Action:     action,
		IP:         clientIP(c),
		UserAgent:  c.GetHeader("User-Agent"),
		RequestID:  c.GetString("request_id"),
		OccurredAt: time.Now().UTC(),
	}
	if err := h.Events.Record(c.Request.Context(), ev); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithFields(logrus.Fields{
			"action":     action,
			"request_id": ev.RequestID,
		}).Warn("record auth event failed")
	}
}

// bindCredentials reads the JSON body. An empty body counts as empty
// credentials so the service reports the missing fields.
func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "Invalid payload", validation.ToDetails(err))
		return req, false
	}
	return req, true
}

func userBody(u *entity.User) *response.UserBody {
	return &response.UserBody{ID: u.ID, Email: u.Email, Role: u.Role.String()}
}

// Register POST /api/auth/register {email, password}
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, res.User.ID, res.User.Email, entity.ActionRegister)
	response.Success(c, http.StatusCreated, response.APIResponse{
		Message:   "User registered successfully",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		User:      userBody(res.User),
	})
}

// Login POST /api/auth/login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			h.audit(c, "", req.Email, entity.ActionLoginFailed)
		}
		h.fail(c, err)
		return
	}
	h.audit(c, res.User.ID, res.User.Email, entity.ActionLoginSuccess)
	response.Success(c, http.StatusOK, response.APIResponse{
		Message:   "Login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
		User:      userBody(res.User),
	})
}

// Logout POST /api/auth/logout
// Tokens are stateless; the client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.audit(c, "", "", entity.ActionLogout)
	response.Success(c, http.StatusOK, response.APIResponse{Message: "Logout successful"})
}

// fail maps service errors to status codes.
func (h *AuthHandler) fail(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, application.ErrUserExists):
		response.Error(c, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
	default:
		helpers.LogError(h.Logger, "auth request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
