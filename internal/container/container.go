package container

import (
	"github.com/sirupsen/logrus"

	"github.com/avenstek/avenstek-api/config"
	"github.com/avenstek/avenstek-api/internal/domain/repository"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

// Container carries the components built once at startup so route modules
// can be wired without reaching for the environment.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users  repository.UserRepository
	Events repository.AuthEventRecorder // nil when auditing is off

	Hasher *helpers.PasswordHasher
	Tokens *helpers.TokenIssuer
}

// New builds the hasher and token issuer from cfg.
func New(cfg *config.Config, logger *logrus.Logger, users repository.UserRepository, events repository.AuthEventRecorder) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		Users:  users,
		Events: events,
		Hasher: helpers.NewPasswordHasher(cfg.BcryptCost),
		Tokens: helpers.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	}
}
