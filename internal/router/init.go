package router

import (
	"github.com/avenstek/avenstek-api/internal/application"
	"github.com/avenstek/avenstek-api/internal/container"
	handlers "github.com/avenstek/avenstek-api/internal/interface/http"
	"github.com/avenstek/avenstek-api/internal/router/modules"
)

type AuthModuleDeps struct {
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

func buildAuthDeps(c *container.Container) AuthModuleDeps {
	service := application.NewAuthService(c.Users, c.Hasher, c.Tokens, c.Logger)
	handler := handlers.NewAuthHandler(service, c.Events, c.Logger)
	return AuthModuleDeps{Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	authDeps := buildAuthDeps(c)
	r.Add(modules.NewAuthModule(authDeps.Handler))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Config.AppName), r.Engine))
	if c.Config.UploadsDir != "" {
		r.Add(modules.NewStaticModule(r.Engine, "/uploads", c.Config.UploadsDir))
	}
}
