package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/avenstek/avenstek-api/internal/interface/http"
)

// HealthModule serves GET / on the engine root and GET /api/health.
type HealthModule struct {
	Handler *handlers.HealthHandler
	Engine  *gin.Engine
}

func NewHealthModule(h *handlers.HealthHandler, engine *gin.Engine) *HealthModule {
	return &HealthModule{Handler: h, Engine: engine}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	m.Engine.GET("/", m.Handler.Root)
	rg.GET("/health", m.Handler.Health)
}
