package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avenstek/avenstek-api/config"
	"github.com/avenstek/avenstek-api/internal/container"
	"github.com/avenstek/avenstek-api/internal/interface/middleware"
	"github.com/avenstek/avenstek-api/pkg/validation"
)

// NewEngine builds the gin engine with global middleware and every module mounted.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Recovery(c.Logger))
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(c.Config)))

	// Registry: auto-register modules using container
	reg := NewRegistry(r)
	if c.Config.HTTPLogEnabled || c.Config.IsDevelopment() {
		// access log covers /api only; static hits stay quiet
		reg.Use(middleware.RequestLogger(c.Logger))
	}
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	} else {
		cc.AllowAllOrigins = true
	}
	return cc
}
