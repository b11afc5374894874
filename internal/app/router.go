package app

import (
	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/startup-pack-agent/internal/a2a"
	"github.com/BerylCAtieno/startup-pack-agent/internal/api"
	"github.com/BerylCAtieno/startup-pack-agent/internal/middleware"
)

func (a *App) newRouter() *gin.Engine {
	if a.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(a.Log),
		middleware.CORS(a.Cfg.AllowedOrigins),
	)

	api.NewHandler(a.Generator, a.Relay, a.Log).Register(r)

	a2aHandler := a2a.NewA2AHandler(a.Generator, a.Log)
	r.GET(a2a.CardPath, a2aHandler.ServeAgentCard)
	task := r.Group(a2a.TaskPath)
	if !a.Cfg.IsProduction() {
		task.Use(a2a.RequestDumpMiddleware(a.Log))
	}
	task.POST("", a2aHandler.HandleStartupPack)

	return r
}
