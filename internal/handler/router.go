package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradejournal/internal/audit"

	_ "tradejournal/docs"
)

// Registrar is any handler group that mounts its routes on the engine.
type Registrar interface {
	Register(r *gin.Engine)
}

type RouterOptions struct {
	Logger    *zap.Logger
	Audit     *audit.Recorder
	StaticDir string
	Swagger   bool
}

// NewRouter builds the engine with the shared middleware stack and mounts
// every handler group.
func NewRouter(opts RouterOptions, handlers ...Registrar) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(CORS())
	engine.Use(RequestLogger(opts.Logger))
	engine.Use(audit.WriteMiddleware(opts.Audit))

	for _, h := range handlers {
		h.Register(engine)
	}
	if opts.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	engine.NoRoute(Static(opts.StaticDir))
	return engine
}
