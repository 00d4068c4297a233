package http

import (
	"github.com/gin-gonic/gin"
	"github.com/poohbae/CakeHistory/internal/metrics"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
)

type RouterOptions struct {
	JWTSecret   string
	CORSOrigins []string
	Metrics     *metrics.ServerMetrics
	Log         *logger.Logger
}

// NewRouter builds the engine with recovery, CORS, request logging and metrics in front of the handler.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(CORS(opts.CORSOrigins))
	}
	r.Use(RequestLogger(opts.Log), Metrics(opts.Metrics))

	h.RegisterRoutes(r, AuthMiddleware(opts.JWTSecret))
	return r
}
