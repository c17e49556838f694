package rest

import (
	"net/http"

	"github.com/Gunvolt24/ticketflow/pkg/httpx"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — публичный API: приём заявок, health, служебные /ping и /metrics.
// otelServiceName == "" отключает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := newEngine(h, otelServiceName)

	tickets := r.Group("/tickets")
	tickets.POST("", h.submitPurchase)
	tickets.GET("/health", h.health)

	return r
}

// NewOpsRouter — служебный роутер режима worker: без приёма заявок.
func NewOpsRouter(h *Handler) *gin.Engine {
	r := newEngine(h, "")
	r.GET("/tickets/health", h.health)
	return r
}

func newEngine(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}
