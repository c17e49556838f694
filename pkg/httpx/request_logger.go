package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// KeyOrderReference — ключ gin.Context, под которым обработчик оставляет номер принятого заказа.
const KeyOrderReference = "order_ref"

// служебные маршруты не логируем
var quietPaths = map[string]struct{}{
	"/metrics":        {},
	"/ping":           {},
	"/tickets/health": {},
}

// RequestLogger — middleware для логирования HTTP-запросов; 5xx пишутся как warn.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, quiet := quietPaths[c.FullPath()]; quiet {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		if ref := c.GetString(KeyOrderReference); ref != "" {
			ctx = ctxmeta.WithOrderReference(ctx, ref)
		}

		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		sp, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		if c.Writer.Status() >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		logf(
			ctx,
			"request id=%s trace=%s span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr, sp,
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
