package audit

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// WriteMiddleware records one event per non-read request under /api/. The
// event is sent after the response, off the request goroutine.
func WriteMiddleware(r *Recorder) gin.HandlerFunc {
	if r == nil || !r.Client.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/api/") {
			return
		}
		method := strings.ToUpper(c.Request.Method)
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return
		}

		status := c.Writer.Status()
		r.Go("journal_http_write", LevelFromStatus(status), map[string]any{
			"method":   method,
			"path":     path,
			"route":    c.FullPath(),
			"status":   status,
			"duration": time.Since(start).String(),
		})
	}
}
