package middlewares

import (
	"time"

	"github.com/dogumharitan777/astro-api/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// шаблон маршрута, а не сырой путь: иначе растёт кардинальность
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		m.ObserveRequest(path, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
