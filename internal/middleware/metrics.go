package middlewares

import (
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/gin-gonic/gin"
)

// RequestMetrics registra contagem e duração por rota
func RequestMetrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
