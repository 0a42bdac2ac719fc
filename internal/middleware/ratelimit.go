package middlewares

import (
	"log"
	"net/http"
	"strconv"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit bloqueia com 429 quando o IP excede a cota. keyPrefix separa cotas
// de rotas diferentes (ex.: "suggest:").
func RateLimit(limiter ratelimit.Limiter, keyPrefix string, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := keyPrefix + ratelimit.ClientIP(c.Request)
		decision, err := limiter.Check(c.Request.Context(), key)
		if err != nil {
			log.Printf("[RateLimit] Erro ao verificar %s: %v", key, err)
		}
		if decision.Allowed {
			c.Next()
			return
		}

		m.RateLimited(c.FullPath())
		retry := int(ratelimit.DefaultRetryAfter.Seconds())
		c.Header("Retry-After", strconv.Itoa(retry))
		apiErr := models.NewAPIError(models.ErrKindRateLimited, models.MsgRateLimited, nil)
		c.AbortWithStatusJSON(apiErr.Kind.Status(), apiErr.Response())
	}
}
