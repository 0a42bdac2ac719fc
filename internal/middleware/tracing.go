package middlewares

import (
	"errors"
	"log"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader é devolvido em toda resposta para correlacionar logs e traces
const RequestIDHeader = "X-Request-ID"

// SlowRequestThreshold é a duração a partir da qual a requisição é logada
const SlowRequestThreshold = 10 * time.Second

// RequestTiming abre um span por requisição, propaga o X-Request-ID e loga requisições lentas.
// Só respostas 5xx marcam o span como erro; 4xx são erros do usuário.
func RequestTiming() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx, span := otel.Tracer("http").Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("http.request_id", requestID),
				attribute.Int64("http.request_size", c.Request.ContentLength),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", duration.Milliseconds()),
		)

		var apiErr *models.APIError
		if last := c.Errors.Last(); last != nil && errors.As(last.Err, &apiErr) {
			span.SetAttributes(attribute.String("app.error_kind", string(apiErr.Kind)))
		}

		if status >= 500 {
			span.SetStatus(codes.Error, c.Errors.String())
		}

		if duration >= SlowRequestThreshold {
			log.Printf("[HTTP] %s %s lenta: %s (status %d, request %s)", c.Request.Method, route, duration, status, requestID)
		}
	}
}
