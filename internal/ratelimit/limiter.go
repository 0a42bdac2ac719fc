// Package ratelimit limita requisições por chave (normalmente o IP do cliente).
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Valores padrão: 10 requisições por minuto
const (
	DefaultLimit      = 10
	DefaultWindow     = time.Minute
	DefaultRetryAfter = 60 * time.Second
)

// Decision é o resultado de uma verificação
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decide se a chave ainda tem cota na janela atual
type Limiter interface {
	Check(ctx context.Context, key string) (Decision, error)
}

// ClientIP retorna o primeiro IP de X-Forwarded-For, ou o endereço remoto
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
		return xr
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
