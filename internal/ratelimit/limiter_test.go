package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		d, err := l.Check(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "requisição %d", i+1)
	}

	d, err := l.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, DefaultRetryAfter, d.RetryAfter)

	// Outra chave tem cota própria
	d, _ = l.Check(ctx, "5.6.7.8")
	assert.True(t, d.Allowed)

	// Depois de uma janela a cota volta
	now = now.Add(time.Minute)
	d, _ = l.Check(ctx, "1.2.3.4")
	assert.True(t, d.Allowed)
}

func TestMemoryLimiterSweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, time.Minute)
	l.now = func() time.Time { return now }

	_, _ = l.Check(context.Background(), "velho")
	now = now.Add(2 * time.Minute)
	l.sweep(now)
	assert.Empty(t, l.entries)
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, 10, time.Minute)
	d, err := l.Check(context.Background(), "ip")
	assert.Error(t, err)
	assert.True(t, d.Allowed)
}

func TestNewRedisClientRejectsInvalidURL(t *testing.T) {
	_, err := NewRedisClient("nao-e-url")
	assert.Error(t, err)

	client, err := NewRedisClient("redis://localhost:6379/0")
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"primeiro salto do X-Forwarded-For", map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"}, "1.1.1.1:80", "9.9.9.9"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "8.8.8.8"}, "1.1.1.1:80", "8.8.8.8"},
		{"endereço remoto", nil, "1.1.1.1:80", "1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}
