package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter conta requisições por janela fixa, compartilhada entre instâncias
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisClient cria o cliente a partir de REDIS_URL (redis://...)
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}
	return redis.NewClient(opt), nil
}

// NewRedisLimiter cria o limiter sobre um cliente existente
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

// Check incrementa o contador da janela atual. Se o Redis falhar a requisição
// é liberada e o erro devolvido para registro.
func (r *RedisLimiter) Check(ctx context.Context, key string) (Decision, error) {
	windowStart := r.now().Truncate(r.window)
	redisKey := fmt.Sprintf("%s%s:%d", r.prefix, key, windowStart.Unix())

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[RateLimit] Redis indisponível, liberando requisição: %v", err)
		return Decision{Allowed: true, Remaining: r.limit}, fmt.Errorf("erro no redis: %w", err)
	}

	count := int(incr.Val())
	if count > r.limit {
		retry := windowStart.Add(r.window).Sub(r.now())
		if retry <= 0 {
			retry = DefaultRetryAfter
		}
		return Decision{Allowed: false, RetryAfter: retry}, nil
	}
	return Decision{Allowed: true, Remaining: r.limit - count}, nil
}
