package extractor

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// Padrões do cache de extração
const (
	DefaultCacheTTL  = 10 * time.Minute
	DefaultCacheSize = 500
)

type cacheEntry struct {
	key        string
	result     models.ExtractionResult
	expiration time.Time
}

// CachedExtractor guarda extrações bem-sucedidas por URL. Links virais costumam
// ser enviados muitas vezes em sequência; falhas nunca são guardadas.
type CachedExtractor struct {
	next     Extractor
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	lru     *list.List
}

// NewCachedExtractor envolve next com um cache LRU com expiração
func NewCachedExtractor(next Extractor, ttl time.Duration, capacity int) *CachedExtractor {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &CachedExtractor{
		next:     next,
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Extract devolve a extração em cache ou delega ao extrator envolvido
func (c *CachedExtractor) Extract(ctx context.Context, rawURL string) models.ExtractionResult {
	key := cacheKey(rawURL)
	if res, ok := c.get(key); ok {
		return res
	}

	res := c.next.Extract(ctx, rawURL)
	if res.OK {
		c.set(key, res)
	}
	return res
}

// Len retorna o número de entradas, incluindo as expiradas ainda não removidas
func (c *CachedExtractor) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *CachedExtractor) get(key string) (models.ExtractionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.entries[key]
	if !found {
		return models.ExtractionResult{}, false
	}
	entry := element.Value.(*cacheEntry)
	if c.now().After(entry.expiration) {
		c.remove(element)
		return models.ExtractionResult{}, false
	}
	c.lru.MoveToBack(element)
	return copyResult(entry.result), true
}

func (c *CachedExtractor) set(key string, res models.ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := c.now().Add(c.ttl)
	if element, found := c.entries[key]; found {
		c.lru.MoveToBack(element)
		entry := element.Value.(*cacheEntry)
		entry.result = copyResult(res)
		entry.expiration = expiration
		return
	}

	if c.lru.Len() >= c.capacity {
		if oldest := c.lru.Front(); oldest != nil {
			c.remove(oldest)
		}
	}
	c.entries[key] = c.lru.PushBack(&cacheEntry{key: key, result: copyResult(res), expiration: expiration})
}

// remove deve ser chamado com o lock
func (c *CachedExtractor) remove(element *list.Element) {
	c.lru.Remove(element)
	delete(c.entries, element.Value.(*cacheEntry).key)
}

func cacheKey(rawURL string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(rawURL)))
	return hex.EncodeToString(hash[:16])
}

// copyResult evita que o chamador altere os avisos guardados
func copyResult(res models.ExtractionResult) models.ExtractionResult {
	res.Warnings = append([]string{}, res.Warnings...)
	return res
}
