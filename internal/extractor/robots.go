package extractor

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker consulta o robots.txt de cada host, com cache por host
type RobotsChecker struct {
	client *http.Client
	ttl    time.Duration

	mu    sync.Mutex
	hosts map[string]robotsEntry
}

type robotsEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

// NewRobotsChecker cria um verificador de robots.txt
func NewRobotsChecker(client *http.Client, ttl time.Duration) *RobotsChecker {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RobotsChecker{
		client: client,
		ttl:    ttl,
		hosts:  make(map[string]robotsEntry),
	}
}

// Allowed informa se o agente pode acessar a URL. Erros ao obter o robots.txt liberam o acesso.
func (r *RobotsChecker) Allowed(ctx context.Context, u *url.URL, agent string) bool {
	data := r.lookup(ctx, u)
	if data == nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, agent)
}

func (r *RobotsChecker) lookup(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	r.mu.Lock()
	entry, ok := r.hosts[key]
	r.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < r.ttl {
		return entry.data
	}

	data := r.fetch(ctx, key)

	r.mu.Lock()
	r.hosts[key] = robotsEntry{data: data, fetchedAt: time.Now()}
	r.mu.Unlock()
	return data
}

func (r *RobotsChecker) fetch(ctx context.Context, base string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("[WebExtractor] robots.txt indisponível para %s: %v", base, err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
