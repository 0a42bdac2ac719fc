package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
)

// DefaultUserAgents são rotacionados a cada requisição
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0",
}

// noiseSelectors são removidos antes da extração do conteúdo principal
var noiseSelectors = []string{
	"script", "style", "nav", "footer", "aside", "iframe", "noscript",
	".ad", ".ads", ".advertisement", `[role="navigation"]`, `[role="banner"]`,
}

const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "pt-BR,pt;q=0.9,en;q=0.5"
	minParagraphChars    = 20
)

var (
	errHTTPStatus = errors.New("status HTTP não OK")
	errNotHTML    = errors.New("conteúdo não é HTML")
	errDisallowed = errors.New("bloqueado pelo robots.txt")
)

// WebConfig configuração do extrator web
type WebConfig struct {
	Timeout       time.Duration
	MaxBodyBytes  int64
	MinChars      int
	MaxChars      int
	UserAgents    []string
	RespectRobots bool
}

// DefaultWebConfig retorna configuração padrão
func DefaultWebConfig() WebConfig {
	return WebConfig{
		Timeout:      8 * time.Second,
		MaxBodyBytes: 5 << 20,
		MinChars:     DefaultMinChars,
		MaxChars:     DefaultMaxChars,
		UserAgents:   DefaultUserAgents,
	}
}

// WebExtractor baixa uma página e extrai o texto principal
type WebExtractor struct {
	client *http.Client
	config WebConfig
	robots *RobotsChecker
}

// NewWebExtractor cria o extrator. client nil usa um http.Client próprio.
func NewWebExtractor(client *http.Client, cfg WebConfig) *WebExtractor {
	defaults := DefaultWebConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if cfg.MinChars <= 0 {
		cfg.MinChars = defaults.MinChars
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = defaults.MaxChars
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = defaults.UserAgents
	}
	if client == nil {
		client = &http.Client{}
	}

	w := &WebExtractor{client: client, config: cfg}
	if cfg.RespectRobots {
		w.robots = NewRobotsChecker(client, time.Hour)
	}
	return w
}

func (w *WebExtractor) userAgent() string {
	return w.config.UserAgents[rand.IntN(len(w.config.UserAgents))]
}

// Extract baixa a página e retorna o texto principal. Falhas viram ExtractionResult com OK=false.
func (w *WebExtractor) Extract(ctx context.Context, rawURL string) models.ExtractionResult {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || pageURL.Host == "" {
		return models.ExtractionFailure(MsgInvalidURL)
	}

	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	ua := w.userAgent()
	body, err := w.fetch(ctx, pageURL, ua)
	if err != nil {
		log.Printf("[WebExtractor] Falha ao baixar %s: %v", shorten(pageURL.String(), 80), err)
		return models.ExtractionFailure(w.fetchErrorMessage(err))
	}

	warnings := []string{}
	text, title, readabilityOK := extractMainContent(body, pageURL)
	if !readabilityOK {
		warnings = append(warnings, WarnReadabilityFailed)
	}

	if runeLen(text) < w.config.MinChars {
		fallback := extractParagraphs(body)
		if runeLen(fallback) > runeLen(text) {
			text = fallback
			if readabilityOK {
				warnings = append(warnings, WarnHeuristic)
			}
		}
	}

	text = sanitize.CollapseWhitespace(text)
	if runeLen(text) < w.config.MinChars {
		return models.ExtractionFailure(MsgInsufficient, warnings...)
	}

	text, truncated := capText(text, w.config.MaxChars)
	if truncated {
		warnings = append(warnings, WarnTruncated)
	}

	log.Printf("[WebExtractor] %d caracteres extraídos de %s", runeLen(text), shorten(pageURL.String(), 80))
	return models.ExtractionResult{
		OK:        true,
		Text:      text,
		Title:     strings.TrimSpace(title),
		SourceURL: pageURL.String(),
		Warnings:  warnings,
	}
}

func (w *WebExtractor) fetch(ctx context.Context, pageURL *url.URL, ua string) ([]byte, error) {
	if w.robots != nil && !w.robots.Allowed(ctx, pageURL, ua) {
		return nil, errDisallowed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("%w: %q", errNotHTML, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, w.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler corpo: %w", err)
	}
	return body, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d", errHTTPStatus, e.code)
}

func (e *statusError) Unwrap() error {
	return errHTTPStatus
}

func (w *WebExtractor) fetchErrorMessage(err error) string {
	var se *statusError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf(MsgHTTPStatus, se.code)
	case errors.Is(err, errNotHTML):
		return MsgNotHTML
	case errors.Is(err, errDisallowed):
		return MsgRobotsDisallowed
	case isTimeout(err):
		return fmt.Sprintf(MsgTimeout, int(w.config.Timeout.Seconds()))
	default:
		return fmt.Sprintf(MsgFetchError, shorten(errorText(err), 100))
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorText remove o prefixo "Get \"url\":" que o net/http adiciona
func errorText(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// extractMainContent remove ruído com goquery e aplica readability no HTML resultante
func extractMainContent(body []byte, pageURL *url.URL) (text, title string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WebExtractor] Readability entrou em pânico: %v", r)
			text, title, ok = "", "", false
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", false
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	cleaned, err := doc.Html()
	if err != nil {
		return "", "", false
	}

	article, err := readability.FromReader(strings.NewReader(cleaned), pageURL)
	if err != nil {
		return "", "", false
	}
	return strings.TrimSpace(article.TextContent), article.Title, true
}

// extractParagraphs junta os <p> do artigo (ou do body) com mais de 20 caracteres
func extractParagraphs(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, nav, footer, aside, iframe, noscript").Remove()

	scope := doc.Find("article").First()
	if scope.Length() == 0 {
		scope = doc.Find("main").First()
	}
	if scope.Length() == 0 {
		scope = doc.Find(`[role="main"]`).First()
	}
	if scope.Length() == 0 {
		scope = doc.Find("body")
	}

	var texts []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if runeLen(t) > minParagraphChars {
			texts = append(texts, t)
		}
	})
	return strings.Join(texts, "\n\n")
}
