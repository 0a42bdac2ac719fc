// Package extractor transforma a entrada do usuário em texto canônico: páginas web,
// legendas do YouTube e áudio transcrito. O Router decide qual extrator usar e
// detecta links do próprio site.
package extractor

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// DefaultSelfReferenceDomains identificam o próprio site
var DefaultSelfReferenceDomains = []string{"fakenewszeiton", "fake-newszei-ton", "fakenewsverificaton"}

// Extractor é implementado por WebExtractor, YouTubeExtractor e AudioExtractor
type Extractor interface {
	Extract(ctx context.Context, content string) models.ExtractionResult
}

// OutcomeKind é o resultado do roteamento
type OutcomeKind int

const (
	// OutcomePassThrough: o conteúdo segue direto para o modelo (texto, imagem, áudio sem transcrição)
	OutcomePassThrough OutcomeKind = iota
	// OutcomeExtracted: um extrator produziu texto
	OutcomeExtracted
	// OutcomeSelfReference: link do próprio site, sem chamada ao modelo
	OutcomeSelfReference
	// OutcomeFailed: a extração falhou com mensagem para o usuário
	OutcomeFailed
	// OutcomeInvalid: a URL é inválida
	OutcomeInvalid
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePassThrough:
		return "pass_through"
	case OutcomeExtracted:
		return "extracted"
	case OutcomeSelfReference:
		return "self_reference"
	case OutcomeFailed:
		return "failed"
	case OutcomeInvalid:
		return "invalid"
	}
	return "unknown"
}

// Outcome descreve a decisão do Router
type Outcome struct {
	Kind       OutcomeKind
	InputType  models.InputType
	Extractor  string
	URL        string
	Extraction models.ExtractionResult
}

// RouterConfig agrupa os extratores. Audio nil faz o áudio seguir inline para o modelo.
type RouterConfig struct {
	Web                  Extractor
	YouTube              Extractor
	Audio                Extractor
	SelfReferenceDomains []string
}

// Router classifica a entrada e despacha para o extrator adequado
type Router struct {
	web         Extractor
	youtube     Extractor
	audio       Extractor
	selfDomains []string
}

// NewRouter cria o Router
func NewRouter(cfg RouterConfig) *Router {
	domains := make([]string, 0, len(cfg.SelfReferenceDomains))
	for _, d := range cfg.SelfReferenceDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		domains = DefaultSelfReferenceDomains
	}
	return &Router{web: cfg.Web, youtube: cfg.YouTube, audio: cfg.Audio, selfDomains: domains}
}

// Route decide o caminho da entrada e executa a extração quando necessário
func (r *Router) Route(ctx context.Context, inputType models.InputType, content string) Outcome {
	switch inputType {
	case models.InputLink:
		return r.routeLink(ctx, content)
	case models.InputAudio:
		if r.audio == nil {
			return Outcome{Kind: OutcomePassThrough, InputType: inputType}
		}
		ext := r.audio.Extract(ctx, content)
		return r.outcome(ext, models.InputAudioTranscript, "audio", "")
	default:
		return Outcome{Kind: OutcomePassThrough, InputType: inputType}
	}
}

func (r *Router) routeLink(ctx context.Context, content string) Outcome {
	raw := strings.TrimSpace(content)
	u, ok := ParseLink(raw)
	if !ok {
		return Outcome{
			Kind:       OutcomeInvalid,
			InputType:  models.InputLink,
			Extraction: models.ExtractionFailure(MsgInvalidURL),
		}
	}

	if r.IsSelfReference(u) {
		log.Printf("[Router] Link do próprio site: %s", u.Host)
		return Outcome{Kind: OutcomeSelfReference, InputType: models.InputLink, URL: raw}
	}

	if IsYouTubeURL(raw) {
		log.Printf("[Router] Encaminhando para o extrator do YouTube: %s", shorten(raw, 80))
		return r.outcome(r.youtube.Extract(ctx, raw), models.InputYouTubeTranscript, "youtube", raw)
	}

	log.Printf("[Router] Encaminhando para o extrator web: %s", shorten(raw, 80))
	return r.outcome(r.web.Extract(ctx, raw), models.InputLink, "web", raw)
}

func (r *Router) outcome(ext models.ExtractionResult, effective models.InputType, extractor, rawURL string) Outcome {
	kind := OutcomeExtracted
	if !ext.OK || strings.TrimSpace(ext.Text) == "" {
		kind = OutcomeFailed
		if ext.Error == "" {
			ext.Error = models.MsgExtractionEmpty
		}
		ext.OK = false
	}
	if ext.Warnings == nil {
		ext.Warnings = []string{}
	}
	return Outcome{Kind: kind, InputType: effective, Extractor: extractor, URL: rawURL, Extraction: ext}
}

// ParseLink valida uma URL http(s) com host
func ParseLink(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

// IsSelfReference verifica se o host pertence ao próprio site (domínio, subdomínio ou alias)
func (r *Router) IsSelfReference(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, d := range r.selfDomains {
		if strings.Contains(d, ".") {
			if host == d || strings.HasSuffix(host, "."+d) {
				return true
			}
			continue
		}
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}
