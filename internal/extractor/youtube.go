package extractor

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
)

// PreferredCaptionLanguage é o idioma tentado primeiro
const PreferredCaptionLanguage = "pt"

var (
	youtubeURLPattern = regexp.MustCompile(`^https?://(?:www\.|m\.)?(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/)|youtu\.be/)([\w-]{11})`)
	youtubeIDPattern  = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/)|youtu\.be/)([\w-]{11})`)
)

// ErrNoCaptions indica que o vídeo não tem legendas públicas
var ErrNoCaptions = errors.New("no transcript available for this video")

// IsYouTubeURL indica se a URL aponta para um vídeo do YouTube
func IsYouTubeURL(rawURL string) bool {
	return youtubeURLPattern.MatchString(canonicalVideoURL(rawURL))
}

// VideoID extrai o ID de 11 caracteres do vídeo
func VideoID(rawURL string) (string, bool) {
	m := youtubeIDPattern.FindStringSubmatch(canonicalVideoURL(rawURL))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// canonicalVideoURL põe esquema e host em minúsculas; o caminho (e o ID) fica intacto
func canonicalVideoURL(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	u, ok := ParseLink(raw)
	if !ok {
		return raw
	}
	return u.Scheme + "://" + strings.ToLower(u.Host) + u.RequestURI()
}

// noCaptionMarkers identificam mensagens de erro de "sem legendas" nas bibliotecas de transcrição
var noCaptionMarkers = []string{
	"disabled",
	"not available",
	"could not retrieve a transcript",
	"could not find",
	"transcript is disabled",
	"no transcript",
	"no captions",
}

// IsNoCaptionsError separa "vídeo sem legendas" (terminal) de falhas transitórias
func IsNoCaptionsError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoCaptions) || errors.Is(err, youtube.ErrTranscriptDisabled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range noCaptionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// CaptionSegment é um trecho da legenda
type CaptionSegment struct {
	Text string
}

// CaptionFetcher busca legendas de um vídeo. lang vazio significa qualquer idioma disponível.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID, lang string) ([]CaptionSegment, error)
}

// YouTubeExtractor obtém a transcrição de vídeos do YouTube
type YouTubeExtractor struct {
	fetcher  CaptionFetcher
	timeout  time.Duration
	minChars int
	maxChars int
}

// NewYouTubeExtractor cria o extrator
func NewYouTubeExtractor(fetcher CaptionFetcher, timeout time.Duration) *YouTubeExtractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &YouTubeExtractor{
		fetcher:  fetcher,
		timeout:  timeout,
		minChars: DefaultMinChars,
		maxChars: DefaultMaxChars,
	}
}

// Extract obtém a legenda preferindo português, com uma nova tentativa sem preferência de idioma
func (y *YouTubeExtractor) Extract(ctx context.Context, rawURL string) models.ExtractionResult {
	videoID, ok := VideoID(rawURL)
	if !ok {
		log.Printf("[YouTube] ID do vídeo não encontrado em %s", shorten(rawURL, 80))
		return models.ExtractionFailure(MsgYouTubeNoID)
	}

	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	warnings := []string{}
	segments, err := y.fetcher.Fetch(ctx, videoID, PreferredCaptionLanguage)
	if err != nil || len(segments) == 0 {
		if err != nil {
			log.Printf("[YouTube] Legenda em %s falhou para %s: %v. Tentando sem idioma...", PreferredCaptionLanguage, videoID, err)
		}
		segments, err = y.fetcher.Fetch(ctx, videoID, "")
		if err != nil {
			return y.classifyFailure(videoID, err)
		}
		if len(segments) == 0 {
			return models.ExtractionFailure(MsgYouTubeNoCaptions, WarnYouTubeNoTranscript)
		}
		warnings = append(warnings, WarnAlternateLanguage)
	}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	text := sanitize.CollapseWhitespace(html.UnescapeString(strings.Join(parts, " ")))

	if runeLen(text) < y.minChars {
		log.Printf("[YouTube] Legenda muito curta: %d caracteres para %s", runeLen(text), videoID)
		return models.ExtractionFailure(MsgYouTubeTooShort, append(warnings, WarnYouTubeTooShort)...)
	}

	prefix := fmt.Sprintf("[Transcrição do vídeo YouTube: %s]\n\n", videoID)
	text, truncated := capText(text, y.maxChars-runeLen(prefix))
	if truncated {
		warnings = append(warnings, WarnTranscriptTruncated)
	}

	log.Printf("[YouTube] Transcrição obtida: %d caracteres, %d segmentos", runeLen(text), len(segments))
	return models.ExtractionResult{
		OK:        true,
		Text:      prefix + text,
		Title:     "Vídeo YouTube: " + videoID,
		SourceURL: strings.TrimSpace(rawURL),
		Warnings:  warnings,
	}
}

func (y *YouTubeExtractor) classifyFailure(videoID string, err error) models.ExtractionResult {
	if IsNoCaptionsError(err) {
		log.Printf("[YouTube] Sem legendas públicas para %s", videoID)
		return models.ExtractionFailure(MsgYouTubeNoCaptions, WarnYouTubeNoTranscript)
	}
	log.Printf("[YouTube] Erro técnico para %s: %v", videoID, err)
	return models.ExtractionFailure(fmt.Sprintf(MsgYouTubeTechnical, shorten(err.Error(), 100)), WarnYouTubeError)
}

// KkdaiCaptionFetcher implementa CaptionFetcher com github.com/kkdai/youtube
type KkdaiCaptionFetcher struct {
	client youtube.Client
}

// NewKkdaiCaptionFetcher cria o fetcher. httpClient nil usa o cliente padrão.
func NewKkdaiCaptionFetcher(httpClient *http.Client) *KkdaiCaptionFetcher {
	return &KkdaiCaptionFetcher{client: youtube.Client{HTTPClient: httpClient}}
}

// Fetch busca a transcrição no idioma pedido ou na primeira faixa disponível
func (k *KkdaiCaptionFetcher) Fetch(ctx context.Context, videoID, lang string) ([]CaptionSegment, error) {
	video, err := k.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter vídeo %s: %w", videoID, err)
	}

	if lang == "" {
		if len(video.CaptionTracks) == 0 {
			return nil, ErrNoCaptions
		}
		lang = video.CaptionTracks[0].LanguageCode
	} else {
		code, ok := findCaptionTrack(video, lang)
		if !ok {
			return nil, ErrNoCaptions
		}
		lang = code
	}

	transcript, err := k.client.GetTranscriptCtx(ctx, video, lang)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter transcrição (%s): %w", lang, err)
	}

	segments := make([]CaptionSegment, 0, len(transcript))
	for _, s := range transcript {
		segments = append(segments, CaptionSegment{Text: s.Text})
	}
	return segments, nil
}

// findCaptionTrack aceita variantes regionais ("pt" casa com "pt-BR")
func findCaptionTrack(video *youtube.Video, lang string) (string, bool) {
	for _, track := range video.CaptionTracks {
		if track.LanguageCode == lang || strings.HasPrefix(track.LanguageCode, lang+"-") {
			return track.LanguageCode, true
		}
	}
	return "", false
}
