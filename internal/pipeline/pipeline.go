// Package pipeline orquestra uma análise: roteamento e extração, sanitização,
// chamada ao modelo e efeitos colaterais (persistência, tendências, eventos).
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/analysis"
	"github.com/fakenewsverificaton/verificaton-api/internal/events"
	"github.com/fakenewsverificaton/verificaton-api/internal/extractor"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/sanitize"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/fakenewsverificaton/verificaton-api/internal/trends"
	"go.opentelemetry.io/otel/attribute"
)

// Submitter recebe tarefas de efeito colateral
type Submitter interface {
	Submit(task events.Task) bool
}

// Config contém os limites do pipeline
type Config struct {
	MaxContentBytes int
	MaxTextChars    int
}

// Deps são os colaboradores do pipeline. Store, Trends, Sink e Metrics são opcionais.
type Deps struct {
	Router     *extractor.Router
	Invoker    *analysis.Invoker
	Store      storage.AnalysisStore
	Trends     *trends.Updater
	Sink       events.Sink
	Dispatcher Submitter
	Metrics    *observability.Metrics
}

// Pipeline executa análises
type Pipeline struct {
	cfg        Config
	router     *extractor.Router
	invoker    *analysis.Invoker
	store      storage.AnalysisStore
	trends     *trends.Updater
	sink       events.Sink
	dispatcher Submitter
	metrics    *observability.Metrics
}

// New cria o Pipeline
func New(cfg Config, deps Deps) *Pipeline {
	if cfg.MaxContentBytes <= 0 {
		cfg.MaxContentBytes = models.MaxContentBytes
	}
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = sanitize.DefaultMaxLength
	}
	sink := deps.Sink
	if sink == nil {
		sink = events.NopSink{}
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInlineDispatcher(nil)
	}
	return &Pipeline{
		cfg:        cfg,
		router:     deps.Router,
		invoker:    deps.Invoker,
		store:      deps.Store,
		trends:     deps.Trends,
		sink:       sink,
		dispatcher: dispatcher,
		metrics:    deps.Metrics,
	}
}

// Analyze executa o pipeline completo. Erros retornados são sempre *models.APIError.
func (p *Pipeline) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "pipeline.analyze",
		attribute.String("input_type", string(req.InputType)),
		attribute.Int("content_bytes", len(req.Content)),
	)

	result, in, err := p.run(ctx, req)
	observability.EndSpan(span, err)
	if err != nil {
		apiErr := models.AsAPIError(err)
		log.Printf("[Pipeline] Análise %s falhou: %v", req.InputType, apiErr)
		return nil, apiErr
	}

	p.metrics.ObserveAnalysis(string(result.Meta.InputType), string(result.Meta.Mode), string(result.Summary.Verdict), time.Since(start))
	if result.Meta.Mode == models.ModeFallback {
		p.metrics.ModelFallback()
	}

	p.dispatchSideEffects(req, in, result)
	return result, nil
}

// analyzedInput guarda o que de fato foi enviado ao modelo
type analyzedInput struct {
	inputType models.InputType
	text      string
	media     *models.Media
	sourceURL string
	warnings  []string
}

func (p *Pipeline) run(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, analyzedInput, error) {
	var in analyzedInput

	if len(req.Content) > p.cfg.MaxContentBytes {
		return nil, in, models.NewAPIError(models.ErrKindTooLarge, models.MsgTooLarge, nil)
	}
	if !req.InputType.IsValid() {
		return nil, in, models.NewAPIError(models.ErrKindValidation, models.MsgInputTypeInvalid, nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, in, models.NewAPIError(models.ErrKindValidation, models.MsgContentEmpty, nil)
	}

	if req.InputType == models.InputLink {
		u, ok := extractor.ParseLink(req.Content)
		if !ok {
			return nil, in, models.NewAPIError(models.ErrKindValidation, models.MsgInvalidURL, nil)
		}
		if !p.invoker.Configured() && !p.router.IsSelfReference(u) {
			return nil, in, models.NewAPIError(models.ErrKindServerMisconfig, models.MsgMisconfigured, analysis.ErrNotConfigured)
		}
	} else if !p.invoker.Configured() {
		return nil, in, models.NewAPIError(models.ErrKindServerMisconfig, models.MsgMisconfigured, analysis.ErrNotConfigured)
	}

	outcome, err := p.extract(ctx, req)
	if err != nil {
		return nil, in, err
	}

	if outcome.Kind == extractor.OutcomeSelfReference {
		in = analyzedInput{inputType: models.InputLink, sourceURL: outcome.URL, warnings: []string{}}
		return p.invoker.SelfReference(models.InputLink, outcome.URL), in, nil
	}

	in, err = p.prepare(ctx, req, outcome)
	if err != nil {
		return nil, in, err
	}

	result, err := p.invoke(ctx, in)
	if err != nil {
		return nil, in, err
	}

	if in.sourceURL != "" {
		result.Meta.SourceURL = in.sourceURL
	}
	if len(in.warnings) > 0 {
		result.Meta.Warnings = append(result.Meta.Warnings, in.warnings...)
	}
	return result, in, nil
}

func (p *Pipeline) extract(ctx context.Context, req models.AnalysisRequest) (extractor.Outcome, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.extract")
	outcome := p.router.Route(ctx, req.InputType, req.Content)
	span.SetAttributes(
		attribute.String("outcome", outcome.Kind.String()),
		attribute.String("extractor", outcome.Extractor),
	)

	if outcome.Extractor != "" {
		p.metrics.ObserveExtraction(outcome.Extractor, outcome.Kind.String())
	}

	var err error
	switch outcome.Kind {
	case extractor.OutcomeInvalid:
		err = models.NewAPIError(models.ErrKindValidation, models.MsgInvalidURL, nil)
	case extractor.OutcomeFailed:
		msg := outcome.Extraction.Error
		if msg == "" {
			msg = models.MsgExtractionEmpty
		}
		err = models.NewAPIError(models.ErrKindExtractionFailed, msg, nil)
	}
	observability.EndSpan(span, err)
	return outcome, err
}

// prepare sanitiza o texto ou decodifica a mídia que vai para o modelo
func (p *Pipeline) prepare(ctx context.Context, req models.AnalysisRequest, outcome extractor.Outcome) (analyzedInput, error) {
	_, span := observability.StartSpan(ctx, "pipeline.sanitize")
	in := analyzedInput{inputType: outcome.InputType, warnings: []string{}}

	var err error
	switch {
	case outcome.Kind == extractor.OutcomeExtracted:
		in.text = sanitize.Sanitize(outcome.Extraction.Text, p.cfg.MaxTextChars)
		in.sourceURL = outcome.Extraction.SourceURL
		if in.sourceURL == "" {
			in.sourceURL = outcome.URL
		}
		in.warnings = append(in.warnings, outcome.Extraction.Warnings...)
	case in.inputType.IsTextual():
		in.text = sanitize.Sanitize(req.Content, p.cfg.MaxTextChars)
	default:
		media, perr := models.ParseDataURL(req.Content)
		if perr != nil {
			err = models.NewAPIError(models.ErrKindValidation, models.MsgInvalidMedia, perr)
			break
		}
		in.media = media
	}

	if err == nil && in.media == nil && strings.TrimSpace(in.text) == "" {
		err = models.NewAPIError(models.ErrKindValidation, models.MsgContentEmpty, analysis.ErrEmptyInput)
	}
	observability.EndSpan(span, err)
	return in, err
}

func (p *Pipeline) invoke(ctx context.Context, in analyzedInput) (*models.AnalysisResult, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.invoke",
		attribute.String("effective_input_type", string(in.inputType)),
	)

	result, err := p.invoker.Analyze(ctx, analysis.Input{
		InputType: in.inputType,
		Text:      in.text,
		Media:     in.media,
	})
	switch {
	case err == nil:
		span.SetAttributes(attribute.String("mode", string(result.Meta.Mode)))
	case errors.Is(err, analysis.ErrNotConfigured):
		err = models.NewAPIError(models.ErrKindServerMisconfig, models.MsgMisconfigured, err)
	case errors.Is(err, analysis.ErrEmptyInput):
		err = models.NewAPIError(models.ErrKindValidation, models.MsgContentEmpty, err)
	default:
		err = models.NewAPIError(models.ErrKindAnalyzeFailed, models.MsgAnalyzeFailed, err)
	}
	observability.EndSpan(span, err)
	return result, err
}
