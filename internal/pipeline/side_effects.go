package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/events"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/trends"
)

// Nomes das tarefas de efeito colateral
const (
	TaskPersist = "persist"
	TaskTrend   = "trend"
	TaskPublish = "publish"
)

// MaxInputSummaryChars limita o trecho do texto guardado com a análise
const MaxInputSummaryChars = 500

// dispatchSideEffects agenda persistência, tendência e evento sem bloquear a resposta
func (p *Pipeline) dispatchSideEffects(req models.AnalysisRequest, in analyzedInput, result *models.AnalysisResult) {
	record := models.NewAnalysisRecord(result, req.InputType, inputSummary(req, in))

	if p.store != nil {
		p.dispatcher.Submit(events.Task{Name: TaskPersist, Run: func(ctx context.Context) error {
			ctx, span := observability.StartSpan(ctx, "pipeline.persist")
			err := p.store.InsertAnalysis(ctx, record)
			observability.EndSpan(span, err)
			return err
		}})
	}

	if p.trends != nil && result.Meta.Mode != models.ModeSelfReference {
		sighting := trends.Sighting{
			Fingerprint:  result.Meta.Fingerprint,
			Headline:     result.Summary.Headline,
			Reason:       result.Summary.OneParagraph,
			Score:        result.Scores.FakeProbability,
			SampleClaims: result.Claims,
		}
		p.dispatcher.Submit(events.Task{Name: TaskTrend, Run: func(ctx context.Context) error {
			outcome, err := p.trends.Upsert(ctx, sighting)
			if err == nil && outcome != trends.Skipped {
				log.Printf("[Pipeline] Tendência %s: %s", outcome, shortFingerprint(sighting.Fingerprint))
			}
			return err
		}})
	}

	event := events.NewAnalysisEvent(result)
	p.dispatcher.Submit(events.Task{Name: TaskPublish, Run: func(ctx context.Context) error {
		return p.sink.Publish(ctx, event)
	}})
}

// inputSummary é o resumo guardado com a análise: a URL entre colchetes para links
// e o início do texto analisado. Mídia guarda apenas o tipo MIME.
func inputSummary(req models.AnalysisRequest, in analyzedInput) string {
	var prefix string
	if req.InputType == models.InputLink {
		prefix = fmt.Sprintf("[%s] ", strings.TrimSpace(req.Content))
	}
	if in.media != nil {
		return prefix + fmt.Sprintf("[%s, %d bytes]", in.media.MIMEType, len(in.media.Data))
	}
	text := []rune(in.text)
	if len(text) > MaxInputSummaryChars {
		text = text[:MaxInputSummaryChars]
	}
	return prefix + string(text)
}

// OnSideEffectFailure registra a falha na métrica; usado como callback do Dispatcher
func OnSideEffectFailure(m *observability.Metrics) func(task string, err error) {
	return func(task string, err error) {
		m.SideEffectFailed(task)
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
