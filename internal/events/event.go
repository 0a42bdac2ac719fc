package events

import (
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// TypeAnalysisCompleted é o tipo do evento publicado a cada análise
const TypeAnalysisCompleted = "analysis.completed"

// AnalysisEvent resume uma análise concluída para consumidores externos
type AnalysisEvent struct {
	Type        string           `json:"type"`
	ID          string           `json:"id"`
	InputType   models.InputType `json:"inputType"`
	Mode        models.Mode      `json:"mode"`
	Verdict     models.Verdict   `json:"verdict"`
	Scores      models.Scores    `json:"scores"`
	Fingerprint string           `json:"fingerprint"`
	SourceURL   string           `json:"sourceUrl,omitempty"`
	Flagged     bool             `json:"flagged"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// NewAnalysisEvent monta o evento a partir do resultado
func NewAnalysisEvent(result *models.AnalysisResult) AnalysisEvent {
	return AnalysisEvent{
		Type:        TypeAnalysisCompleted,
		ID:          result.Meta.ID,
		InputType:   result.Meta.InputType,
		Mode:        result.Meta.Mode,
		Verdict:     result.Summary.Verdict,
		Scores:      result.Scores,
		Fingerprint: result.Meta.Fingerprint,
		SourceURL:   result.Meta.SourceURL,
		Flagged:     result.Scores.FakeProbability >= models.FlaggedThreshold,
		CreatedAt:   result.Meta.CreatedAt,
	}
}
