package models

import "time"

// TrendItem agrega ocorrências de um mesmo conteúdo (mesmo fingerprint)
type TrendItem struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Reason               string    `json:"reason"`
	Fingerprint          string    `json:"fingerprint"`
	SampleClaims         []Claim   `json:"sampleClaims"`
	Occurrences          int       `json:"occurrences"`
	ScoreFakeProbability int       `json:"scoreFakeProbability"`
	LastSeen             time.Time `json:"lastSeen"`
}

// TrendUpdate são os campos alterados a cada nova ocorrência
type TrendUpdate struct {
	Occurrences          int
	ScoreFakeProbability int
	LastSeen             time.Time
}

// AnalysisRecord é a linha persistida na coleção analyses
type AnalysisRecord struct {
	ID             string    `json:"id"`
	InputType      InputType `json:"inputType"`
	InputSummary   string    `json:"inputSummary"`
	Headline       string    `json:"headline"`
	Scores         Scores    `json:"scores"`
	Verdict        Verdict   `json:"verdict"`
	ReportMarkdown string    `json:"reportMarkdown"`
	Claims         []Claim   `json:"claims"`
	Fingerprint    string    `json:"fingerprint"`
	Flagged        bool      `json:"flagged"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FlaggedThreshold é o score de fake a partir do qual a análise é sinalizada
const FlaggedThreshold = 70

// NewAnalysisRecord monta o registro persistido a partir do resultado
func NewAnalysisRecord(result *AnalysisResult, inputType InputType, inputSummary string) *AnalysisRecord {
	claims := result.Claims
	if claims == nil {
		claims = []Claim{}
	}
	verdict := result.Summary.Verdict
	if verdict == "" {
		verdict = VerdictInconclusive
	}
	return &AnalysisRecord{
		ID:             result.Meta.ID,
		InputType:      inputType,
		InputSummary:   inputSummary,
		Headline:       result.Summary.Headline,
		Scores:         result.Scores,
		Verdict:        verdict,
		ReportMarkdown: result.ReportMarkdown,
		Claims:         claims,
		Fingerprint:    result.Meta.Fingerprint,
		Flagged:        result.Scores.FakeProbability >= FlaggedThreshold,
		CreatedAt:      result.Meta.CreatedAt,
	}
}

// AlertSuggestion é a sugestão manual de um conteúdo para os alertas
type AlertSuggestion struct {
	Title          string `json:"title" binding:"required,min=3,max=500"`
	Description    string `json:"description" binding:"max=2000"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}
