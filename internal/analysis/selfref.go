package analysis

import (
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/fingerprint"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
)

// Textos fixos do resultado de auto-referência
const (
	SelfReferenceHeadline  = "Site oficial"
	SelfReferenceParagraph = "Este e o site oficial do FakeNewsZeiTon, nao sujeito a analise de fake news."
)

// SelfReference monta o resultado fixo para links do próprio site, sem chamar o modelo
func (i *Invoker) SelfReference(inputType models.InputType, sourceURL string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		OK: true,
		Meta: models.Meta{
			ID:          i.newID(),
			CreatedAt:   i.now(),
			InputType:   inputType,
			Language:    models.Language,
			Mode:        models.ModeSelfReference,
			Warnings:    []string{},
			Fingerprint: fingerprint.Of(strings.TrimSpace(sourceURL)),
			SourceURL:   sourceURL,
		},
		Scores: models.Scores{
			FakeProbability:  0,
			VerifiableTruth:  100,
			BiasFraming:      0,
			ManipulationRisk: 0,
		},
		Summary: models.Summary{
			Headline:     SelfReferenceHeadline,
			OneParagraph: SelfReferenceParagraph,
			Verdict:      models.VerdictTrue,
		},
		Claims:          []models.Claim{},
		Similar:         models.Similar{SearchQueries: []string{}, ExternalChecks: []models.ExternalCheck{}},
		Recommendations: []string{},
	}
	result.ReportMarkdown = report.Render(result)
	return result
}
