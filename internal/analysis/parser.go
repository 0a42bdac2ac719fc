package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
)

// modelReply espelha o JSON pedido ao modelo, aceitando tipos frouxos
type modelReply struct {
	Meta *struct {
		Warnings flexStrings `json:"warnings"`
	} `json:"meta"`
	Scores *struct {
		FakeProbability  flexNumber `json:"fakeProbability"`
		VerifiableTruth  flexNumber `json:"verifiableTruth"`
		BiasFraming      flexNumber `json:"biasFraming"`
		ManipulationRisk flexNumber `json:"manipulationRisk"`
	} `json:"scores"`
	Summary *struct {
		Headline     string `json:"headline"`
		OneParagraph string `json:"oneParagraph"`
		Verdict      string `json:"verdict"`
	} `json:"summary"`
	Claims []struct {
		Claim      string     `json:"claim"`
		Assessment string     `json:"assessment"`
		Confidence flexNumber `json:"confidence"`
	} `json:"claims"`
	Similar *struct {
		SearchQueries  flexStrings         `json:"searchQueries"`
		ExternalChecks []flexExternalCheck `json:"externalChecks"`
	} `json:"similar"`
	Recommendations flexStrings `json:"recommendations"`
	Warnings        flexStrings `json:"warnings"`
}

// flexNumber aceita 85, 85.5, "85" e "85%"
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		s = strings.ReplaceAll(s, ",", ".")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = flexNumber(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*n = flexNumber(v)
	return nil
}

// flexStrings aceita lista de strings, string única ou lista mista
type flexStrings []string

func (s *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err == nil && strings.TrimSpace(single) != "" {
			*s = flexStrings{single}
		}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	out := make(flexStrings, 0, len(items))
	for _, item := range items {
		var v string
		if err := json.Unmarshal(item, &v); err == nil && strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	*s = out
	return nil
}

// flexExternalCheck aceita objeto completo ou apenas uma string com o título
type flexExternalCheck models.ExternalCheck

func (c *flexExternalCheck) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err == nil {
			c.Title = strings.TrimSpace(title)
		}
		return nil
	}
	var obj models.ExternalCheck
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	*c = flexExternalCheck(obj)
	return nil
}

// extractJSON extrai o objeto JSON de uma resposta que pode ter markdown ou texto ao redor
func extractJSON(s string) string {
	if idx := strings.Index(s, "```json"); idx != -1 {
		s = s[idx+7:]
		if endIdx := strings.Index(s, "```"); endIdx != -1 {
			s = s[:endIdx]
		}
	} else if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		if endIdx := strings.Index(s, "```"); endIdx != -1 {
			s = s[:endIdx]
		}
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	s = s[start:]
	if end := strings.LastIndex(s, "}"); end != -1 {
		s = s[:end+1]
	}
	return strings.TrimSpace(s)
}

// parseReply interpreta a resposta do modelo. Só falha quando não há objeto JSON utilizável.
func parseReply(raw string) (*models.AnalysisResult, []string, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, nil, ErrUnparseableReply
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(jsonStr), &reply); err != nil {
		return nil, nil, ErrUnparseableReply
	}

	result := &models.AnalysisResult{}
	var warnings []string
	warnings = append(warnings, reply.Warnings...)
	if reply.Meta != nil {
		warnings = append(warnings, reply.Meta.Warnings...)
	}

	if reply.Scores != nil {
		result.Scores = models.Scores{
			FakeProbability:  roundScore(reply.Scores.FakeProbability),
			VerifiableTruth:  roundScore(reply.Scores.VerifiableTruth),
			BiasFraming:      roundScore(reply.Scores.BiasFraming),
			ManipulationRisk: roundScore(reply.Scores.ManipulationRisk),
		}
	}

	if reply.Summary != nil {
		result.Summary = models.Summary{
			Headline:     strings.TrimSpace(reply.Summary.Headline),
			OneParagraph: strings.TrimSpace(reply.Summary.OneParagraph),
			Verdict:      NormalizeVerdict(reply.Summary.Verdict),
		}
	}

	for _, c := range reply.Claims {
		if strings.TrimSpace(c.Claim) == "" {
			continue
		}
		result.Claims = append(result.Claims, models.Claim{
			Claim:      strings.TrimSpace(c.Claim),
			Assessment: strings.TrimSpace(c.Assessment),
			Confidence: normalizeConfidence(float64(c.Confidence)),
		})
	}

	if reply.Similar != nil {
		result.Similar.SearchQueries = reply.Similar.SearchQueries
		for _, ch := range reply.Similar.ExternalChecks {
			// só links http(s) sobrevivem; o resto vira checagem sem link
			ch.URL = report.SafeURL(ch.URL)
			if ch.Title == "" && ch.URL == "" {
				continue
			}
			result.Similar.ExternalChecks = append(result.Similar.ExternalChecks, models.ExternalCheck(ch))
		}
	}

	result.Recommendations = reply.Recommendations
	return result, warnings, nil
}

func roundScore(n flexNumber) int {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return models.ClampScore(int(math.Round(v)))
}

// normalizeConfidence converte frações (0-1) em porcentagem e limita a [0,100]
func normalizeConfidence(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 0 && v <= 1 {
		v *= 100
	}
	if v > 100 {
		v = 100
	}
	return math.Round(v)
}

// verdictLabels aceita só os rótulos do conjunto fechado e sinônimos afirmativos exatos
var verdictLabels = map[string]models.Verdict{
	"provavel fake":            models.VerdictFake,
	"provavelmente fake":       models.VerdictFake,
	"provavel falso":           models.VerdictFake,
	"provavelmente falso":      models.VerdictFake,
	"fake":                     models.VerdictFake,
	"falso":                    models.VerdictFake,
	"false":                    models.VerdictFake,
	"likely fake":              models.VerdictFake,
	"likely false":             models.VerdictFake,
	"provavel verdadeiro":      models.VerdictTrue,
	"provavelmente verdadeiro": models.VerdictTrue,
	"verdadeiro":               models.VerdictTrue,
	"true":                     models.VerdictTrue,
	"likely true":              models.VerdictTrue,
	"inconclusivo":             models.VerdictInconclusive,
}

// NormalizeVerdict mapeia a resposta livre do modelo para o conjunto fechado de vereditos.
// Qualquer coisa fora dos rótulos conhecidos, inclusive negações, vira Inconclusivo.
func NormalizeVerdict(v string) models.Verdict {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, v)
	if err != nil {
		folded = v
	}
	folded = strings.ToLower(strings.Join(strings.Fields(folded), " "))
	folded = strings.TrimRight(folded, ".!")

	if verdict, ok := verdictLabels[folded]; ok {
		return verdict
	}
	return models.VerdictInconclusive
}
