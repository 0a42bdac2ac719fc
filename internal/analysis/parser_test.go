package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json puro", `{"a":1}`, `{"a":1}`},
		{"bloco json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bloco sem linguagem", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"texto ao redor", "Resposta: {\"a\":1} fim.", `{"a":1}`},
		{"sem json", "nada aqui", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := extractJSON(test.input); got != test.expected {
				t.Errorf("extractJSON(%q) = %q; expected %q", test.input, got, test.expected)
			}
		})
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Verdict
	}{
		{"Provavel fake", models.VerdictFake},
		{"Provável Fake", models.VerdictFake},
		{"falso", models.VerdictFake},
		{"Provavel verdadeiro", models.VerdictTrue},
		{"Provável verdadeiro", models.VerdictTrue},
		{"Inconclusivo", models.VerdictInconclusive},
		{"", models.VerdictInconclusive},
		{"sem opinião", models.VerdictInconclusive},
		{"  VERDADEIRO. ", models.VerdictTrue},
		{"Provavelmente falso", models.VerdictFake},
		{"Não verdadeiro", models.VerdictInconclusive},
		{"Nao e verdadeiro", models.VerdictInconclusive},
		{"Not true", models.VerdictInconclusive},
		{"Untrue", models.VerdictInconclusive},
		{"não é falso", models.VerdictInconclusive},
		{"Not fake", models.VerdictInconclusive},
		{"Parcialmente verdadeiro", models.VerdictInconclusive},
	}

	for _, test := range tests {
		if got := NormalizeVerdict(test.input); got != test.expected {
			t.Errorf("NormalizeVerdict(%q) = %q; expected %q", test.input, got, test.expected)
		}
	}
}

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0.85, 85},
		{1, 100},
		{75, 75},
		{250, 100},
		{-1, 0},
		{0, 0},
	}

	for _, test := range tests {
		if got := normalizeConfidence(test.input); got != test.expected {
			t.Errorf("normalizeConfidence(%v) = %v; expected %v", test.input, got, test.expected)
		}
	}
}

func TestParseReplyKeepsOnlyHTTPLinks(t *testing.T) {
	raw := `{"similar":{"externalChecks":[
		{"title":"Checagem","url":"javascript:alert(document.cookie)","publisher":"Lupa"},
		{"url":"vbscript:x"},
		{"title":"Oficial","url":"https://aosfatos.org/x"}
	]}}`

	result, _, err := parseReply(raw)
	require.NoError(t, err)
	require.Len(t, result.Similar.ExternalChecks, 2)
	assert.Equal(t, "Checagem", result.Similar.ExternalChecks[0].Title)
	assert.Empty(t, result.Similar.ExternalChecks[0].URL)
	assert.Equal(t, "https://aosfatos.org/x", result.Similar.ExternalChecks[1].URL)
}
