// Package report gera o relatório em markdown a partir do resultado estruturado.
//
// O relatório é sempre regenerado no servidor; qualquer markdown vindo do modelo é
// descartado. Render é puro: o mesmo resultado produz sempre o mesmo texto.
package report

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// Faixas de risco
const (
	HighRiskThreshold   = 70
	MediumRiskThreshold = 40
)

// DefaultRecommendations são usadas quando o modelo não sugere nenhuma
var DefaultRecommendations = []string{
	"Verifique as afirmacoes em agencias de checagem profissionais",
	"Compare com multiplas fontes antes de compartilhar",
	"Desconfie de conteudos com apelo emocional exagerado",
	"Observe se ha fontes citadas e se sao confiaveis",
}

// RiskLevel classifica um score em alto, médio ou baixo
type RiskLevel string

const (
	RiskHigh   RiskLevel = "alto"
	RiskMedium RiskLevel = "medio"
	RiskLow    RiskLevel = "baixo"
)

// Risk retorna o nível de risco de um score
func Risk(score int) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Emoji retorna o indicador visual do nível
func (r RiskLevel) Emoji() string {
	switch r {
	case RiskHigh:
		return "🔴"
	case RiskMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// VerdictEmoji retorna o ícone do veredito
func VerdictEmoji(v models.Verdict) string {
	switch v {
	case models.VerdictFake:
		return "❌"
	case models.VerdictTrue:
		return "✅"
	default:
		return "⚠️"
	}
}

// Render gera o relatório markdown
func Render(result *models.AnalysisResult) string {
	if result == nil {
		result = &models.AnalysisResult{}
	}
	var b strings.Builder

	verdict := result.Summary.Verdict
	if verdict == "" {
		verdict = models.VerdictInconclusive
	}

	b.WriteString("# 📰 Resultado da Analise\n\n")
	fmt.Fprintf(&b, "### %s Veredito: %s\n\n", VerdictEmoji(verdict), verdict)
	fmt.Fprintf(&b, "**%s**\n\n", text(result.Summary.Headline))
	fmt.Fprintf(&b, "%s\n\n", text(result.Summary.OneParagraph))
	b.WriteString("---\n\n")

	s := result.Scores
	b.WriteString("## 📊 Scores\n\n")
	b.WriteString("| Metrica | Valor | Nivel |\n")
	b.WriteString("|---------|------:|-------|\n")
	scoreRow(&b, "Risco de fake", s.FakeProbability, s.FakeProbability)
	// Verdade verificável alta é bom sinal: o nível usa o complemento
	scoreRow(&b, "Verificavel", s.VerifiableTruth, 100-s.VerifiableTruth)
	scoreRow(&b, "Vies / Framing", s.BiasFraming, s.BiasFraming)
	scoreRow(&b, "Risco de manipulacao", s.ManipulationRisk, s.ManipulationRisk)
	b.WriteString("\n")

	if len(result.Claims) > 0 {
		b.WriteString("## 🔍 Avaliacao das afirmacoes\n\n")
		for i, c := range result.Claims {
			fmt.Fprintf(&b, "### %d. \"%s\"\n\n", i+1, text(c.Claim))
			fmt.Fprintf(&b, "- **Avaliacao:** %s\n", text(c.Assessment))
			fmt.Fprintf(&b, "- **Confianca:** %s%%\n\n", formatConfidence(c.Confidence))
		}
	}

	if checks := result.Similar.ExternalChecks; len(checks) > 0 {
		b.WriteString("## 🌐 Fontes externas de checagem\n\n")
		for _, ch := range checks {
			writeExternalCheck(&b, ch)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 💡 Recomendacoes\n\n")
	recs := nonEmpty(result.Recommendations)
	if len(recs) == 0 {
		recs = DefaultRecommendations
	}
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, text(r))
	}
	b.WriteString("\n")

	if queries := nonEmpty(result.Similar.SearchQueries); len(queries) > 0 {
		b.WriteString("## 🔎 Pesquise voce mesmo\n\n")
		for _, q := range queries {
			fmt.Fprintf(&b, "- `%s`\n", strings.ReplaceAll(inline(q), "`", "'"))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("*Analise assistida por IA (Gemini). Nao substitui checagem profissional.*\n")
	b.WriteString("*Consulte: [Agencia Lupa](https://lupa.uol.com.br), [Aos Fatos](https://aosfatos.org), [Fato ou Fake](https://g1.globo.com/fato-ou-fake)*\n")

	return b.String()
}

func scoreRow(b *strings.Builder, label string, value, riskBasis int) {
	fmt.Fprintf(b, "| %s | %d%% | %s |\n", label, value, Risk(riskBasis).Emoji())
}

// writeExternalCheck aceita checagens só com título (modelos às vezes devolvem strings)
func writeExternalCheck(b *strings.Builder, ch models.ExternalCheck) {
	title := text(ch.Title)
	link := SafeURL(ch.URL)
	publisher := text(ch.Publisher)
	switch {
	case link != "" && publisher != "":
		fmt.Fprintf(b, "- **[%s](%s)** — *%s*\n", title, link, publisher)
	case link != "":
		fmt.Fprintf(b, "- **[%s](%s)**\n", title, link)
	case publisher != "":
		fmt.Fprintf(b, "- **%s** — *%s*\n", title, publisher)
	default:
		fmt.Fprintf(b, "- %s\n", title)
	}
	if summary := text(ch.Summary); summary != "" {
		fmt.Fprintf(b, "  %s\n", summary)
	}
}

func formatConfidence(v float64) string {
	if v < 0 {
		return "?"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inline mantém o campo numa única linha do markdown
func inline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// markdownEscaper neutraliza links, ênfase e HTML vindos do modelo
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// text prepara um campo livre do modelo para entrar no relatório como texto literal
func text(s string) string {
	return markdownEscaper.Replace(inline(s))
}

var linkParens = strings.NewReplacer("(", "%28", ")", "%29")

// SafeURL devolve a URL normalizada quando é http(s) absoluta, ou vazio
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\r\n<>") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return linkParens.Replace(u.String())
	default:
		return ""
	}
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
