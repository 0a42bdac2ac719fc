package analysis

import (
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
)

// Prompts reúne a instrução de neutralidade e as instruções por modalidade.
// Campos vazios caem nos textos padrão.
type Prompts struct {
	System string
	Text   string
	Image  string
	Audio  string
}

const defaultSystemPrompt = `Você é um analista de conteúdo neutro. Analise o conteúdo a seguir em busca de sinais de desinformação, viés e manipulação.

REGRAS:
- NUNCA apoie candidatos, partidos ou ideologias
- Avalie SOMENTE afirmações explícitas, não opiniões ou retórica
- Separe fatos, opiniões e ausência de evidência
- Em contextos políticos, avalie apenas afirmações, nunca julgue pessoas ou grupos
- Prefira "Inconclusivo" quando não houver base suficiente para concluir
- Use linguagem neutra, sem retórica partidária
- Em imagens, descreva o que vê e avalie textos e afirmações visíveis
- Em transcrições de áudio ou vídeo, avalie as afirmações faladas
- Em externalChecks, considere se agências de checagem (Agencia Lupa, Aos Fatos, Fato ou Fake/g1, Estadao Verifica, AFP Checamos, Reuters Fact Check, AP Fact Check, PolitiFact, Snopes) provavelmente cobriram o tema. Se sim, inclua objetos com title, url, publisher e summary. Se não tiver certeza, retorne uma lista vazia.
- Escreva headline, oneParagraph, assessment e recommendations em português do Brasil

Retorne APENAS JSON válido (sem blocos de código markdown) com estes campos:
{
  "scores": { "fakeProbability": 0-100, "verifiableTruth": 0-100, "biasFraming": 0-100, "manipulationRisk": 0-100 },
  "summary": { "headline": string, "oneParagraph": string, "verdict": "Provavel fake" | "Provavel verdadeiro" | "Inconclusivo" },
  "claims": [{ "claim": string, "assessment": string, "confidence": 0-100 }],
  "similar": { "searchQueries": string[], "externalChecks": [{ "title": string, "url": string, "publisher": string, "summary": string }] },
  "recommendations": string[],
  "warnings": string[]
}

IMPORTANTE: NÃO inclua o campo reportMarkdown. O servidor gera o relatório a partir dos dados estruturados.`

const (
	defaultTextInstruction  = "Conteúdo para analisar:"
	defaultImageInstruction = "O usuário enviou uma imagem. Descreva o que vê e analise textos, afirmações ou sinais de manipulação presentes nela."
	defaultAudioInstruction = "O usuário enviou um arquivo de áudio. Transcreva o que ouve e analise afirmações, viés ou sinais de manipulação."
	transcriptInstruction   = "Transcrição de vídeo ou áudio para analisar:"
)

// DefaultPrompts retorna os textos padrão
func DefaultPrompts() Prompts {
	return Prompts{
		System: defaultSystemPrompt,
		Text:   defaultTextInstruction,
		Image:  defaultImageInstruction,
		Audio:  defaultAudioInstruction,
	}
}

// withDefaults preenche campos vazios
func (p Prompts) withDefaults() Prompts {
	d := DefaultPrompts()
	if strings.TrimSpace(p.System) == "" {
		p.System = d.System
	}
	if strings.TrimSpace(p.Text) == "" {
		p.Text = d.Text
	}
	if strings.TrimSpace(p.Image) == "" {
		p.Image = d.Image
	}
	if strings.TrimSpace(p.Audio) == "" {
		p.Audio = d.Audio
	}
	return p
}

// instructionFor retorna a instrução específica da modalidade
func (p Prompts) instructionFor(inputType models.InputType) string {
	switch inputType {
	case models.InputImage:
		return p.Image
	case models.InputAudio:
		return p.Audio
	case models.InputYouTubeTranscript, models.InputAudioTranscript:
		return transcriptInstruction
	default:
		return p.Text
	}
}
