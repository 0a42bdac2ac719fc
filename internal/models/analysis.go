package models

import "time"

// InputType identifica a modalidade do conteúdo enviado pelo usuário
type InputType string

const (
	InputText  InputType = "text"
	InputLink  InputType = "link"
	InputImage InputType = "image"
	InputAudio InputType = "audio"

	// Tipos efetivos, atribuídos depois da extração
	InputYouTubeTranscript InputType = "youtube_transcript"
	InputAudioTranscript   InputType = "audio_transcript"
)

// IsValid verifica se o tipo pertence ao conjunto aceito na entrada da API
func (t InputType) IsValid() bool {
	switch t {
	case InputText, InputLink, InputImage, InputAudio:
		return true
	}
	return false
}

// IsTextual indica se o conteúdo analisado é texto (e portanto passa pelo sanitizer)
func (t InputType) IsTextual() bool {
	switch t {
	case InputText, InputLink, InputYouTubeTranscript, InputAudioTranscript:
		return true
	}
	return false
}

// Mode descreve como o resultado foi produzido
type Mode string

const (
	ModeNormal        Mode = "normal"
	ModeSelfReference Mode = "self_reference"
	ModeFallback      Mode = "fallback"
)

// Verdict é o conjunto fechado de vereditos
type Verdict string

const (
	VerdictFake         Verdict = "Provavel fake"
	VerdictTrue         Verdict = "Provavel verdadeiro"
	VerdictInconclusive Verdict = "Inconclusivo"
)

// Language é o idioma fixo dos relatórios
const Language = "pt-BR"

// AnalysisRequest representa uma requisição de análise
type AnalysisRequest struct {
	InputType      InputType `json:"inputType" binding:"required,oneof=text link image audio"`
	Content        string    `json:"content" binding:"required"`
	TurnstileToken string    `json:"turnstileToken,omitempty"`
}

// MaxContentBytes é o tamanho máximo de content antes de entrar no pipeline
const MaxContentBytes = 4_500_000

// AnalysisResult é a saída canônica do pipeline
type AnalysisResult struct {
	OK              bool     `json:"ok"`
	Meta            Meta     `json:"meta"`
	Scores          Scores   `json:"scores"`
	Summary         Summary  `json:"summary"`
	Claims          []Claim  `json:"claims"`
	Similar         Similar  `json:"similar"`
	Recommendations []string `json:"recommendations"`
	ReportMarkdown  string   `json:"reportMarkdown"`
}

// Meta contém metadados da análise
type Meta struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	InputType   InputType `json:"inputType"`
	Language    string    `json:"language"`
	Mode        Mode      `json:"mode"`
	Warnings    []string  `json:"warnings"`
	Fingerprint string    `json:"fingerprint"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
}

// Scores são inteiros entre 0 e 100
type Scores struct {
	FakeProbability  int `json:"fakeProbability"`
	VerifiableTruth  int `json:"verifiableTruth"`
	BiasFraming      int `json:"biasFraming"`
	ManipulationRisk int `json:"manipulationRisk"`
}

// Clamp limita todos os scores ao intervalo [0,100]
func (s Scores) Clamp() Scores {
	return Scores{
		FakeProbability:  ClampScore(s.FakeProbability),
		VerifiableTruth:  ClampScore(s.VerifiableTruth),
		BiasFraming:      ClampScore(s.BiasFraming),
		ManipulationRisk: ClampScore(s.ManipulationRisk),
	}
}

// ClampScore limita um valor ao intervalo [0,100]
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Summary resume o veredito
type Summary struct {
	Headline     string  `json:"headline"`
	OneParagraph string  `json:"oneParagraph"`
	Verdict      Verdict `json:"verdict"`
}

// Claim é uma afirmação explícita avaliada pelo modelo
type Claim struct {
	Claim      string  `json:"claim"`
	Assessment string  `json:"assessment"`
	Confidence float64 `json:"confidence"`
}

// Similar agrupa sugestões de busca e checagens externas
type Similar struct {
	SearchQueries  []string        `json:"searchQueries"`
	ExternalChecks []ExternalCheck `json:"externalChecks"`
}

// ExternalCheck referencia uma checagem de agência profissional
type ExternalCheck struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Publisher string `json:"publisher"`
	Summary   string `json:"summary"`
}

// ExtractionResult é o resultado de uma tentativa de extração.
// OK=true implica Text não vazio; OK=false implica Error com mensagem para o usuário.
type ExtractionResult struct {
	OK        bool     `json:"ok"`
	Text      string   `json:"text,omitempty"`
	Title     string   `json:"title,omitempty"`
	SourceURL string   `json:"sourceUrl,omitempty"`
	Error     string   `json:"error,omitempty"`
	Warnings  []string `json:"warnings"`
}

// ExtractionFailure cria um resultado de falha
func ExtractionFailure(message string, warnings ...string) ExtractionResult {
	if warnings == nil {
		warnings = []string{}
	}
	return ExtractionResult{OK: false, Error: message, Warnings: warnings}
}
