package handlers

import (
	"context"
	"net/http"

	"github.com/fakenewsverificaton/verificaton-api/internal/captcha"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// bodyOverhead é a folga para os campos JSON além de content
const bodyOverhead = 64 * 1024

// Analyzer executa o pipeline de análise
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

// AnalyzeHandler gerencia o endpoint de análise
type AnalyzeHandler struct {
	analyzer        Analyzer
	verifier        captcha.Verifier
	metrics         *observability.Metrics
	maxContentBytes int
}

// NewAnalyzeHandler cria um novo handler de análise
func NewAnalyzeHandler(analyzer Analyzer, verifier captcha.Verifier, metrics *observability.Metrics, maxContentBytes int) *AnalyzeHandler {
	if maxContentBytes <= 0 {
		maxContentBytes = models.MaxContentBytes
	}
	return &AnalyzeHandler{
		analyzer:        analyzer,
		verifier:        verifier,
		metrics:         metrics,
		maxContentBytes: maxContentBytes,
	}
}

// Analyze godoc
// @Summary Analisa um conteúdo
// @Description Analisa texto, link (página ou vídeo do YouTube), imagem ou áudio e retorna scores,
// @Description veredito, afirmações avaliadas e relatório em markdown.
// @Description
// @Description Imagem e áudio são enviados como data URL base64 (`data:<mime>;base64,<payload>`).
// @Description O conteúdo é limitado a ~4.5 MB.
// @Tags analyze
// @Accept json
// @Produce json
// @Param request body models.AnalysisRequest true "Conteúdo a analisar"
// @Success 200 {object} models.AnalysisResult
// @Failure 400 {object} models.ErrorResponse "Dados inválidos"
// @Failure 403 {object} models.ErrorResponse "Verificação anti-bot falhou"
// @Failure 413 {object} models.ErrorResponse "Conteúdo muito grande"
// @Failure 422 {object} models.ErrorResponse "Falha na extração do link"
// @Failure 429 {object} models.ErrorResponse "Rate limit"
// @Failure 500 {object} models.ErrorResponse "Falha na análise"
// @Failure 503 {object} models.ErrorResponse "Servidor sem chave do modelo"
// @Router /api/v1/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	limitBody(c, int64(h.maxContentBytes+bodyOverhead))

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, bindingError(err))
		return
	}

	if h.verifier != nil {
		res := h.verifier.Verify(c.Request.Context(), req.TurnstileToken, ratelimit.ClientIP(c.Request))
		if !res.Success {
			h.metrics.CaptchaFailed()
			abortWithError(c, models.NewAPIError(models.ErrKindCaptchaFailed, models.MsgCaptchaFailed, nil))
			return
		}
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, models.AsAPIError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}
