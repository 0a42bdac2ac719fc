package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fakenewsverificaton/verificaton-api/internal/captcha"
	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/fakenewsverificaton/verificaton-api/internal/trends"
	"github.com/gin-gonic/gin"
)

const (
	defaultTrendsLimit = 10
	maxTrendsLimit     = 50
)

// TrendsHandler expõe os alertas de tendência
type TrendsHandler struct {
	store    storage.TrendStore
	verifier captcha.Verifier
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewTrendsHandler cria um novo handler de tendências
func NewTrendsHandler(store storage.TrendStore, verifier captcha.Verifier, metrics *observability.Metrics) *TrendsHandler {
	return &TrendsHandler{store: store, verifier: verifier, metrics: metrics, now: time.Now}
}

// TrendsResponse é a lista de itens de tendência
type TrendsResponse struct {
	OK    bool               `json:"ok"`
	Items []models.TrendItem `json:"items"`
}

// SuggestResponse confirma o registro de uma sugestão
type SuggestResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// List godoc
// @Summary Lista tendências
// @Description Itens agregados por fingerprint, ordenados pela probabilidade de fake e pela última ocorrência
// @Tags trends
// @Produce json
// @Param limit query int false "Quantidade de itens (padrão 10, máximo 50)"
// @Success 200 {object} TrendsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/trends [get]
func (h *TrendsHandler) List(c *gin.Context) {
	limit := defaultTrendsLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, maxTrendsLimit)
	}

	items, err := h.store.ListTrends(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[Trends] Erro ao listar tendências: %v", err)
		abortWithError(c, models.NewAPIError(models.ErrKindInternal, models.MsgInternal, err))
		return
	}
	if items == nil {
		items = []models.TrendItem{}
	}

	c.JSON(http.StatusOK, TrendsResponse{OK: true, Items: items})
}

// Suggest godoc
// @Summary Sugere um conteúdo para os alertas
// @Description Registra a sugestão como item de tendência com uma ocorrência e score 0
// @Tags trends
// @Accept json
// @Produce json
// @Param request body models.AlertSuggestion true "Sugestão"
// @Success 200 {object} SuggestResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/alerts/suggest [post]
func (h *TrendsHandler) Suggest(c *gin.Context) {
	limitBody(c, bodyOverhead)

	var req models.AlertSuggestion
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

	item := trends.SuggestedItem(req.Title, req.Description, h.now())
	if err := h.store.InsertTrend(c.Request.Context(), item); err != nil {
		log.Printf("[Trends] Erro ao salvar sugestão: %v", err)
		abortWithError(c, models.NewAPIError(models.ErrKindInternal, models.MsgSuggestionFailed, err))
		return
	}

	c.JSON(http.StatusOK, SuggestResponse{OK: true, Message: models.MsgSuggestionSaved})
}
