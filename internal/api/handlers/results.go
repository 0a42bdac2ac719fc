package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/gin-gonic/gin"
)

// ResultsHandler expõe análises persistidas
type ResultsHandler struct {
	store storage.AnalysisStore
}

// NewResultsHandler cria um novo handler de resultados
func NewResultsHandler(store storage.AnalysisStore) *ResultsHandler {
	return &ResultsHandler{store: store}
}

// GetResult godoc
// @Summary Busca uma análise pelo ID
// @Description Retorna a análise persistida. Com `format=html` devolve o relatório renderizado em HTML;
// @Description com `format=text`, o relatório em texto puro para compartilhamento.
// @Tags results
// @Produce json
// @Produce html
// @Param id path string true "ID da análise"
// @Param format query string false "json (padrão), html ou text"
// @Success 200 {object} models.AnalysisRecord
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/results/{id} [get]
func (h *ResultsHandler) GetResult(c *gin.Context) {
	record, err := h.store.GetAnalysis(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		abortWithError(c, models.NewAPIError(models.ErrKindNotFound, models.MsgNotFound, err))
		return
	}
	if err != nil {
		log.Printf("[Results] Erro ao buscar análise %s: %v", c.Param("id"), err)
		abortWithError(c, models.NewAPIError(models.ErrKindInternal, models.MsgInternal, err))
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "html":
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(report.RenderHTML(record.ReportMarkdown)))
	case "text":
		c.String(http.StatusOK, report.PlainText(record.ReportMarkdown))
	default:
		c.JSON(http.StatusOK, record)
	}
}
