// Package cli implementa a linha de comando verificaton.
package cli

import (
	"context"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/spf13/cobra"
)

// Analyzer executa o pipeline de análise
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

var (
	analyzer   Analyzer
	trendStore storage.TrendStore
)

var rootCmd = &cobra.Command{
	Use:   "verificaton",
	Short: "Análise de desinformação em texto, links, imagens e áudio",
	Long: `verificaton executa localmente o mesmo pipeline do servidor: extrai o conteúdo
de links e vídeos, consulta o modelo e imprime o relatório em markdown.`,
	SilenceUsage: true,
}

// Configure injeta os serviços usados pelos comandos
func Configure(a Analyzer, trends storage.TrendStore) {
	analyzer = a
	trendStore = trends
}

// Execute roda o comando raiz
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
