package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
	"github.com/spf13/cobra"
)

var renderFormat string

var renderCmd = &cobra.Command{
	Use:   "render [resultado.json|-]",
	Short: "Gera o relatório de um resultado salvo",
	Long: `Lê um AnalysisResult em JSON (arquivo ou - para stdin) e regenera o
relatório markdown a partir dos dados estruturados.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", formatMarkdown, "saída: markdown, text ou html")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("erro ao ler resultado: %w", err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("resultado JSON inválido: %w", err)
	}

	result.ReportMarkdown = report.Render(&result)
	return printResult(cmd, &result, renderFormat)
}
