package cli

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fakenewsverificaton/verificaton-api/internal/models"
	"github.com/fakenewsverificaton/verificaton-api/internal/report"
	"github.com/spf13/cobra"
)

var (
	analyzeType   string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [content|@arquivo]",
	Short: "Analisa um conteúdo",
	Long: `Analisa texto, link, imagem ou áudio e imprime o relatório.
Use @caminho para ler o conteúdo de um arquivo; imagens e áudios são
convertidos em data URL automaticamente.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeType, "type", "t", string(models.InputText), "tipo da entrada: text, link, image ou audio")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatMarkdown, "saída: markdown, text, html ou json")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzer == nil {
		return errors.New("analyzer não configurado")
	}

	inputType := models.InputType(analyzeType)
	if !inputType.IsValid() {
		return errors.New(models.MsgInputTypeInvalid)
	}

	content, err := readContent(args[0], inputType)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(cmd.Context(), models.AnalysisRequest{InputType: inputType, Content: content})
	if err != nil {
		apiErr := models.AsAPIError(err)
		return fmt.Errorf("%s: %s", apiErr.Kind, apiErr.Message)
	}

	return printResult(cmd, result, analyzeFormat)
}

// readContent resolve @arquivo; mídia vira data URL
func readContent(arg string, inputType models.InputType) (string, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("erro ao ler %s: %w", path, err)
	}

	if inputType != models.InputImage && inputType != models.InputAudio {
		return string(data), nil
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

const (
	formatMarkdown = "markdown"
	formatText     = "text"
	formatHTML     = "html"
	formatJSON     = "json"
)

func printResult(cmd *cobra.Command, result *models.AnalysisResult, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("erro ao serializar resultado: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case formatText:
		fmt.Fprintln(cmd.OutOrStdout(), report.PlainText(result.ReportMarkdown))
	case formatHTML:
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderHTML(result.ReportMarkdown))
	case formatMarkdown, "":
		fmt.Fprintln(cmd.OutOrStdout(), result.ReportMarkdown)
	default:
		return fmt.Errorf("formato desconhecido: %s", format)
	}
	return nil
}
