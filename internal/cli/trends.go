package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	trendsLimit int
	trendsJSON  bool
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Lista os conteúdos em alta",
	Args:  cobra.NoArgs,
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "n", 10, "quantidade máxima de itens")
	trendsCmd.Flags().BoolVar(&trendsJSON, "json", false, "saída em JSON")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, _ []string) error {
	if trendStore == nil {
		return errors.New("armazenamento não configurado")
	}

	items, err := trendStore.ListTrends(cmd.Context(), trendsLimit)
	if err != nil {
		return fmt.Errorf("erro ao listar tendências: %w", err)
	}

	if trendsJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("erro ao serializar tendências: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma tendência registrada.")
		return nil
	}

	for i, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%d] %s (fake %d%%, %dx)\n", i+1, item.Title, item.ScoreFakeProbability, item.Occurrences)
		if item.Reason != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", item.Reason)
		}
	}
	return nil
}
