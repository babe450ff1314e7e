package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List downloaded models",
	Long:    "List all models downloaded into the local model store.",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	models, err := mgr.ListModels()
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	if len(models) == 0 {
		fmt.Fprintln(out, "No models downloaded. Use 'oi-hub pull <id>' to download one from the catalog.")
		return nil
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{
			m.Name,
			formatSize(m.Size),
			orDash(m.Quantization),
			orDash(m.Parameters),
			m.AddedAt.Format("2006-01-02 15:04"),
		})
	}
	return printTable(out, []string{"NAME", "SIZE", "QUANTIZATION", "PARAMETERS", "ADDED"}, rows)
}
