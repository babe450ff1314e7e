package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogFormat string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the cached model catalog",
	Long:  "Show the models written by the last 'oi-hub fetch', most downloaded first.",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", formatTable, "Output format: json or table")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if err := checkFormat(catalogFormat); err != nil {
		return err
	}

	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}
	entries, err := mgr.LoadCatalog()
	if err != nil {
		return err
	}

	if catalogFormat == formatJSON {
		return printJSON(out, map[string]any{"models": entries})
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The catalog is empty. Run 'oi-hub fetch' with a larger --mem or other --orgs.")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Repo,
			fmt.Sprintf("%.1f GB", e.MinVRAMGB),
			strings.Join(e.Tags, ","),
		})
	}
	return printTable(out, []string{"ID", "REPO", "MIN MEMORY", "TAGS"}, rows)
}
