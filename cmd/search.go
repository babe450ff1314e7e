package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/discovery"
)

var (
	searchMem    float64
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search HuggingFace for GGUF models",
	Long: heredoc.Doc(`
		Search HuggingFace for GGUF text-generation models matching a
		keyword, most downloaded first. With --mem, models whose estimated
		size exceeds the budget by more than 10% are left out.
	`),
	Example: heredoc.Doc(`
		oi-hub search qwen
		oi-hub search "llama 3" --mem 8 --format table
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64Var(&searchMem, "mem", 0, "Memory budget in GB (0 disables the size filter)")
	searchCmd.Flags().StringVar(&searchFormat, "format", formatJSON, "Output format: json or table")
}

func runSearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := checkFormat(searchFormat); err != nil {
		return err
	}

	s := discovery.NewSearcher(newHubClient())
	s.Limit = cfg.Discovery.SearchLimit

	results, err := s.Search(cmd.Context(), strings.Join(args, " "), searchMem)
	if err != nil {
		return reportJSONError(out, err)
	}

	if searchFormat == formatJSON {
		return printJSON(out, results)
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		est := "-"
		if r.EstSizeGB != nil {
			est = fmt.Sprintf("%.1f GB", *r.EstSizeGB)
		}
		rows = append(rows, []string{r.Repo, humanize.Comma(int64(r.Downloads)), est, string(r.Format)})
	}
	return printTable(out, []string{"REPO", "DOWNLOADS", "EST. SIZE", "FORMAT"}, rows)
}
