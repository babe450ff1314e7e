package cmd

import (
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/api"
	"github.com/cloudchase/oi-hub/discovery"
)

var (
	filesType   string
	filesFormat string
)

var filesCmd = &cobra.Command{
	Use:   "files <repo>",
	Short: "List the weight files of a HuggingFace repository",
	Long: heredoc.Doc(`
		List a repository's weight artifacts, smallest first. Shards of a
		multi-part file are listed as one artifact; tokenizer and config
		files are left out.
	`),
	Example: heredoc.Doc(`
		oi-hub files Qwen/Qwen3-8B-GGUF
		oi-hub files meta-llama/Llama-3.1-8B --type all --format table
	`),
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().StringVar(&filesType, "type", string(discovery.FormatGGUF), "Weight format to list, or \"all\"")
	filesCmd.Flags().StringVar(&filesFormat, "format", formatJSON, "Output format: json or table")
}

func runFiles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := checkFormat(filesFormat); err != nil {
		return err
	}
	formats, err := api.ParseFileType(filesType)
	if err != nil {
		return err
	}

	groups, err := discovery.ListFiles(cmd.Context(), newHubClient(), args[0], formats...)
	if err != nil {
		return reportJSONError(out, err)
	}

	if filesFormat == formatJSON {
		return printJSON(out, groups)
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{g.Filename, string(g.Format), g.Quant, formatSize(g.TotalBytes), strconv.Itoa(g.ShardCount)})
	}
	return printTable(out, []string{"FILE", "FORMAT", "QUANT", "SIZE", "SHARDS"}, rows)
}
