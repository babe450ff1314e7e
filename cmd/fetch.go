package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/discovery"
	"github.com/cloudchase/oi-hub/sysinfo"
)

var (
	fetchMem   float64
	fetchOrgs  string
	fetchCache string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Rebuild the model catalog from HuggingFace",
	Long: heredoc.Doc(`
		Search HuggingFace for GGUF text-generation models that fit the
		memory budget and write the most downloaded candidates to the
		catalog cache. Repositories that fail to load are skipped; the
		cache is only replaced when at least one search succeeded.
	`),
	Example: heredoc.Doc(`
		oi-hub fetch
		oi-hub fetch --mem 16 --orgs "Qwen bartowski unsloth"
	`),
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Float64Var(&fetchMem, "mem", 0, "Memory budget in GB (default: detected host memory)")
	fetchCmd.Flags().StringVar(&fetchOrgs, "orgs", "", "Space separated organizations to search (default: config discovery.orgs)")
	fetchCmd.Flags().StringVar(&fetchCache, "cache", "", "Catalog cache path (default: config storage.catalog)")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	mem := fetchMem
	if !cmd.Flags().Changed("mem") {
		mem = sysinfo.MemoryBudgetGB(ctx)
	}
	if mem <= 0 {
		return reportJSONError(out, fmt.Errorf("--mem must be greater than 0"))
	}
	orgs := cfg.Discovery.Orgs
	if cmd.Flags().Changed("orgs") {
		orgs = strings.Fields(fetchOrgs)
	}
	if fetchCache != "" {
		cfg.Storage.Catalog = fetchCache
	}

	exclude, err := discovery.CompilePatterns(cfg.Discovery.Exclude)
	if err != nil {
		return reportJSONError(out, err)
	}
	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	f := discovery.NewFetcher(newHubClient())
	f.QueryLimit = cfg.Discovery.QueryLimit
	f.Exclude = exclude

	log.Info().Float64("mem_gb", mem).Strs("orgs", orgs).Msg("fetching catalog")
	entries, err := f.Fetch(ctx, mem, orgs)
	if err != nil {
		return reportJSONError(out, err)
	}
	if err := mgr.SaveCatalog(entries); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Fetched %d models from HuggingFace\n", len(entries))
	return nil
}
