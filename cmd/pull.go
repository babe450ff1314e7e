package cmd

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/registry"
)

var pullQuant string

var pullCmd = &cobra.Command{
	Use:   "pull <id>",
	Short: "Download a catalog model",
	Long: heredoc.Doc(`
		Download a model from the catalog into the local store. The file
		name is the entry's filename template with the chosen quantization
		filled in, by default the one the entry was built from. Sharded
		models download every shard.
	`),
	Example: heredoc.Doc(`
		oi-hub pull qwen3-8b
		oi-hub pull llama-3-2-1b --quant Q8_0
	`),
	Args: cobra.ExactArgs(1),
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullQuant, "quant", "", "Quantization to download (default: the catalog entry's quantization)")
}

func runPull(cmd *cobra.Command, args []string) error {
	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	progress := newBarProgress(cmd.ErrOrStderr(), detectTerminal().StderrIsTerminal)
	m, err := mgr.Pull(cmd.Context(), newHubClient(), args[0], registry.PullOptions{
		Quant:    pullQuant,
		Progress: progress,
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Pulled %s (%s) to %s\n", m.Name, formatSize(m.Size), m.Path)
	return nil
}

// barProgress renders downloads as pterm progress bars on a terminal and
// as one line per file otherwise.
type barProgress struct {
	w     io.Writer
	tty   bool
	bar   *pterm.ProgressbarPrinter
	name  string
	total int64
	done  int64
}

func newBarProgress(w io.Writer, tty bool) *barProgress {
	return &barProgress{w: w, tty: tty}
}

func (p *barProgress) Start(filename string, total int64) {
	p.name, p.total, p.done = filename, total, 0
	if !p.tty || total <= 0 {
		return
	}
	bar, err := pterm.DefaultProgressbar.
		WithWriter(p.w).
		WithTitle(fmt.Sprintf("%s (%s)", filename, formatSize(total))).
		WithTotal(int(total)).
		WithRemoveWhenDone(false).
		Start()
	if err == nil {
		p.bar = bar
	}
}

func (p *barProgress) Add(n int) {
	p.done += int64(n)
	if p.bar != nil {
		p.bar.Add(n)
	}
}

func (p *barProgress) Done() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
		return
	}
	fmt.Fprintf(p.w, "downloaded %s (%s)\n", p.name, formatSize(p.done))
}
