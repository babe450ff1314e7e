package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/config"
	"github.com/cloudchase/oi-hub/hub"
	"github.com/cloudchase/oi-hub/registry"
)

// ErrReported marks an error that a command already printed.
var ErrReported = errors.New("error already reported")

var (
	configPath string
	verbose    bool
	noColor    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "oi-hub",
	Short: "Discover GGUF models on HuggingFace that fit this machine",
	Long: heredoc.Doc(`
		oi-hub searches the HuggingFace Hub for GGUF models sized for the
		memory available on this machine, keeps a local catalog of the best
		candidates and downloads them into a local model store.
	`),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if verbose {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
				NoColor:    !detectTerminal().StderrColor,
			})
		} else {
			log.Logger = zerolog.Nop()
		}
		if !detectTerminal().Color {
			pterm.DisableStyling()
		}

		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		log.Debug().Str("catalog", cfg.Storage.Catalog).Str("hub", cfg.Hub.BaseURL).Msg("configuration loaded")
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default $"+config.EnvPath+" or <user config dir>/oi-hub/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(serveCmd)
}

func newHubClient() *hub.Client {
	return hub.NewClient(cfg.HubOptions())
}

func newModelManager() (*registry.ModelManager, error) {
	return registry.NewModelManager(cfg.Storage.BaseDir, cfg.Storage.Catalog)
}
