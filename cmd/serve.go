package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudchase/oi-hub/api"
)

var (
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  "Start the oi-hub HTTP API serving the catalog, registry searches and the local model store.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:11435", "Address to listen on")
}

func runServe(cmd *cobra.Command, _ []string) error {
	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	srv := api.NewServer(mgr, newHubClient(), serveAddr)
	srv.Searcher().Limit = cfg.Discovery.SearchLimit
	return srv.Start(cmd.Context())
}
