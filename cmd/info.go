package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <model>",
	Short: "Show model information",
	Long:  "Display the manifest of a downloaded model.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	m, err := mgr.GetModel(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Name:          %s\n", m.Name)
	fmt.Fprintf(out, "Path:          %s\n", m.Path)
	if len(m.Files) > 1 {
		fmt.Fprintf(out, "Shards:        %d\n", len(m.Files))
	}
	fmt.Fprintf(out, "Size:          %s\n", formatSize(m.Size))
	if m.Repo != "" {
		fmt.Fprintf(out, "Repository:    %s\n", m.Repo)
	}
	if m.Parameters != "" {
		fmt.Fprintf(out, "Parameters:    %s\n", m.Parameters)
	}
	if m.Quantization != "" {
		fmt.Fprintf(out, "Quantization:  %s\n", m.Quantization)
	}
	fmt.Fprintf(out, "Added:         %s\n", m.AddedAt.Format("2006-01-02 15:04:05"))

	return nil
}
