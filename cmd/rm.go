package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <model>...",
	Aliases: []string{"remove"},
	Short:   "Remove downloaded models",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	mgr, err := newModelManager()
	if err != nil {
		return fmt.Errorf("init model manager: %w", err)
	}

	for _, name := range args {
		if err := mgr.RemoveModel(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
	}
	return nil
}
