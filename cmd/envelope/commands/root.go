package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "envelope",
		Short:         "Demo server rendering responses through the envelope dispatcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewServeCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
