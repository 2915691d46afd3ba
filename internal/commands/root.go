// Package commands wires the cdi-simulator CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cdi-simulator",
		Short:   "Compare investing a purchase price at CDI-linked yields against paying in installments",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newSimulateCommand())
	rootCmd.AddCommand(newServeCommand(version))

	return rootCmd
}
