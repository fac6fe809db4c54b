package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const flagOutput = "output"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "liquidation-queue",
		Short:        "liquidation queue ledger and liquidation amount calculator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP(flagOutput, "o", outputJSON, "output format (json|yaml)")

	rootCmd.AddCommand(
		initCmd(),
		exportCmd(),
		serveCmd(),
		queryCmd(),
		txCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
