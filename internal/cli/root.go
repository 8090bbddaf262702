// Package cli implements the Ascend command-line interface using Cobra.
// Each subcommand maps to one engine operation (add, set, shop, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ascend",
	Short: "Ascend — Level up your real life",
	Long: `Ascend is a personal progression tracker.
Set goals, build habits, earn coins and XP, keep your streak alive,
and spend your coins in a reward shop you stock yourself.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
