// Package cli implements the tarotctl command tree.
package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// nowFn is swapped in tests that pin dates.
var nowFn = time.Now

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tarotctl",
	Short: "Draw, inspect, and share tarot readings from the terminal",
	Long: `Tarotctl works against the same deck data and share format as the
Tarot Daily server. It can draw readings, encode and decode share
tokens, and validate the embedded deck files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
