package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// rootCmd runs the API server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "lp-otica",
	Short: "Óticas Vizz landing page API",
	Long: `Backend of the Óticas Vizz landing page: lens budget wizard, quotes,
WhatsApp hand-off and the Vizzy chat relay.

Running without a subcommand is the same as "serve".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, quoteCmd, catalogCmd, simulateCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
