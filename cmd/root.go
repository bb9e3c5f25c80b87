package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicesync/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicesync",
	Short: "Sync Dokan marketplace orders into Rompslomp draft invoices",
	Long: `invoicesync reads processing orders from a Dokan marketplace and books
them as draft (concept) invoices in a Rompslomp administration.

VAT is resolved per shipping destination, order lines are matched to
catalog products by SKU, shipping charges map to catalog products via
the shipping table, and contacts are created on the fly from the
order's billing details. Every invoice stays a draft pending review.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("invoicesync executed")

		fmt.Println("invoicesync: Dokan to Rompslomp draft-invoice sync")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
