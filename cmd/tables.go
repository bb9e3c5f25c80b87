package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"invoicesync/internal/config"
	"invoicesync/internal/shipping"
	"invoicesync/internal/vat"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Check the VAT and shipping mapping files",
	Long: `Tables loads both mapping files the way a sync run would and reports
what they cover. EU member states missing from the VAT mapping are
listed separately: orders shipped there fail until a row is added.

This command needs no API credentials.`,
	Example: `  # Check the files named by the environment
  invoicesync tables

  # Check candidate files before deploying them
  invoicesync tables --vat-file new_vat.csv --shipping-file new_shipping.csv`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)

	tablesCmd.Flags().String("vat-file", "", "VAT mapping file (default from VAT_MAPPING_FILE)")
	tablesCmd.Flags().String("shipping-file", "", "Shipping mapping file (default from SHIPPING_MAPPING_FILE)")
}

func runTables(cmd *cobra.Command, args []string) error {
	vatFile, shippingFile := config.TableFiles()
	if v, _ := cmd.Flags().GetString("vat-file"); v != "" {
		vatFile = v
	}
	if s, _ := cmd.Flags().GetString("shipping-file"); s != "" {
		shippingFile = s
	}

	vatTable, err := vat.LoadTable(vatFile)
	if err != nil {
		return fmt.Errorf("vat mapping: %w", err)
	}
	fmt.Printf("VAT mapping %s: %d countries\n", vatFile, vatTable.Len())

	var missing []string
	for _, code := range vat.EUMembers() {
		if _, ok := vatTable.Lookup(code); !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		fmt.Printf("EU member states without a VAT mapping: %s\n", strings.Join(missing, ", "))
		fmt.Println("Orders shipped to these countries will fail until rows are added.")
	} else {
		fmt.Println("All EU member states are mapped.")
	}

	shippingTable, err := shipping.LoadTable(shippingFile)
	if err != nil {
		return fmt.Errorf("shipping mapping: %w", err)
	}
	fmt.Printf("Shipping mapping %s: %d method/price pairs\n", shippingFile, shippingTable.Len())

	return nil
}
