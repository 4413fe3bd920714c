package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corexcloud/corex/cmd/corex/format"
	"github.com/corexcloud/corex/internal/sim"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export billing invoices to JSON or CSV",
	Long: `Export the invoice grid in JSON or CSV format.

By default exports to stdout. Use --file to write to a file.

Examples:
  corex export -o json > invoices.json
  corex export -o csv --file invoices.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportFile string

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Output file path (default: stdout)")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	c := newClient()

	billing, err := c.Billing(context.Background())
	if err != nil {
		return err
	}

	if len(billing.Invoices) == 0 {
		fmt.Fprintln(os.Stderr, "No invoices to export.")
		return nil
	}

	out := os.Stdout
	if exportFile != "" {
		f, err := os.Create(exportFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch getFormat() {
	case format.FormatCSV:
		return format.CSV(out, exportHeaders(), exportRows(billing.Invoices))
	default:
		// Default to JSON for export.
		return format.JSONTo(out, billing.Invoices)
	}
}

func exportHeaders() []string {
	return []string{"id", "tenant_id", "tenant", "month", "gpu_hours", "amount_usd", "status"}
}

func exportRows(invoices []sim.Invoice) [][]string {
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = []string{
			inv.ID,
			inv.TenantID,
			inv.Tenant,
			inv.Month,
			format.F64(inv.GpuHours, 1),
			format.F64(inv.AmountUSD, 2),
			inv.Status,
		}
	}
	return rows
}
