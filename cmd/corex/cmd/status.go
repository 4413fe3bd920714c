package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corexcloud/corex/cmd/corex/format"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the fleet-wide dashboard summary",
	Long: `Fetch the dashboard aggregate: fleet size, utilization, jobs and alerts.

Examples:
  corex status
  corex status -o json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	c := newClient()

	d, err := c.Dashboard(context.Background())
	if err != nil {
		return err
	}

	if getFormat() == format.FormatJSON {
		return format.JSON(d)
	}

	fmt.Printf("Total GPUs:     %d\n", d.TotalGpus)
	fmt.Printf("Active GPUs:    %d\n", d.ActiveGpus)
	fmt.Printf("Utilization:    %s%%\n", format.F64(d.AvgUtilization, 1))
	fmt.Printf("Power draw:     %s MW\n", format.F64(d.TotalPowerMW, 2))
	fmt.Printf("Running jobs:   %d\n", d.RunningJobs)
	fmt.Printf("Queued jobs:    %d\n", d.QueuedJobs)
	fmt.Printf("Active alerts:  %d\n", d.ActiveAlerts)
	fmt.Printf("Revenue MTD:    $%s\n", format.F64(d.RevenueMTD, 2))

	fmt.Println("\nData Centers:")
	rows := make([][]string, 0, len(d.DataCenters))
	for _, dc := range d.DataCenters {
		rows = append(rows, []string{
			dc.ID, dc.Name, fmt.Sprintf("%d", dc.TotalGpus),
			format.F64(dc.AvgUtilization, 1) + "%", dc.Status,
		})
	}
	format.Table([]string{"ID", "Name", "GPUs", "Util", "Status"}, rows)
	return nil
}
