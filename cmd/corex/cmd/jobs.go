package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corexcloud/corex/cmd/corex/format"
)

var (
	jobsStatus string
	jobsTenant string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List workloads on the fleet",
	Long: `List synthesized jobs with optional status and tenant filters.

Examples:
  corex jobs --status running
  corex jobs --tenant tn-003 -o csv`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsStatus, "status", "", "Filter by status (running, queued, completed, failed, cancelled)")
	jobsCmd.Flags().StringVar(&jobsTenant, "tenant", "", "Filter by tenant id")
	RootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	c := newClient()

	jobs, err := c.Jobs(context.Background(), jobsStatus, jobsTenant)
	if err != nil {
		return err
	}

	if getFormat() == format.FormatJSON {
		return format.JSON(jobs)
	}

	headers := []string{"ID", "Name", "Tenant", "GPUs", "Status", "Progress", "Cost"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			j.ID, j.Name, j.TenantName,
			fmt.Sprintf("%dx %s", j.GpuCount, j.GpuModel),
			j.Status, format.F64(j.Progress, 0) + "%",
			"$" + format.F64(j.CostUSD, 2),
		})
	}
	if getFormat() == format.FormatCSV {
		return format.CSV(os.Stdout, headers, rows)
	}
	format.Table(headers, rows)
	return nil
}
