package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corexcloud/corex/cmd/corex/format"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List available replay scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

var replayCmd = &cobra.Command{
	Use:   "replay <scenario-id>",
	Short: "Start a replay scenario",
	Long: `Load a scripted scenario on the server and print its event timeline.

Examples:
  corex replay marketing-spike
  corex replay datacenter-outage -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	RootCmd.AddCommand(scenariosCmd)
	RootCmd.AddCommand(replayCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	c := newClient()

	scenarios, err := c.ReplayScenarios(context.Background())
	if err != nil {
		return err
	}

	if getFormat() == format.FormatJSON {
		return format.JSON(scenarios)
	}

	headers := []string{"ID", "Name", "Duration", "Description"}
	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		rows = append(rows, []string{
			sc.ID, sc.Name, fmt.Sprintf("%dm", sc.DurationMinutes), sc.Description,
		})
	}
	if getFormat() == format.FormatCSV {
		return format.CSV(os.Stdout, headers, rows)
	}
	format.Table(headers, rows)
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	c := newClient()

	state, err := c.StartReplay(context.Background(), args[0])
	if err != nil {
		return err
	}

	if getFormat() == format.FormatJSON {
		return format.JSON(state)
	}

	fmt.Printf("Scenario:  %s (%dm)\n", state.Scenario.Name, state.Scenario.DurationMinutes)
	fmt.Printf("Base time: %s\n\n", state.BaseTime)

	rows := make([][]string, 0, len(state.Events))
	for _, ev := range state.Events {
		rows = append(rows, []string{ev.Timestamp, ev.Severity, ev.Title, ev.Description})
	}
	format.Table([]string{"Time", "Severity", "Event", "Detail"}, rows)
	return nil
}
