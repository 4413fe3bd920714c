package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corexcloud/corex/cmd/corex/client"
	"github.com/corexcloud/corex/cmd/corex/format"
)

var (
	apiURL       string
	outputFormat string
)

// RootCmd is the top-level CLI command.
var RootCmd = &cobra.Command{
	Use:   "corex",
	Short: "CoreX CLI — inspect the GPU-cloud demo fleet",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", envOrDefault("COREX_API_URL", "http://localhost:8080"), "CoreX API base URL")
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, csv")
}

func newClient() *client.Client {
	return client.New(apiURL)
}

func getFormat() format.OutputFormat {
	switch outputFormat {
	case "json":
		return format.FormatJSON
	case "csv":
		return format.FormatCSV
	default:
		return format.FormatTable
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
