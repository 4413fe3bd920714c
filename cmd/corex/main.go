package main

import (
	"os"

	"github.com/corexcloud/corex/cmd/corex/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
