package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:          "showdan",
		Short:        "Event marketplace negotiation and booking API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config.yaml)")

	root.AddCommand(newServeCmd(), newIndexesCmd(), newSeedCmd())
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
