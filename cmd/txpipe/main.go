package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "~/.txpipe/config.yaml"

var cmdMain = &cobra.Command{
	Use:           "txpipe",
	Short:         "Build, estimate, sign and broadcast Cosmos SDK transactions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var flagMain struct {
	ConfigFile string
	LogLevel   string
}

func init() {
	cmdMain.PersistentFlags().StringVarP(&flagMain.ConfigFile, "config", "c", defaultConfigFile, "Path to the client configuration file")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogLevel, "log-level", "", "Overrides log_level from the configuration file")
}

func main() {
	if err := cmdMain.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
