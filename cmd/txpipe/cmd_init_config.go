package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessellated-io/txpipe/config"
	"github.com/tessellated-io/txpipe/log"
	"github.com/tessellated-io/txpipe/networks"
)

var cmdInitConfig = &cobra.Command{
	Use:   "init-config",
	Short: "Write a commented configuration file for a known network",
	Args:  cobra.NoArgs,
	RunE:  initConfig,
}

var flagInitConfig struct {
	Network string
}

func init() {
	cmdMain.AddCommand(cmdInitConfig)

	cmdInitConfig.Flags().StringVarP(&flagInitConfig.Network, "network", "n", "provenance-testnet", "Network to take defaults from")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	defaults, err := config.DefaultClientConfig(flagInitConfig.Network)
	if err != nil {
		return fmt.Errorf("%w (known networks: %v)", err, networks.NewOfflineNetworkRegistry().Names())
	}

	logger := log.NewLoggerWithWriter(flagMain.LogLevel, cmd.ErrOrStderr(), []string{})
	return defaults.Write(flagMain.ConfigFile, logger)
}
