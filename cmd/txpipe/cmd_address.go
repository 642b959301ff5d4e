package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cmdAddress = &cobra.Command{
	Use:   "address",
	Short: "Print the signer address derived from the mnemonic",
	Args:  cobra.NoArgs,
	RunE:  showAddress,
}

func init() {
	cmdMain.AddCommand(cmdAddress)
	addSignerFlags(cmdAddress)
}

func showAddress(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	signer, err := loadSigner(cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), signer.Address())
	return err
}
