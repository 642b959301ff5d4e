package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tessellated-io/txpipe/cosmos/tx"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

var cmdSend = &cobra.Command{
	Use:   "send [to-address] [amount]",
	Short: "Send coins through the full estimate, sign and broadcast pipeline",
	Args:  cobra.ExactArgs(2),
	RunE:  send,
}

var flagSend struct {
	Memo            string
	GasAdjustment   float64
	FeeGranter      string
	BroadcastMode   string
	SequenceOffset  uint64
	DryRun          bool
	Timeout         time.Duration
	MetricsTextfile string
}

func init() {
	cmdMain.AddCommand(cmdSend)
	addSignerFlags(cmdSend)

	cmdSend.Flags().StringVar(&flagSend.Memo, "memo", "", "Transaction memo")
	cmdSend.Flags().Float64Var(&flagSend.GasAdjustment, "gas-adjustment", 0, "Overrides gas_adjustment from the configuration file")
	cmdSend.Flags().StringVar(&flagSend.FeeGranter, "fee-granter", "", "Address paying the fee")
	cmdSend.Flags().StringVar(&flagSend.BroadcastMode, "broadcast-mode", "", "Overrides broadcast_mode from the configuration file (sync, async, block)")
	cmdSend.Flags().Uint64Var(&flagSend.SequenceOffset, "sequence-offset", 0, "Added to the on-chain sequence, for transactions queued behind pending ones")
	cmdSend.Flags().BoolVar(&flagSend.DryRun, "dry-run", false, "Estimate gas and fee without broadcasting")
	cmdSend.Flags().DurationVar(&flagSend.Timeout, "timeout", time.Minute, "Deadline for the whole pipeline run")
	cmdSend.Flags().StringVar(&flagSend.MetricsTextfile, "metrics-textfile", "", "Write pipeline metrics to this file in Prometheus text format")
}

func send(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	signer, err := loadSigner(cfg)
	if err != nil {
		return err
	}

	toAddress := args[0]
	if _, err := sdk.GetFromBech32(toAddress, cfg.AddressPrefix); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", toAddress, err)
	}
	amount, err := sdk.ParseCoinsNormalized(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	if amount.Empty() {
		return fmt.Errorf("amount must not be zero")
	}

	msg, err := codectypes.NewAnyWithValue(&banktypes.MsgSend{
		FromAddress: signer.Address(),
		ToAddress:   toAddress,
		Amount:      amount,
	})
	if err != nil {
		return err
	}
	body := &txtypes.TxBody{
		Messages: []*codectypes.Any{msg},
		Memo:     flagSend.Memo,
	}

	opts, err := requestOptions(cfg.GasAdjustment, cfg.BroadcastMode)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	client, err := newPipelineClient(cfg, registry, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagSend.Timeout)
	defer cancel()

	signers := []tx.SignerEntry{{Signer: signer, SequenceOffset: flagSend.SequenceOffset}}
	out := cmd.OutOrStdout()

	if flagSend.DryRun {
		baseReq, err := client.BaseRequest(ctx, body, signers, opts...)
		if err != nil {
			return err
		}
		estimate, err := client.EstimateTx(ctx, baseReq)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "gas_limit: %d\nfee: %s\n", estimate.GasLimit, estimate.FeeAmount.String())
		return err
	}

	result, err := client.EstimateAndBroadcastTx(ctx, body, signers, opts...)
	if flagSend.MetricsTextfile != "" {
		if metricsErr := prometheus.WriteToTextfile(flagSend.MetricsTextfile, registry); metricsErr != nil {
			logger.Warn("failed to write metrics", "file", flagSend.MetricsTextfile, "error", metricsErr)
		}
	}
	if result != nil && result.TxResponse != nil {
		fmt.Fprintf(out, "tx_hash: %s\ncode: %d\n", result.TxResponse.TxHash, result.TxResponse.Code)
	}
	return err
}

// requestOptions merges command line overrides over the configured defaults.
func requestOptions(gasAdjustment float64, broadcastMode string) ([]tx.RequestOption, error) {
	if flagSend.GasAdjustment != 0 {
		gasAdjustment = flagSend.GasAdjustment
	}
	if flagSend.BroadcastMode != "" {
		broadcastMode = flagSend.BroadcastMode
	}

	mode, err := tx.ParseBroadcastMode(broadcastMode)
	if err != nil {
		return nil, err
	}

	opts := []tx.RequestOption{
		tx.WithGasAdjustment(gasAdjustment),
		tx.WithBroadcastMode(mode),
	}
	if flagSend.FeeGranter != "" {
		opts = append(opts, tx.WithFeeGranter(flagSend.FeeGranter))
	}
	return opts, nil
}
