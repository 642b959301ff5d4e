package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tessellated-io/txpipe/config"
	"github.com/tessellated-io/txpipe/cosmos/gasprice"
	"github.com/tessellated-io/txpipe/cosmos/rpc"
	"github.com/tessellated-io/txpipe/cosmos/tx"
	"github.com/tessellated-io/txpipe/crypto"
	"github.com/tessellated-io/txpipe/grpc"
	"github.com/tessellated-io/txpipe/log"
)

const (
	mnemonicEnv   = "TXPIPE_MNEMONIC"
	passphraseEnv = "TXPIPE_PASSPHRASE"

	oracleAttempts = 3
	oracleDelay    = time.Second
)

var flagSigner struct {
	MnemonicFile string
}

func addSignerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSigner.MnemonicFile, "mnemonic-file", "", "File holding the signer mnemonic. Defaults to $"+mnemonicEnv)
}

// dialRpcClient is swapped out in tests.
var dialRpcClient = func(cfg *config.ClientConfig, logger *log.Logger) (rpc.Client, error) {
	return rpc.DialGrpcClient(cfg.GrpcUri, grpc.DefaultOptions(), rpc.NewCodec(), logger)
}

func loadConfig(cmd *cobra.Command) (*config.ClientConfig, *log.Logger, error) {
	cfg, err := config.Load(flagMain.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if flagMain.LogLevel != "" {
		cfg.LogLevel = flagMain.LogLevel
		if _, err := log.ParseLogLevel(cfg.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	logger := log.NewLoggerWithWriter(cfg.LogLevel, cmd.ErrOrStderr(), []string{"[txpipe]"})
	return cfg, logger, nil
}

func loadSigner(cfg *config.ClientConfig) (crypto.Signer, error) {
	mnemonic := os.Getenv(mnemonicEnv)
	if flagSigner.MnemonicFile != "" {
		contents, err := config.ReadFile(flagSigner.MnemonicFile)
		if err != nil {
			return nil, err
		}
		mnemonic = string(contents)
	}

	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if mnemonic == "" {
		return nil, errors.New("no mnemonic: set $" + mnemonicEnv + " or pass --mnemonic-file")
	}

	return crypto.NewSignerFromMnemonic(cfg.NetworkType(), mnemonic, os.Getenv(passphraseEnv))
}

func newPipelineClient(cfg *config.ClientConfig, registerer prometheus.Registerer, logger *log.Logger) (*tx.Client, error) {
	gasPrice, err := cfg.ParsedGasPrice()
	if err != nil {
		return nil, err
	}

	method := tx.CosmosSimulation(gasPrice)
	if cfg.GasPriceOracleUrl != "" {
		maxAge, err := cfg.OracleMaxAge()
		if err != nil {
			return nil, err
		}

		oracle, err := gasprice.NewOracleClient(cfg.GasPriceOracleUrl, oracleAttempts, oracleDelay, maxAge, gasprice.NewInMemoryPriceStore(), logger)
		if err != nil {
			return nil, err
		}
		method = tx.FloatingGasPrice(oracle, method)
	}

	rpcClient, err := dialRpcClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.GrpcUri, err)
	}

	var metrics *tx.Metrics
	if registerer != nil {
		metrics = tx.NewMetrics(registerer)
	}

	client, err := tx.NewClient(cfg.ChainID, rpcClient, method, metrics, logger)
	if err != nil {
		_ = rpcClient.Close()
		return nil, err
	}
	return client, nil
}
