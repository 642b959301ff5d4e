package config

import (
	"fmt"
	"time"

	"github.com/tessellated-io/txpipe/cosmos/tx"
	"github.com/tessellated-io/txpipe/crypto"
	"github.com/tessellated-io/txpipe/grpc"
	"github.com/tessellated-io/txpipe/log"
	"github.com/tessellated-io/txpipe/networks"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

const configHeader = "txpipe client configuration"

// ClientConfig is the on-disk configuration of a pipeline client.
type ClientConfig struct {
	Network string `yaml:"network" comment:"Known network supplying defaults for empty fields (provenance, provenance-testnet, cosmoshub, osmosis, juno, evmos)"`
	ChainID string `yaml:"chain_id" comment:"Chain ID signed into every transaction"`
	GrpcUri string `yaml:"grpc_uri" comment:"Node gRPC endpoint. https, grpcs and tcp+tls schemes use TLS, a bare host:port uses TLS on port 443"`

	AddressPrefix string `yaml:"address_prefix" comment:"Bech32 prefix of signer addresses"`
	HDPath        string `yaml:"hd_path" comment:"HD path used to derive the signer from the mnemonic"`
	KeyAlgorithm  string `yaml:"key_algorithm" comment:"secp256k1 or eth_secp256k1"`

	GasPrice             string  `yaml:"gas_price" comment:"Price of one unit of gas, ex. 1905nhash"`
	GasAdjustment        float64 `yaml:"gas_adjustment" comment:"Multiplier applied to simulated gas"`
	GasPriceOracleUrl    string  `yaml:"gas_price_oracle_url" comment:"Optional HTTP endpoint serving {\"gasPrice\": n, \"gasPriceDenom\": d}. Overrides gas_price when set"`
	GasPriceOracleMaxAge string  `yaml:"gas_price_oracle_max_age" comment:"How long a fetched gas price may be reused, ex. 30s"`

	BroadcastMode string `yaml:"broadcast_mode" comment:"sync, async or block"`
	LogLevel      string `yaml:"log_level" comment:"debug, info, warn or error"`
}

// DefaultClientConfig returns a configuration for a known network.
func DefaultClientConfig(networkName string) (*ClientConfig, error) {
	config := &ClientConfig{
		Network:              networkName,
		GasAdjustment:        tx.DefaultGasAdjustment,
		GasPriceOracleMaxAge: "30s",
		BroadcastMode:        "sync",
		LogLevel:             "info",
	}
	if err := config.ApplyNetworkDefaults(networks.NewOfflineNetworkRegistry()); err != nil {
		return nil, err
	}
	return config, nil
}

// Load reads, completes and validates the configuration at path.
func Load(path string) (*ClientConfig, error) {
	config := &ClientConfig{}
	if err := LoadYaml(path, config); err != nil {
		return nil, err
	}
	if err := config.ApplyNetworkDefaults(networks.NewOfflineNetworkRegistry()); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Write saves the configuration with comments. An existing file is not overwritten.
func (c *ClientConfig) Write(path string, logger *log.Logger) error {
	return WriteYamlWithComments(c, configHeader, path, logger)
}

// ApplyNetworkDefaults fills empty fields from the named network. Without a network name this does nothing.
func (c *ClientConfig) ApplyNetworkDefaults(registry *networks.OfflineNetworkRegistry) error {
	if c.Network == "" {
		return nil
	}

	data, err := registry.ByName(c.Network)
	if err != nil {
		return err
	}

	setIfEmpty(&c.ChainID, data.ChainID)
	setIfEmpty(&c.GrpcUri, data.GrpcUrl)
	setIfEmpty(&c.AddressPrefix, data.Network.Prefix)
	setIfEmpty(&c.HDPath, data.Network.HDPath)
	setIfEmpty(&c.KeyAlgorithm, string(data.Network.Algorithm))
	setIfEmpty(&c.GasPrice, data.GasPrice+data.FeeDenom)

	return nil
}

func (c *ClientConfig) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chain_id is required")
	}
	if _, err := grpc.ParseTarget(c.GrpcUri); err != nil {
		return fmt.Errorf("invalid grpc_uri: %w", err)
	}
	if err := c.NetworkType().Validate(); err != nil {
		return err
	}
	if _, err := c.ParsedGasPrice(); err != nil {
		return err
	}
	if c.GasAdjustment <= 0 {
		return fmt.Errorf("gas_adjustment must be positive, got %v", c.GasAdjustment)
	}
	if _, err := c.OracleMaxAge(); err != nil {
		return err
	}
	if _, err := c.ParsedBroadcastMode(); err != nil {
		return err
	}
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c *ClientConfig) NetworkType() crypto.NetworkType {
	return crypto.NetworkType{
		Prefix:    c.AddressPrefix,
		HDPath:    c.HDPath,
		Algorithm: crypto.KeyAlgorithm(c.KeyAlgorithm),
	}
}

func (c *ClientConfig) ParsedGasPrice() (sdk.DecCoin, error) {
	gasPrice, err := sdk.ParseDecCoin(c.GasPrice)
	if err != nil {
		return sdk.DecCoin{}, fmt.Errorf("invalid gas_price %q: %w", c.GasPrice, err)
	}
	return gasPrice, nil
}

func (c *ClientConfig) ParsedBroadcastMode() (txtypes.BroadcastMode, error) {
	return tx.ParseBroadcastMode(c.BroadcastMode)
}

// OracleMaxAge is zero when unset, which means every estimate fetches a fresh price.
func (c *ClientConfig) OracleMaxAge() (time.Duration, error) {
	if c.GasPriceOracleMaxAge == "" {
		return 0, nil
	}

	maxAge, err := time.ParseDuration(c.GasPriceOracleMaxAge)
	if err != nil {
		return 0, fmt.Errorf("invalid gas_price_oracle_max_age: %w", err)
	}
	if maxAge < 0 {
		return 0, fmt.Errorf("gas_price_oracle_max_age must not be negative")
	}
	return maxAge, nil
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
