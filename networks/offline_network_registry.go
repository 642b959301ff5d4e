package networks

import (
	"fmt"

	"github.com/tessellated-io/txpipe/crypto"
)

// Provides offline network data for applications where we don't need a chain registry
type OfflineNetworkRegistry struct {
	chainIDToData map[string]*NetworkData
	nameToData    map[string]*NetworkData
	names         []string
}

func NewOfflineNetworkRegistry() *OfflineNetworkRegistry {
	registry := &OfflineNetworkRegistry{
		chainIDToData: make(map[string]*NetworkData),
		nameToData:    make(map[string]*NetworkData),
	}

	registry.addToRegistry("provenance", "pio-mainnet-1", crypto.Mainnet, "nhash", "1905", "grpcs://grpc.provenance.io:443")
	registry.addToRegistry("provenance-testnet", "pio-testnet-1", crypto.Testnet, "nhash", "1905", "grpcs://grpc.test.provenance.io:443")
	registry.addToRegistry("cosmoshub", "cosmoshub-4", crypto.NewNetworkType("cosmos", 118, crypto.Secp256k1), "uatom", "0.005", "cosmos-validator.tessageo.net:9090")
	registry.addToRegistry("osmosis", "osmosis-1", crypto.NewNetworkType("osmo", 118, crypto.Secp256k1), "uosmo", "0.0025", "osmosis-validator.tessageo.net:9090")
	registry.addToRegistry("juno", "juno-1", crypto.NewNetworkType("juno", 118, crypto.Secp256k1), "ujuno", "0.075", "juno-validator.tessageo.net:9090")
	registry.addToRegistry("evmos", "evmos_9001-2", crypto.NewNetworkType("evmos", 60, crypto.EthSecp256k1), "aevmos", "80000000000", "evmos-validator.tessageo.net:9090")

	return registry
}

func (r *OfflineNetworkRegistry) addToRegistry(
	name string,
	chainID string,
	network crypto.NetworkType,
	feeDenom string,
	gasPrice string,
	grpcUrl string,
) {
	data := &NetworkData{
		Name:    name,
		ChainID: chainID,
		Network: network,

		FeeDenom: feeDenom,
		GasPrice: gasPrice,

		GrpcUrl: grpcUrl,
	}

	r.nameToData[name] = data
	r.chainIDToData[chainID] = data
	r.names = append(r.names, name)
}

// ByName returns a copy of the named network.
func (r *OfflineNetworkRegistry) ByName(name string) (*NetworkData, error) {
	data, found := r.nameToData[name]
	if !found {
		return nil, fmt.Errorf("unknown network: %q", name)
	}
	copied := *data
	return &copied, nil
}

// ByChainID returns a copy of the network with the given chain id.
func (r *OfflineNetworkRegistry) ByChainID(chainID string) (*NetworkData, error) {
	data, found := r.chainIDToData[chainID]
	if !found {
		return nil, fmt.Errorf("unknown chain id: %q", chainID)
	}
	copied := *data
	return &copied, nil
}

// Names lists the known networks in registration order.
func (r *OfflineNetworkRegistry) Names() []string {
	return append([]string(nil), r.names...)
}
