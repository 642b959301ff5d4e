package crypto

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
)

// KeyAlgorithm selects the curve and address scheme of derived keys.
type KeyAlgorithm string

const (
	Secp256k1    KeyAlgorithm = "secp256k1"
	EthSecp256k1 KeyAlgorithm = "eth_secp256k1"
)

// NetworkType is the address prefix and HD path used to derive a signer from a mnemonic.
type NetworkType struct {
	// Human readable part of bech32 addresses
	Prefix string

	// Full BIP44 path, ex. m/44'/118'/0'/0/0
	HDPath string

	Algorithm KeyAlgorithm
}

var (
	Testnet = NetworkType{Prefix: "tp", HDPath: "m/44'/1'/0'/0/0'", Algorithm: Secp256k1}
	Mainnet = NetworkType{Prefix: "pb", HDPath: "m/505'/1'/0'/0/0", Algorithm: Secp256k1}
)

// NewNetworkType returns a network type using the first account of the given SLIP44 coin type.
func NewNetworkType(prefix string, coinType uint32, algorithm KeyAlgorithm) NetworkType {
	return NetworkType{
		Prefix:    prefix,
		HDPath:    hd.CreateHDPath(coinType, 0, 0).String(),
		Algorithm: algorithm,
	}
}

func (n NetworkType) Validate() error {
	if n.Prefix == "" {
		return fmt.Errorf("network type has no address prefix")
	}
	if n.HDPath == "" {
		return fmt.Errorf("network type has no hd path")
	}
	switch n.Algorithm {
	case Secp256k1, EthSecp256k1:
		return nil
	default:
		return fmt.Errorf("unknown key algorithm: %q", n.Algorithm)
	}
}
