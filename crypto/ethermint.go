package crypto

import (
	"fmt"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	evmhd "github.com/cosmos/evm/crypto/hd"
	"golang.org/x/crypto/sha3"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EthermintKeyPair is an eth_secp256k1 key. Addresses are the last 20 bytes of the keccak hash of the
// uncompressed public key, bech32 encoded with the prefix.
type EthermintKeyPair struct {
	prefix  string
	address string

	Public  cryptotypes.PubKey
	Private cryptotypes.PrivKey
}

var _ Signer = (*EthermintKeyPair)(nil)

// NewEthermintKeyPairFromMnemonic derives an eth_secp256k1 key at network.HDPath.
func NewEthermintKeyPairFromMnemonic(network NetworkType, mnemonic, passphrase string) (*EthermintKeyPair, error) {
	derivedPriv, err := deriveFromMnemonic(evmhd.EthSecp256k1.Derive(), network, mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	privKey := evmhd.EthSecp256k1.Generate()(derivedPriv)
	pubKey := privKey.PubKey()

	address, err := ethermintAddress(network.Prefix, pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
	}

	return &EthermintKeyPair{
		prefix:  network.Prefix,
		address: address,

		Public:  pubKey,
		Private: privKey,
	}, nil
}

func (e *EthermintKeyPair) Address() string {
	return e.address
}

// SignBytes signs keccak256(bytesToSign).
func (e *EthermintKeyPair) SignBytes(
	bytesToSign []byte,
) ([]byte, error) {
	return e.Private.Sign(bytesToSign)
}

func (e *EthermintKeyPair) PublicKey() cryptotypes.PubKey {
	return e.Public
}

func ethermintAddress(prefix string, compressedPublicKey cryptotypes.PubKey) (string, error) {
	parsed, err := btcec.ParsePubKey(compressedPublicKey.Bytes())
	if err != nil {
		return "", err
	}
	decompressedPublicKey := parsed.SerializeUncompressed()

	hash := sha3.NewLegacyKeccak256()
	hash.Write(decompressedPublicKey[1:]) // Remove the prefix byte from the uncompressed public key
	addressBytes := hash.Sum(nil)[12:]

	return sdk.Bech32ifyAddressBytes(prefix, addressBytes)
}
