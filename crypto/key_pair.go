package crypto

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
)

// KeyPair is a secp256k1 key with a fixed bech32 prefix.
type KeyPair struct {
	prefix  string
	address string

	Public  cryptotypes.PubKey
	Private cryptotypes.PrivKey
}

var _ Signer = (*KeyPair)(nil)

// NewKeyPairFromMnemonic derives the key at network.HDPath from the mnemonic and BIP39 passphrase.
func NewKeyPairFromMnemonic(network NetworkType, mnemonic, passphrase string) (*KeyPair, error) {
	derivedPriv, err := deriveFromMnemonic(hd.Secp256k1.Derive(), network, mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	return NewKeyPair(network.Prefix, hd.Secp256k1.Generate()(derivedPriv))
}

// NewKeyPair wraps an existing private key.
func NewKeyPair(prefix string, privKey cryptotypes.PrivKey) (*KeyPair, error) {
	if privKey == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidKeyMaterial)
	}

	pubKey := privKey.PubKey()
	address, err := sdk.Bech32ifyAddressBytes(prefix, pubKey.Address())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
	}

	return &KeyPair{
		prefix:  prefix,
		address: address,

		Public:  pubKey,
		Private: privKey,
	}, nil
}

func (kp *KeyPair) Address() string {
	return kp.address
}

// SignBytes signs sha256(bytesToSign).
func (kp *KeyPair) SignBytes(
	bytesToSign []byte,
) ([]byte, error) {
	return kp.Private.Sign(bytesToSign)
}

func (kp *KeyPair) PublicKey() cryptotypes.PubKey {
	return kp.Public
}

func deriveFromMnemonic(derive hd.DeriveFn, network NetworkType, mnemonic, passphrase string) ([]byte, error) {
	if err := network.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("%w: mnemonic is not a valid bip39 phrase", ErrInvalidKeyMaterial)
	}

	derived, err := derive(mnemonic, passphrase, network.HDPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyMaterial, err)
	}
	return derived, nil
}
