package crypto

import "fmt"

// NewSignerFromMnemonic returns a signer for the network's key algorithm.
func NewSignerFromMnemonic(network NetworkType, mnemonic, passphrase string) (Signer, error) {
	switch network.Algorithm {
	case Secp256k1:
		return NewKeyPairFromMnemonic(network, mnemonic, passphrase)
	case EthSecp256k1:
		return NewEthermintKeyPairFromMnemonic(network, mnemonic, passphrase)
	}

	return nil, fmt.Errorf("%w: unknown key algorithm: %q", ErrInvalidKeyMaterial, network.Algorithm)
}
