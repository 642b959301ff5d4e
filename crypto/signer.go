package crypto

import (
	"errors"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
)

var ErrInvalidKeyMaterial = errors.New("invalid key material")

// Signer is a key that can identify itself on chain and sign arbitrary bytes.
//
// Address is stable for the lifetime of the key. Signatures returned by SignBytes verify against PublicKey.
// Implementations must be safe for concurrent use if they are shared between pipeline runs.
type Signer interface {
	Address() string
	PublicKey() cryptotypes.PubKey
	SignBytes(bytesToSign []byte) ([]byte, error)
}
