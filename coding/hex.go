package coding

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cometbft/cometbft/crypto/tmhash"
)

// DecodeHex decodes hex with or without a 0x prefix.
func DecodeHex(in string) ([]byte, error) {
	normalized := in
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		normalized = normalized[2:]
	}

	return hex.DecodeString(normalized)
}

// TxHash returns the hash a CometBFT node reports for the given encoded transaction.
func TxHash(txBytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(tmhash.Sum(txBytes)))
}

// PayloadFingerprint pretty prints a hex payload in an identifiable and succinct way.
func PayloadFingerprint(payload []byte) string {
	if len(payload) <= 8 {
		return NormalizeMaybeEmptyBytes(payload)
	}

	return fmt.Sprintf("[%s...%s]", hex.EncodeToString(payload[0:4]), hex.EncodeToString(payload[len(payload)-4:]))
}

// Returns an empty byte slice rather than no output for empty byte arrays
func NormalizeMaybeEmptyBytes(bytes []byte) string {
	if len(bytes) > 0 {
		return hex.EncodeToString(bytes)
	}
	return "[]"
}
