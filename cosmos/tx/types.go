package tx

import (
	"fmt"

	"github.com/tessellated-io/txpipe/crypto"
	"github.com/tessellated-io/txpipe/util"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// AccountInfo is the on-chain signing metadata for an address.
type AccountInfo struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// SignerEntry is one signer of a transaction.
//
// Account may be supplied by the caller to skip the on-chain lookup, for instance to pin a sequence when
// several transactions are in flight. SequenceOffset is added to the account sequence when signing, so a
// caller can prepare the 2nd, 3rd, ... transaction of a burst before the first one lands.
type SignerEntry struct {
	Signer         crypto.Signer
	SequenceOffset uint64
	Account        *AccountInfo
}

// NewSignerEntry returns an entry that will be resolved on chain with no offset.
func NewSignerEntry(signer crypto.Signer) SignerEntry {
	return SignerEntry{Signer: signer}
}

// Sequence is the sequence this entry signs with. Only meaningful once Account is set.
func (e SignerEntry) Sequence() uint64 {
	if e.Account == nil {
		return e.SequenceOffset
	}
	return e.Account.Sequence + e.SequenceOffset
}

// GasEstimate is the gas limit and fee a transaction will carry.
type GasEstimate struct {
	GasLimit      uint64
	FeeAmount     sdk.Coins
	FeeAdjustment float64
}

type SimulationResult struct {
	GasUsed           uint64
	GasRecommendation uint64
}

// SignDoc is the document a single signer signs in one signing round.
type SignDoc struct {
	Signer   crypto.Signer
	Sequence uint64
	Doc      *txtypes.SignDoc
}

// Bytes is the canonical encoding that gets signed.
func (sd SignDoc) Bytes() ([]byte, error) {
	return sd.Doc.Marshal()
}

// sign signs the document. Signer failures, including panics, come back as ErrSigning.
func (sd SignDoc) sign() ([]byte, error) {
	address := sd.Signer.Address()

	bytes, err := sd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding sign doc for %s: %w", ErrSigning, address, err)
	}

	signature, err := util.SafeCall(func() ([]byte, error) {
		return sd.Signer.SignBytes(bytes)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, address, err)
	}
	if len(signature) == 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrSigning, address, errEmptySignature)
	}

	return signature, nil
}
