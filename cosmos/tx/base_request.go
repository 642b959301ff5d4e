package tx

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tessellated-io/txpipe/arrays"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
)

// BaseRequest is everything needed to sign a transaction except the fee. It is immutable once built, and every
// signer entry carries resolved account metadata.
type BaseRequest struct {
	signers   []SignerEntry
	bodyBytes []byte
	chainID   string

	gasAdjustment float64
	feeGranter    string
	broadcastMode txtypes.BroadcastMode
}

// RequestOption customizes a BaseRequest while it is being built.
type RequestOption func(*BaseRequest)

// WithGasAdjustment sets the multiplier applied to simulated gas. Must be positive.
func WithGasAdjustment(gasAdjustment float64) RequestOption {
	return func(br *BaseRequest) {
		br.gasAdjustment = gasAdjustment
	}
}

// WithFeeGranter sets the address paying the fee on behalf of the signers.
func WithFeeGranter(feeGranter string) RequestOption {
	return func(br *BaseRequest) {
		br.feeGranter = feeGranter
	}
}

// WithBroadcastMode sets the mode used when the request is broadcast by the pipeline.
func WithBroadcastMode(mode txtypes.BroadcastMode) RequestOption {
	return func(br *BaseRequest) {
		br.broadcastMode = mode
	}
}

// BuildBaseRequest resolves every signer entry that does not carry account metadata yet, concurrently and at
// most once per entry, and freezes the body. Entries with metadata are used as given.
func BuildBaseRequest(
	ctx context.Context,
	resolver AccountResolver,
	body *txtypes.TxBody,
	signers []SignerEntry,
	chainID string,
	opts ...RequestOption,
) (*BaseRequest, error) {
	switch {
	case body == nil:
		return nil, fmt.Errorf("%w: transaction body is nil", ErrInvalidRequest)
	case len(signers) == 0:
		return nil, fmt.Errorf("%w: at least one signer is required", ErrInvalidRequest)
	case chainID == "":
		return nil, fmt.Errorf("%w: chain id is empty", ErrInvalidRequest)
	}
	for i, entry := range signers {
		if entry.Signer == nil {
			return nil, fmt.Errorf("%w: signer %d is nil", ErrInvalidRequest, i)
		}
	}

	request := &BaseRequest{
		chainID:       chainID,
		gasAdjustment: DefaultGasAdjustment,
		broadcastMode: txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	}
	for _, opt := range opts {
		opt(request)
	}
	if request.gasAdjustment <= 0 || math.IsNaN(request.gasAdjustment) || math.IsInf(request.gasAdjustment, 0) {
		return nil, fmt.Errorf("%w: gas adjustment must be positive, got %v", ErrInvalidRequest, request.gasAdjustment)
	}
	if request.broadcastMode == txtypes.BroadcastMode_BROADCAST_MODE_UNSPECIFIED {
		return nil, fmt.Errorf("%w: broadcast mode is unspecified", ErrInvalidRequest)
	}

	bodyBytes, err := body.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding transaction body: %w", ErrInvalidRequest, err)
	}
	request.bodyBytes = bodyBytes

	resolved, err := arrays.ParallelMap(ctx, signers, func(ctx context.Context, entry SignerEntry) (SignerEntry, error) {
		if entry.Account != nil {
			account := *entry.Account
			entry.Account = &account
			return entry, nil
		}

		account, err := resolver.Resolve(ctx, entry.Signer.Address())
		if err != nil {
			return SignerEntry{}, err
		}
		entry.Account = account
		return entry, nil
	})
	if err != nil {
		return nil, classify(ErrResolution, err)
	}
	request.signers = resolved

	return request, nil
}

// Signers returns a copy of the resolved signer entries, in signing order.
func (br *BaseRequest) Signers() []SignerEntry {
	signers := make([]SignerEntry, len(br.signers))
	for i, entry := range br.signers {
		account := *entry.Account
		entry.Account = &account
		signers[i] = entry
	}
	return signers
}

// Body decodes a fresh copy of the transaction body.
func (br *BaseRequest) Body() (*txtypes.TxBody, error) {
	var body txtypes.TxBody
	if err := body.Unmarshal(br.bodyBytes); err != nil {
		return nil, err
	}
	return &body, nil
}

// BodyBytes is the body encoding every signing round signs over.
func (br *BaseRequest) BodyBytes() []byte {
	return append([]byte(nil), br.bodyBytes...)
}

func (br *BaseRequest) ChainID() string {
	return br.chainID
}

func (br *BaseRequest) GasAdjustment() float64 {
	return br.gasAdjustment
}

func (br *BaseRequest) FeeGranter() string {
	return br.feeGranter
}

func (br *BaseRequest) BroadcastMode() txtypes.BroadcastMode {
	return br.broadcastMode
}

// AuthInfo builds the auth info for this request. A nil estimate produces the zero fee used for simulation.
func (br *BaseRequest) AuthInfo(estimate *GasEstimate) (*txtypes.AuthInfo, error) {
	signerInfos := make([]*txtypes.SignerInfo, len(br.signers))
	for i, entry := range br.signers {
		publicKey := entry.Signer.PublicKey()
		if publicKey == nil {
			return nil, fmt.Errorf("%w: signer %s has no public key", ErrSigning, entry.Signer.Address())
		}

		anyPublicKey, err := codectypes.NewAnyWithValue(publicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: packing public key of %s: %w", ErrSigning, entry.Signer.Address(), err)
		}

		signerInfos[i] = &txtypes.SignerInfo{
			PublicKey: anyPublicKey,
			ModeInfo: &txtypes.ModeInfo{
				Sum: &txtypes.ModeInfo_Single_{
					Single: &txtypes.ModeInfo_Single{Mode: signing.SignMode_SIGN_MODE_DIRECT},
				},
			},
			Sequence: entry.Sequence(),
		}
	}

	fee := &txtypes.Fee{
		Granter: br.feeGranter,
	}
	if estimate != nil {
		fee.Amount = estimate.FeeAmount
		fee.GasLimit = estimate.GasLimit
	}

	return &txtypes.AuthInfo{
		SignerInfos: signerInfos,
		Fee:         fee,
	}, nil
}

// SignDocs returns one sign document per signer, in signer order.
func (br *BaseRequest) SignDocs(authInfoBytes, bodyBytes []byte) []SignDoc {
	signDocs := make([]SignDoc, len(br.signers))
	for i, entry := range br.signers {
		signDocs[i] = SignDoc{
			Signer:   entry.Signer,
			Sequence: entry.Sequence(),
			Doc: &txtypes.SignDoc{
				BodyBytes:     bodyBytes,
				AuthInfoBytes: authInfoBytes,
				ChainId:       br.chainID,
				AccountNumber: entry.Account.AccountNumber,
			},
		}
	}
	return signDocs
}

// signAll signs the request once per signer over the given auth info. Signatures are returned in signer order.
func (br *BaseRequest) signAll(authInfo *txtypes.AuthInfo) (*txtypes.TxRaw, error) {
	authInfoBytes, err := authInfo.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding auth info: %w", ErrSigning, err)
	}

	signDocs := br.SignDocs(authInfoBytes, br.bodyBytes)
	signatures := make([][]byte, len(signDocs))
	for i, signDoc := range signDocs {
		signature, err := signDoc.sign()
		if err != nil {
			return nil, err
		}
		signatures[i] = signature
	}

	// Returned transactions get their own body buffer so nothing handed out can reach back into the request
	return &txtypes.TxRaw{
		BodyBytes:     append([]byte(nil), br.bodyBytes...),
		AuthInfoBytes: authInfoBytes,
		Signatures:    signatures,
	}, nil
}

var errEmptySignature = errors.New("signer returned an empty signature")
