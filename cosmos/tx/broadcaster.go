package tx

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tessellated-io/txpipe/coding"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// BroadcastTx signs the final transaction for estimate and submits it once.
func (c *Client) BroadcastTx(
	ctx context.Context,
	baseReq *BaseRequest,
	estimate *GasEstimate,
	mode txtypes.BroadcastMode,
) (*txtypes.BroadcastTxResponse, error) {
	txRaw, err := c.BuildTx(baseReq, estimate)
	if err != nil {
		c.logger.Error("failed to sign transaction", "error", err)
		return nil, err
	}

	return c.BroadcastRaw(ctx, txRaw, mode)
}

// BroadcastRaw submits an already signed transaction once. A response with a non-zero code is returned along
// with an ErrBroadcast error.
func (c *Client) BroadcastRaw(ctx context.Context, txRaw *txtypes.TxRaw, mode txtypes.BroadcastMode) (*txtypes.BroadcastTxResponse, error) {
	if txRaw == nil {
		return nil, fmt.Errorf("%w: transaction is nil", ErrInvalidRequest)
	}
	if mode == txtypes.BroadcastMode_BROADCAST_MODE_UNSPECIFIED {
		return nil, fmt.Errorf("%w: broadcast mode is unspecified", ErrInvalidRequest)
	}

	txBytes, err := txRaw.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding transaction: %w", ErrInvalidRequest, err)
	}
	logger := c.logger.ApplyPrefix("[broadcast]").With("tx_hash", coding.TxHash(txBytes), "mode", mode.String())

	logger.Debug("broadcasting transaction", "payload", coding.PayloadFingerprint(txBytes), "size", len(txBytes))

	started := time.Now()
	result, err := c.rpcClient.Broadcast(ctx, txBytes, mode)
	c.metrics.observeBroadcast(mode.String(), started)
	if err != nil {
		logger.Error("failed to broadcast transaction", "error", err)
		return nil, classify(ErrBroadcast, err)
	}

	isSuccess, err := IsSuccess(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBroadcast, err)
	}

	txResponse := result.TxResponse
	logger.Info("📣 broadcasted transaction", "code", txResponse.Code, "codespace", txResponse.Codespace, "gas_wanted", txResponse.GasWanted, "logs", txResponse.RawLog)
	if !isSuccess {
		switch {
		case IsSequenceMismatch(txResponse.Codespace, txResponse.Code):
			logger.Warn("signer sequence is stale, re-resolve accounts before resubmitting")
		case IsGasRelatedError(txResponse.Codespace, txResponse.Code):
			logger.Warn("transaction was rejected for gas, consider a higher gas adjustment or price")
		}
		return result, fmt.Errorf("%w: code %d in codespace %q: %s", ErrBroadcast, txResponse.Code, txResponse.Codespace, txResponse.RawLog)
	}

	return result, nil
}

// GetTx returns the node's view of a transaction. It does not wait for inclusion. The hash may be given in
// either case, with or without a 0x prefix.
func (c *Client) GetTx(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	hashBytes, err := coding.DecodeHex(txHash)
	if err != nil || len(hashBytes) == 0 {
		return nil, fmt.Errorf("%w: invalid tx hash %q", ErrInvalidRequest, txHash)
	}

	status, err := c.rpcClient.GetTxStatus(ctx, strings.ToUpper(hex.EncodeToString(hashBytes)))
	if err != nil {
		return nil, classify(ErrBroadcast, err)
	}
	return status, nil
}

// IsSuccess reports whether the node accepted the transaction.
func IsSuccess(result *txtypes.BroadcastTxResponse) (bool, error) {
	if result == nil || result.TxResponse == nil {
		return false, errors.New("broadcast response is empty")
	}
	return result.TxResponse.Code == 0, nil
}

// ParseBroadcastMode maps a config or CLI value to a broadcast mode.
func ParseBroadcastMode(rawMode string) (txtypes.BroadcastMode, error) {
	switch rawMode {
	case "", "sync":
		return txtypes.BroadcastMode_BROADCAST_MODE_SYNC, nil
	case "async":
		return txtypes.BroadcastMode_BROADCAST_MODE_ASYNC, nil
	case "block":
		return txtypes.BroadcastMode_BROADCAST_MODE_BLOCK, nil
	default:
		return txtypes.BroadcastMode_BROADCAST_MODE_UNSPECIFIED, fmt.Errorf("unknown broadcast mode: %q", rawMode)
	}
}
