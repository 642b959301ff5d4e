package rpc

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// ErrUnknownAccountType is returned when the node answers with an account the codec cannot unpack.
var ErrUnknownAccountType = errors.New("unknown account type")

// Client is the set of node services the transaction pipeline depends on.
type Client interface {
	Account(ctx context.Context, address string) (sdk.AccountI, error)

	Simulate(ctx context.Context, txBytes []byte) (*txtypes.SimulateResponse, error)
	Broadcast(ctx context.Context, txBytes []byte, mode txtypes.BroadcastMode) (*txtypes.BroadcastTxResponse, error)
	GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error)

	// Close releases the underlying connection if the client owns it.
	Close() error
}
