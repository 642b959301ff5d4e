package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessellated-io/txpipe/cosmos/rpc"
	"github.com/tessellated-io/txpipe/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AccountResolver looks up the signing metadata of an address.
type AccountResolver interface {
	Resolve(ctx context.Context, address string) (*AccountInfo, error)
}

type accountResolver struct {
	rpcClient rpc.Client
	logger    *log.Logger
}

var _ AccountResolver = (*accountResolver)(nil)

// NewAccountResolver resolves accounts through the auth query service of a node. Lookups are never retried.
func NewAccountResolver(rpcClient rpc.Client, logger *log.Logger) AccountResolver {
	return &accountResolver{
		rpcClient: rpcClient,
		logger:    logger.ApplyPrefix("[resolver]"),
	}
}

func (ar *accountResolver) Resolve(ctx context.Context, address string) (*AccountInfo, error) {
	logger := ar.logger.With("address", address)

	account, err := ar.rpcClient.Account(ctx, address)
	if err != nil {
		if errors.Is(err, rpc.ErrUnknownAccountType) || status.Code(err) == codes.NotFound {
			logger.Error("account cannot be used for signing", "error", err)
			return nil, fmt.Errorf("%w: %w: %s: %w", ErrResolution, ErrAccountNotFound, address, err)
		}

		logger.Error("failed to query account", "error", err)
		return nil, classify(ErrResolution, err)
	}

	info := &AccountInfo{
		Address:       address,
		AccountNumber: account.GetAccountNumber(),
		Sequence:      account.GetSequence(),
	}
	logger.Debug("resolved account", "account_number", info.AccountNumber, "sequence", info.Sequence)

	return info, nil
}
