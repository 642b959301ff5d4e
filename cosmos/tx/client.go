package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessellated-io/txpipe/arrays"
	"github.com/tessellated-io/txpipe/cosmos/rpc"
	"github.com/tessellated-io/txpipe/log"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// Client runs the transaction pipeline against one chain. It holds no per-run state and is safe for
// concurrent use.
type Client struct {
	chainID string

	rpcClient rpc.Client
	resolver  AccountResolver
	estimator GasEstimator
	metrics   *Metrics
	logger    *log.Logger
}

// NewClient creates a pipeline client. metrics may be nil.
func NewClient(
	chainID string,
	rpcClient rpc.Client,
	gasEstimationMethod GasEstimationMethod,
	metrics *Metrics,
	logger *log.Logger,
) (*Client, error) {
	if chainID == "" {
		return nil, errors.New("chain id is required")
	}
	if rpcClient == nil {
		return nil, errors.New("rpc client is required")
	}
	if gasEstimationMethod == nil {
		return nil, errors.New("gas estimation method is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	client := &Client{
		chainID:   chainID,
		rpcClient: rpcClient,
		metrics:   metrics,
		logger:    logger.With("chain_id", chainID),
	}
	client.resolver = NewAccountResolver(rpcClient, client.logger)
	client.estimator = gasEstimationMethod(client)

	return client, nil
}

func (c *Client) ChainID() string {
	return c.chainID
}

func (c *Client) RpcClient() rpc.Client {
	return c.rpcClient
}

func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Close releases the transport when the rpc client owns it.
func (c *Client) Close() error {
	return c.rpcClient.Close()
}

// BaseRequest resolves signers against this client's chain.
func (c *Client) BaseRequest(
	ctx context.Context,
	body *txtypes.TxBody,
	signers []SignerEntry,
	opts ...RequestOption,
) (*BaseRequest, error) {
	unresolved := arrays.Filter(signers, func(entry SignerEntry) bool { return entry.Account == nil })
	c.logger.Debug("building base request", "signers", len(signers), "lookups", len(unresolved))

	return BuildBaseRequest(ctx, c.resolver, body, signers, c.chainID, opts...)
}

// EstimateTx signs a provisional transaction with a zero fee and hands it to the gas estimator. The provisional
// signatures never leave this call.
func (c *Client) EstimateTx(ctx context.Context, baseReq *BaseRequest) (*GasEstimate, error) {
	if baseReq == nil {
		return nil, fmt.Errorf("%w: base request is nil", ErrInvalidRequest)
	}

	authInfo, err := baseReq.AuthInfo(nil)
	if err != nil {
		return nil, err
	}

	provisionalTx, err := baseReq.signAll(authInfo)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("signed provisional transaction", "signers", len(provisionalTx.Signatures))

	estimate, err := c.estimator(ctx, provisionalTx, baseReq.GasAdjustment())
	if err != nil {
		return nil, classify(ErrEstimation, err)
	}
	if estimate == nil {
		return nil, fmt.Errorf("%w: estimator returned no estimate", ErrEstimation)
	}
	c.metrics.recordEstimate(estimate)

	return estimate, nil
}

// BuildTx signs the final transaction carrying estimate.
func (c *Client) BuildTx(baseReq *BaseRequest, estimate *GasEstimate) (*txtypes.TxRaw, error) {
	if baseReq == nil {
		return nil, fmt.Errorf("%w: base request is nil", ErrInvalidRequest)
	}
	if estimate == nil {
		return nil, fmt.Errorf("%w: gas estimate is nil", ErrInvalidRequest)
	}

	authInfo, err := baseReq.AuthInfo(estimate)
	if err != nil {
		return nil, err
	}

	return baseReq.signAll(authInfo)
}

// EstimateAndBroadcastTx runs the whole pipeline: resolve, sign provisionally, estimate, sign, broadcast. The
// first failing stage aborts the run and nothing after it is attempted.
func (c *Client) EstimateAndBroadcastTx(
	ctx context.Context,
	body *txtypes.TxBody,
	signers []SignerEntry,
	opts ...RequestOption,
) (result *txtypes.BroadcastTxResponse, err error) {
	defer func() {
		c.metrics.recordRun(err)
	}()

	baseReq, err := c.BaseRequest(ctx, body, signers, opts...)
	if err != nil {
		c.logger.Error("failed to build base request", "error", err)
		return nil, err
	}
	c.logger.Debug("resolved signers", "sequences", arrays.Map(baseReq.Signers(), SignerEntry.Sequence))

	estimate, err := c.EstimateTx(ctx, baseReq)
	if err != nil {
		c.logger.Error("failed to estimate transaction", "error", err)
		return nil, err
	}

	return c.BroadcastTx(ctx, baseReq, estimate, baseReq.BroadcastMode())
}
