package rpc

import (
	"context"
	"fmt"

	"github.com/tessellated-io/txpipe/grpc"
	"github.com/tessellated-io/txpipe/log"
	grpcgo "google.golang.org/grpc"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	evmcryptocodec "github.com/cosmos/evm/crypto/codec"
)

// grpcClient is the private and default implementation.
type grpcClient struct {
	cdc *codec.ProtoCodec

	conn     *grpcgo.ClientConn
	ownsConn bool

	authClient authtypes.QueryClient
	txClient   txtypes.ServiceClient

	log *log.Logger
}

// Ensure that grpcClient implements Client
var _ Client = (*grpcClient)(nil)

// NewCodec returns a codec that understands the account and key types the pipeline unpacks.
func NewCodec() *codec.ProtoCodec {
	registry := codectypes.NewInterfaceRegistry()

	authtypes.RegisterInterfaces(registry)
	vestingtypes.RegisterInterfaces(registry)
	cryptocodec.RegisterInterfaces(registry)
	evmcryptocodec.RegisterInterfaces(registry)

	return codec.NewProtoCodec(registry)
}

// DialGrpcClient opens a connection to nodeGrpcUri. The returned client owns the connection.
func DialGrpcClient(nodeGrpcUri string, options grpc.Options, cdc *codec.ProtoCodec, log *log.Logger) (Client, error) {
	dialOptions := make([]grpcgo.DialOption, 0, len(options.DialOptions)+1)
	dialOptions = append(dialOptions, grpcgo.WithDefaultCallOptions(grpcgo.ForceCodec(WireCodec())))
	options.DialOptions = append(dialOptions, options.DialOptions...)

	conn, err := grpc.GetGrpcConnection(nodeGrpcUri, options)
	if err != nil {
		log.Error("unable to connect to grpc", "grpc_uri", nodeGrpcUri, "error", err)
		return nil, err
	}

	client := newGrpcClient(conn, cdc, log)
	client.ownsConn = true
	return client, nil
}

// NewGrpcClient wraps a caller-owned connection. Close on the returned client leaves conn open. The connection
// must use WireCodec, ex. grpc.WithDefaultCallOptions(grpc.ForceCodec(rpc.WireCodec())).
func NewGrpcClient(conn *grpcgo.ClientConn, cdc *codec.ProtoCodec, log *log.Logger) Client {
	return newGrpcClient(conn, cdc, log)
}

func newGrpcClient(conn *grpcgo.ClientConn, cdc *codec.ProtoCodec, log *log.Logger) *grpcClient {
	return &grpcClient{
		cdc: cdc,

		conn: conn,

		authClient: authtypes.NewQueryClient(conn),
		txClient:   txtypes.NewServiceClient(conn),

		log: log,
	}
}

func (r *grpcClient) Account(ctx context.Context, address string) (sdk.AccountI, error) {
	query := &authtypes.QueryAccountRequest{Address: address}
	res, err := r.authClient.Account(
		ctx,
		query,
	)
	if err != nil {
		return nil, err
	}
	if res.Account == nil {
		return nil, fmt.Errorf("%w: empty account in response for %s", ErrUnknownAccountType, address)
	}

	// Deserialize response
	var account sdk.AccountI
	if err := r.cdc.UnpackAny(res.Account, &account); err != nil {
		r.log.Debug("unable to unpack account", "address", address, "type_url", res.Account.TypeUrl, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccountType, res.Account.TypeUrl)
	}

	return account, nil
}

func (r *grpcClient) Simulate(
	ctx context.Context,
	txBytes []byte,
) (*txtypes.SimulateResponse, error) {
	query := &txtypes.SimulateRequest{
		TxBytes: txBytes,
	}
	simulationResponse, err := r.txClient.Simulate(ctx, query)
	if err != nil {
		return nil, err
	}
	if simulationResponse.GasInfo == nil {
		return nil, fmt.Errorf("simulation response has no gas info")
	}

	return simulationResponse, nil
}

func (r *grpcClient) Broadcast(
	ctx context.Context,
	txBytes []byte,
	mode txtypes.BroadcastMode,
) (*txtypes.BroadcastTxResponse, error) {
	query := &txtypes.BroadcastTxRequest{
		Mode:    mode,
		TxBytes: txBytes,
	}

	return r.txClient.BroadcastTx(
		ctx,
		query,
	)
}

func (r *grpcClient) GetTxStatus(ctx context.Context, txHash string) (*txtypes.GetTxResponse, error) {
	request := &txtypes.GetTxRequest{Hash: txHash}
	return r.txClient.GetTx(ctx, request)
}

func (r *grpcClient) Close() error {
	if !r.ownsConn {
		return nil
	}
	return r.conn.Close()
}
