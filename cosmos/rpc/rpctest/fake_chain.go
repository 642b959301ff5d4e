// Package rpctest provides an in-process chain node for exercising pipeline clients.
package rpctest

import (
	"context"
	"net"
	"sync"

	"github.com/tessellated-io/txpipe/coding"
	"github.com/tessellated-io/txpipe/cosmos/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	gogoproto "github.com/cosmos/gogoproto/proto"
)

const bufferSize = 1024 * 1024

// FakeChain answers the auth and tx services from memory and records every call it receives.
type FakeChain struct {
	authtypes.UnimplementedQueryServer
	txtypes.UnimplementedServiceServer

	lock *sync.Mutex

	accounts     map[string]*codectypes.Any
	accountErrs  map[string]error
	accountCalls map[string]int

	gasUsed     uint64
	simulateErr error
	simulations [][]byte

	broadcastCode      uint32
	broadcastCodespace string
	broadcastLog       string
	broadcastErr       error
	broadcasts         []*txtypes.BroadcastTxRequest

	calls []string
}

func NewFakeChain() *FakeChain {
	return &FakeChain{
		lock: &sync.Mutex{},

		accounts:     make(map[string]*codectypes.Any),
		accountErrs:  make(map[string]error),
		accountCalls: make(map[string]int),

		gasUsed: 100_000,
	}
}

// Start serves the chain on an in-memory listener and returns a connection to it. The returned func stops both.
func (f *FakeChain) Start() (*grpc.ClientConn, func(), error) {
	listener := bufconn.Listen(bufferSize)

	server := grpc.NewServer(grpc.ForceServerCodec(rpc.WireCodec()))
	authtypes.RegisterQueryServer(server, f)
	txtypes.RegisterServiceServer(server, f)
	go func() {
		_ = server.Serve(listener)
	}()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rpc.WireCodec())),
	)
	if err != nil {
		server.Stop()
		return nil, nil, err
	}

	stop := func() {
		_ = conn.Close()
		server.Stop()
	}
	return conn, stop, nil
}

// SetAccount stores account under address.
func (f *FakeChain) SetAccount(address string, account gogoproto.Message) error {
	packed, err := codectypes.NewAnyWithValue(account)
	if err != nil {
		return err
	}

	f.SetRawAccount(address, packed)
	return nil
}

// SetRawAccount stores an already packed account, which may be of a type the client does not know.
func (f *FakeChain) SetRawAccount(address string, account *codectypes.Any) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.accounts[address] = account
}

// FailAccount makes lookups of address fail with err.
func (f *FakeChain) FailAccount(address string, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.accountErrs[address] = err
}

func (f *FakeChain) SetGasUsed(gasUsed uint64) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.gasUsed = gasUsed
}

func (f *FakeChain) FailSimulate(err error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.simulateErr = err
}

// SetBroadcastResult sets the CheckTx outcome reported for every broadcast.
func (f *FakeChain) SetBroadcastResult(code uint32, codespace, rawLog string) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.broadcastCode = code
	f.broadcastCodespace = codespace
	f.broadcastLog = rawLog
}

func (f *FakeChain) FailBroadcast(err error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.broadcastErr = err
}

// AccountCalls is how many times address was looked up.
func (f *FakeChain) AccountCalls(address string) int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.accountCalls[address]
}

// Simulations returns the tx bytes of every simulate call, in order.
func (f *FakeChain) Simulations() [][]byte {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([][]byte(nil), f.simulations...)
}

// Broadcasts returns every broadcast request, in order.
func (f *FakeChain) Broadcasts() []*txtypes.BroadcastTxRequest {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]*txtypes.BroadcastTxRequest(nil), f.broadcasts...)
}

// Calls returns the names of the services called, in order.
func (f *FakeChain) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	return append([]string(nil), f.calls...)
}

func (f *FakeChain) Account(_ context.Context, request *authtypes.QueryAccountRequest) (*authtypes.QueryAccountResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, "Account")
	f.accountCalls[request.Address]++

	if err, found := f.accountErrs[request.Address]; found {
		return nil, err
	}

	account, found := f.accounts[request.Address]
	if !found {
		return nil, status.Errorf(codes.NotFound, "account %s not found", request.Address)
	}
	return &authtypes.QueryAccountResponse{Account: account}, nil
}

func (f *FakeChain) Simulate(_ context.Context, request *txtypes.SimulateRequest) (*txtypes.SimulateResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, "Simulate")
	f.simulations = append(f.simulations, request.TxBytes)

	if f.simulateErr != nil {
		return nil, f.simulateErr
	}
	return &txtypes.SimulateResponse{
		GasInfo: &sdk.GasInfo{GasUsed: f.gasUsed},
	}, nil
}

func (f *FakeChain) BroadcastTx(_ context.Context, request *txtypes.BroadcastTxRequest) (*txtypes.BroadcastTxResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, "BroadcastTx")
	f.broadcasts = append(f.broadcasts, request)

	if f.broadcastErr != nil {
		return nil, f.broadcastErr
	}
	return &txtypes.BroadcastTxResponse{
		TxResponse: f.txResponse(request.TxBytes),
	}, nil
}

func (f *FakeChain) GetTx(_ context.Context, request *txtypes.GetTxRequest) (*txtypes.GetTxResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls = append(f.calls, "GetTx")

	for _, broadcast := range f.broadcasts {
		if coding.TxHash(broadcast.TxBytes) == request.Hash {
			return &txtypes.GetTxResponse{
				TxResponse: f.txResponse(broadcast.TxBytes),
			}, nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "tx not found: %s", request.Hash)
}

func (f *FakeChain) txResponse(txBytes []byte) *sdk.TxResponse {
	return &sdk.TxResponse{
		TxHash:    coding.TxHash(txBytes),
		Code:      f.broadcastCode,
		Codespace: f.broadcastCodespace,
		RawLog:    f.broadcastLog,
	}
}
