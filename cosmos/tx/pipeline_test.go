package tx_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/txpipe/cosmos/gasprice"
	"github.com/tessellated-io/txpipe/cosmos/tx"
	"github.com/tessellated-io/txpipe/crypto"
	"github.com/tessellated-io/txpipe/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/math"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
)

func TestEstimateAndBroadcastTx_SingleSigner(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.SetGasUsed(100_000)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	body := newBody(t, signer.Address(), signer.Address())

	result, err := client.EstimateAndBroadcastTx(context.Background(), body, []tx.SignerEntry{tx.NewSignerEntry(signer)}, tx.WithGasAdjustment(1.5))
	require.NoError(t, err)
	require.NotNil(t, result.TxResponse)
	assert.Equal(t, uint32(0), result.TxResponse.Code)

	// Exactly one simulation, strictly before exactly one broadcast
	assert.Equal(t, []string{"Account", "Simulate", "BroadcastTx"}, chain.Calls())

	simulations := chain.Simulations()
	require.Len(t, simulations, 1)
	provisional := decodeTx(t, simulations[0])
	assert.Equal(t, uint64(0), provisional.authInfo.Fee.GasLimit)
	assert.True(t, provisional.authInfo.Fee.Amount.IsZero())
	assert.Equal(t, []uint64{5}, provisional.sequences())
	provisional.requireSignedBy(t, 0, signer, testChainID, 12)

	broadcasts := chain.Broadcasts()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, txtypes.BroadcastMode_BROADCAST_MODE_SYNC, broadcasts[0].Mode)

	final := decodeTx(t, broadcasts[0].TxBytes)
	assert.Equal(t, uint64(150_000), final.authInfo.Fee.GasLimit)
	assert.Equal(t, "285750000nhash", final.authInfo.Fee.Amount.String())
	assert.Equal(t, []uint64{5}, final.sequences())
	assert.Equal(t, "pipeline test", final.body.Memo)
	assert.Equal(t, provisional.raw.BodyBytes, final.raw.BodyBytes)
	require.Len(t, final.raw.Signatures, 1)
	final.requireSignedBy(t, 0, signer, testChainID, 12)

	// Both rounds carry the same signer infos, only the fee differs
	publicKey, err := codectypes.NewAnyWithValue(signer.PublicKey())
	require.NoError(t, err)
	require.Len(t, final.authInfo.SignerInfos, 1)
	signerInfo := final.authInfo.SignerInfos[0]
	assert.Equal(t, publicKey.TypeUrl, signerInfo.PublicKey.TypeUrl)
	assert.Equal(t, publicKey.Value, signerInfo.PublicKey.Value)
	assert.Equal(t, signingtypes.SignMode_SIGN_MODE_DIRECT, signerInfo.ModeInfo.GetSingle().Mode)
	assert.Equal(t, provisional.authInfo.SignerInfos, final.authInfo.SignerInfos)

	withProvisionalFee := final.authInfo
	withProvisionalFee.Fee = provisional.authInfo.Fee
	assert.Equal(t, provisional.authInfo, withProvisionalFee)
	assert.NotEqual(t, provisional.authInfo.Fee, final.authInfo.Fee)
}

func TestAccountResolver_ResolveIsIdempotent(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	resolver := tx.NewAccountResolver(rpcClient, log.Discard())
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, signer.Address())
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, signer.Address())
	require.NoError(t, err)

	assert.Equal(t, &tx.AccountInfo{Address: signer.Address(), AccountNumber: 12, Sequence: 5}, first)
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, []string{"Account", "Account"}, chain.Calls())
}

func TestClient_TransactionsDoNotShareRequestBody(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	// An estimator that scribbles over the transaction it is handed
	tampering := func(_ *tx.Client) tx.GasEstimator {
		return func(_ context.Context, signedTx *txtypes.TxRaw, _ float64) (*tx.GasEstimate, error) {
			signedTx.BodyBytes[0] ^= 0xff
			return &tx.GasEstimate{GasLimit: 100_000, FeeAmount: sdk.NewCoins(sdk.NewInt64Coin("nhash", 1))}, nil
		}
	}
	client := newClient(t, rpcClient, tampering)
	ctx := context.Background()

	baseReq, err := client.BaseRequest(ctx, newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	require.NoError(t, err)
	before := baseReq.BodyBytes()

	estimate, err := client.EstimateTx(ctx, baseReq)
	require.NoError(t, err)
	assert.Equal(t, before, baseReq.BodyBytes())

	txRaw, err := client.BuildTx(baseReq, estimate)
	require.NoError(t, err)
	txRaw.BodyBytes[0] ^= 0xff
	assert.Equal(t, before, baseReq.BodyBytes())

	rebuilt, err := client.BuildTx(baseReq, estimate)
	require.NoError(t, err)
	assert.Equal(t, before, rebuilt.BodyBytes)

	rebuiltBytes, err := rebuilt.Marshal()
	require.NoError(t, err)
	decodeTx(t, rebuiltBytes).requireSignedBy(t, 0, signer, testChainID, 12)
}

func TestEstimateAndBroadcastTx_TwoSignersWithOffsets(t *testing.T) {
	chain, rpcClient := startChain(t)
	first := newSigner(t, firstMnemonic)
	second := newSigner(t, secondMnemonic)
	setAccount(t, chain, first, 1, 7)
	setAccount(t, chain, second, 2, 3)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	signers := []tx.SignerEntry{
		{Signer: first, SequenceOffset: 0},
		{Signer: second, SequenceOffset: 2},
	}

	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, first.Address(), second.Address()), signers)
	require.NoError(t, err)

	// Each signer is resolved exactly once
	assert.Equal(t, 1, chain.AccountCalls(first.Address()))
	assert.Equal(t, 1, chain.AccountCalls(second.Address()))

	broadcasts := chain.Broadcasts()
	require.Len(t, broadcasts, 1)
	final := decodeTx(t, broadcasts[0].TxBytes)

	assert.Equal(t, []uint64{7, 5}, final.sequences())
	require.Len(t, final.raw.Signatures, 2)
	final.requireSignedBy(t, 0, first, testChainID, 1)
	final.requireSignedBy(t, 1, second, testChainID, 2)
}

func TestEstimateAndBroadcastTx_UnrecognizedAccountType(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	chain.SetRawAccount(signer.Address(), &codectypes.Any{
		TypeUrl: "/provenance.marker.v1.MarkerAccount",
		Value:   []byte{0x0a, 0x01, 0x61},
	})

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	result, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, tx.ErrResolution)
	assert.ErrorIs(t, err, tx.ErrAccountNotFound)

	assert.Equal(t, []string{"Account"}, chain.Calls())
	assert.Empty(t, chain.Simulations())
	assert.Empty(t, chain.Broadcasts())
}

func TestEstimateAndBroadcastTx_MissingAccount(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrResolution)
	assert.ErrorIs(t, err, tx.ErrAccountNotFound)
	assert.Empty(t, chain.Simulations())
}

func TestEstimateAndBroadcastTx_ResolutionTransportFailure(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	chain.FailAccount(signer.Address(), status.Error(codes.Unavailable, "node is down"))

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrTransport)
	assert.NotErrorIs(t, err, tx.ErrAccountNotFound)

	// No retries
	assert.Equal(t, 1, chain.AccountCalls(signer.Address()))
	assert.Empty(t, chain.Simulations())
}

func TestEstimateAndBroadcastTx_SimulationFailure(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.FailSimulate(status.Error(codes.InvalidArgument, "out of gas"))

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	result, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, tx.ErrEstimation)
	assert.Equal(t, []string{"Account", "Simulate"}, chain.Calls())
	assert.Empty(t, chain.Broadcasts())
}

func TestEstimateAndBroadcastTx_RejectedBroadcast(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.SetBroadcastResult(5, "sdk", "insufficient funds")

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	result, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrBroadcast)

	// The node's response is handed back untouched
	require.NotNil(t, result)
	assert.Equal(t, uint32(5), result.TxResponse.Code)
	assert.Equal(t, "sdk", result.TxResponse.Codespace)
	assert.Equal(t, "insufficient funds", result.TxResponse.RawLog)
	assert.Len(t, chain.Broadcasts(), 1)
}

func TestEstimateAndBroadcastTx_BroadcastTransportFailureIsNotRetried(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.FailBroadcast(status.Error(codes.Unavailable, "connection reset"))

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrTransport)
	assert.Len(t, chain.Broadcasts(), 1)
}

func TestEstimateAndBroadcastTx_CanceledContext(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	_, err := client.EstimateAndBroadcastTx(ctx, newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrTransport)
	assert.Empty(t, chain.Broadcasts())
}

type panickingSigner struct {
	*crypto.KeyPair
}

func (panickingSigner) SignBytes(_ []byte) ([]byte, error) {
	panic("hardware wallet unplugged")
}

type failingSigner struct {
	*crypto.KeyPair
}

func (failingSigner) SignBytes(_ []byte) ([]byte, error) {
	return nil, errors.New("user rejected signature")
}

func TestEstimateAndBroadcastTx_SignerFailures(t *testing.T) {
	for name, wrap := range map[string]func(*crypto.KeyPair) crypto.Signer{
		"panic": func(kp *crypto.KeyPair) crypto.Signer { return panickingSigner{kp} },
		"error": func(kp *crypto.KeyPair) crypto.Signer { return failingSigner{kp} },
	} {
		t.Run(name, func(t *testing.T) {
			chain, rpcClient := startChain(t)
			signer := wrap(newSigner(t, firstMnemonic))
			setAccount(t, chain, signer, 12, 5)

			client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
			_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
			assert.ErrorIs(t, err, tx.ErrSigning)
			assert.Contains(t, err.Error(), signer.Address())
			assert.Empty(t, chain.Simulations())
			assert.Empty(t, chain.Broadcasts())
		})
	}
}

func TestEstimateAndBroadcastTx_SuppliedAccountSkipsLookup(t *testing.T) {
	chain, rpcClient := startChain(t)
	first := newSigner(t, firstMnemonic)
	second := newSigner(t, secondMnemonic)
	setAccount(t, chain, first, 1, 7)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	signers := []tx.SignerEntry{
		tx.NewSignerEntry(first),
		{Signer: second, SequenceOffset: 1, Account: &tx.AccountInfo{Address: second.Address(), AccountNumber: 44, Sequence: 10}},
	}

	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, first.Address(), second.Address()), signers)
	require.NoError(t, err)
	assert.Equal(t, 1, chain.AccountCalls(first.Address()))
	assert.Equal(t, 0, chain.AccountCalls(second.Address()))

	final := decodeTx(t, chain.Broadcasts()[0].TxBytes)
	assert.Equal(t, []uint64{7, 11}, final.sequences())
	final.requireSignedBy(t, 1, second, testChainID, 44)
}

func TestEstimateAndBroadcastTx_Options(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	granter := newSigner(t, secondMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.SetGasUsed(80_000)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	_, err := client.EstimateAndBroadcastTx(
		context.Background(),
		newBody(t, signer.Address(), signer.Address()),
		[]tx.SignerEntry{tx.NewSignerEntry(signer)},
		tx.WithFeeGranter(granter.Address()),
		tx.WithBroadcastMode(txtypes.BroadcastMode_BROADCAST_MODE_ASYNC),
	)
	require.NoError(t, err)

	broadcasts := chain.Broadcasts()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, txtypes.BroadcastMode_BROADCAST_MODE_ASYNC, broadcasts[0].Mode)

	final := decodeTx(t, broadcasts[0].TxBytes)
	assert.Equal(t, granter.Address(), final.authInfo.Fee.Granter)
	// Default adjustment of 1.25
	assert.Equal(t, uint64(100_000), final.authInfo.Fee.GasLimit)
}

func TestEstimateAndBroadcastTx_FixedGas(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	fee := sdk.NewCoins(sdk.NewInt64Coin("nhash", 500))
	client := newClient(t, rpcClient, tx.FixedGas(200_000, fee))
	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	require.NoError(t, err)

	assert.Empty(t, chain.Simulations())
	final := decodeTx(t, chain.Broadcasts()[0].TxBytes)
	assert.Equal(t, uint64(200_000), final.authInfo.Fee.GasLimit)
	assert.Equal(t, fee.String(), final.authInfo.Fee.Amount.String())
}

type failingSource struct{}

func (failingSource) GasPrice(_ context.Context) (sdk.DecCoin, error) {
	return sdk.DecCoin{}, errors.New("oracle unreachable")
}

func TestEstimateAndBroadcastTx_FloatingGasPrice(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)
	chain.SetGasUsed(100_000)

	source := gasprice.StaticSource(sdk.NewDecCoinFromDec("nhash", math.LegacyNewDec(2)))
	client := newClient(t, rpcClient, tx.FloatingGasPrice(source, tx.CosmosSimulation(testGasPrice)))

	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)}, tx.WithGasAdjustment(1.5))
	require.NoError(t, err)

	final := decodeTx(t, chain.Broadcasts()[0].TxBytes)
	assert.Equal(t, uint64(150_000), final.authInfo.Fee.GasLimit)
	assert.Equal(t, "300000nhash", final.authInfo.Fee.Amount.String())
}

func TestEstimateAndBroadcastTx_FloatingGasPriceFailure(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	client := newClient(t, rpcClient, tx.FloatingGasPrice(failingSource{}, tx.CosmosSimulation(testGasPrice)))
	_, err := client.EstimateAndBroadcastTx(context.Background(), newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrEstimation)
	assert.Empty(t, chain.Broadcasts())
}

func TestEstimateAndBroadcastTx_InvalidRequests(t *testing.T) {
	_, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	body := newBody(t, signer.Address(), signer.Address())

	_, err := client.EstimateAndBroadcastTx(context.Background(), body, nil)
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)

	_, err = client.EstimateAndBroadcastTx(context.Background(), nil, []tx.SignerEntry{tx.NewSignerEntry(signer)})
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)

	_, err = client.EstimateAndBroadcastTx(context.Background(), body, []tx.SignerEntry{tx.NewSignerEntry(signer)}, tx.WithGasAdjustment(0))
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)
}

func TestClient_StagesAreDeterministic(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	ctx := context.Background()

	baseReq, err := client.BaseRequest(ctx, newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	require.NoError(t, err)

	firstEstimate, err := client.EstimateTx(ctx, baseReq)
	require.NoError(t, err)
	secondEstimate, err := client.EstimateTx(ctx, baseReq)
	require.NoError(t, err)
	assert.Equal(t, firstEstimate.GasLimit, secondEstimate.GasLimit)
	assert.Equal(t, firstEstimate.FeeAmount.String(), secondEstimate.FeeAmount.String())

	// Same simulated bytes both times
	simulations := chain.Simulations()
	require.Len(t, simulations, 2)
	assert.Equal(t, simulations[0], simulations[1])

	firstTx, err := client.BuildTx(baseReq, firstEstimate)
	require.NoError(t, err)
	secondTx, err := client.BuildTx(baseReq, firstEstimate)
	require.NoError(t, err)
	assert.Equal(t, firstTx, secondTx)

	_, err = client.BuildTx(baseReq, nil)
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)
}

func TestClient_BroadcastRawAndGetTx(t *testing.T) {
	chain, rpcClient := startChain(t)
	signer := newSigner(t, firstMnemonic)
	setAccount(t, chain, signer, 12, 5)

	client := newClient(t, rpcClient, tx.CosmosSimulation(testGasPrice))
	ctx := context.Background()

	baseReq, err := client.BaseRequest(ctx, newBody(t, signer.Address(), signer.Address()), []tx.SignerEntry{tx.NewSignerEntry(signer)})
	require.NoError(t, err)
	estimate, err := client.EstimateTx(ctx, baseReq)
	require.NoError(t, err)
	txRaw, err := client.BuildTx(baseReq, estimate)
	require.NoError(t, err)

	result, err := client.BroadcastRaw(ctx, txRaw, txtypes.BroadcastMode_BROADCAST_MODE_BLOCK)
	require.NoError(t, err)
	assert.Equal(t, txtypes.BroadcastMode_BROADCAST_MODE_BLOCK, chain.Broadcasts()[0].Mode)

	txStatus, err := client.GetTx(ctx, result.TxResponse.TxHash)
	require.NoError(t, err)
	assert.Equal(t, result.TxResponse.TxHash, txStatus.TxResponse.TxHash)

	lowered, err := client.GetTx(ctx, "0x"+strings.ToLower(result.TxResponse.TxHash))
	require.NoError(t, err)
	assert.Equal(t, result.TxResponse.TxHash, lowered.TxResponse.TxHash)

	_, err = client.GetTx(ctx, "DEADBEEF")
	assert.Error(t, err)

	_, err = client.GetTx(ctx, "not a hash")
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)

	_, err = client.BroadcastRaw(ctx, txRaw, txtypes.BroadcastMode_BROADCAST_MODE_UNSPECIFIED)
	assert.ErrorIs(t, err, tx.ErrInvalidRequest)
}

func TestNewClient_Validation(t *testing.T) {
	_, rpcClient := startChain(t)

	_, err := tx.NewClient("", rpcClient, tx.CosmosSimulation(testGasPrice), nil, nil)
	assert.Error(t, err)

	_, err = tx.NewClient(testChainID, nil, tx.CosmosSimulation(testGasPrice), nil, nil)
	assert.Error(t, err)

	_, err = tx.NewClient(testChainID, rpcClient, nil, nil, nil)
	assert.Error(t, err)

	client, err := tx.NewClient(testChainID, rpcClient, tx.CosmosSimulation(testGasPrice), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, testChainID, client.ChainID())
	// Caller owns the connection
	assert.NoError(t, client.Close())
}
