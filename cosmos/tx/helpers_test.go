package tx_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessellated-io/txpipe/cosmos/rpc"
	"github.com/tessellated-io/txpipe/cosmos/rpc/rpctest"
	"github.com/tessellated-io/txpipe/cosmos/tx"
	"github.com/tessellated-io/txpipe/crypto"
	"github.com/tessellated-io/txpipe/log"

	"cosmossdk.io/math"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

const (
	testChainID = "test-1"

	firstMnemonic  = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"
	secondMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"
)

var testGasPrice = sdk.NewDecCoinFromDec("nhash", math.LegacyNewDec(1905))

func newSigner(t *testing.T, mnemonic string) *crypto.KeyPair {
	t.Helper()

	signer, err := crypto.NewKeyPairFromMnemonic(crypto.Testnet, mnemonic, "")
	require.NoError(t, err)
	return signer
}

func newBody(t *testing.T, from, to string) *txtypes.TxBody {
	t.Helper()

	msg, err := codectypes.NewAnyWithValue(&banktypes.MsgSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("nhash", 1000)),
	})
	require.NoError(t, err)

	return &txtypes.TxBody{
		Messages: []*codectypes.Any{msg},
		Memo:     "pipeline test",
	}
}

func startChain(t *testing.T) (*rpctest.FakeChain, rpc.Client) {
	t.Helper()

	chain := rpctest.NewFakeChain()
	conn, stop, err := chain.Start()
	require.NoError(t, err)
	t.Cleanup(stop)

	return chain, rpc.NewGrpcClient(conn, rpc.NewCodec(), log.Discard())
}

func setAccount(t *testing.T, chain *rpctest.FakeChain, signer crypto.Signer, accountNumber, sequence uint64) {
	t.Helper()

	err := chain.SetAccount(signer.Address(), &authtypes.BaseAccount{
		Address:       signer.Address(),
		AccountNumber: accountNumber,
		Sequence:      sequence,
	})
	require.NoError(t, err)
}

func newClient(t *testing.T, rpcClient rpc.Client, method tx.GasEstimationMethod) *tx.Client {
	t.Helper()

	client, err := tx.NewClient(testChainID, rpcClient, method, nil, log.Discard())
	require.NoError(t, err)
	return client
}

// decodedTx is a broadcast or simulated transaction taken apart for assertions.
type decodedTx struct {
	raw      txtypes.TxRaw
	body     txtypes.TxBody
	authInfo txtypes.AuthInfo
}

func decodeTx(t *testing.T, txBytes []byte) *decodedTx {
	t.Helper()

	decoded := &decodedTx{}
	require.NoError(t, decoded.raw.Unmarshal(txBytes))
	require.NoError(t, decoded.body.Unmarshal(decoded.raw.BodyBytes))
	require.NoError(t, decoded.authInfo.Unmarshal(decoded.raw.AuthInfoBytes))
	return decoded
}

func (d *decodedTx) sequences() []uint64 {
	sequences := make([]uint64, len(d.authInfo.SignerInfos))
	for i, signerInfo := range d.authInfo.SignerInfos {
		sequences[i] = signerInfo.Sequence
	}
	return sequences
}

// requireSignedBy checks that signature i was made by signer over this transaction.
func (d *decodedTx) requireSignedBy(t *testing.T, i int, signer crypto.Signer, chainID string, accountNumber uint64) {
	t.Helper()

	signDoc := txtypes.SignDoc{
		BodyBytes:     d.raw.BodyBytes,
		AuthInfoBytes: d.raw.AuthInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}
	signBytes, err := signDoc.Marshal()
	require.NoError(t, err)

	require.Greater(t, len(d.raw.Signatures), i)
	require.True(t, signer.PublicKey().VerifySignature(signBytes, d.raw.Signatures[i]), "signature %d does not verify", i)
}
