package stargate

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"stargate-bridge/pkg/types"
	"stargate-bridge/pkg/wallet"
)

// Well-known hardhat development key, test-only.
const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// fakeNetwork implements Network in memory. Transaction statuses are
// looked up per hash so approval and swap outcomes can differ.
type fakeNetwork struct {
	name            string
	chainID         *big.Int
	stargateChainID uint16
	router          common.Address
	approveGasLimit uint64

	nativeBalance *big.Int
	tokenBalance  *big.Int
	allowance     *big.Int
	gasPrice      *big.Int
	layerZeroFee  *big.Int

	approveStatus types.TransactionStatus
	swapStatus    types.TransactionStatus

	balanceErr error

	approveCalls int
	sentTxs      []*ethtypes.Transaction
	statusByHash map[common.Hash]types.TransactionStatus
}

var approveTxHash = common.HexToHash("0x01")

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		name:            "Testnet",
		chainID:         big.NewInt(31337),
		stargateChainID: 101,
		router:          common.HexToAddress("0x8731d54E9D02c286767d56ac03e8037C07e01e98"),
		approveGasLimit: 70000,
		nativeBalance:   big.NewInt(0),
		tokenBalance:    big.NewInt(0),
		allowance:       big.NewInt(0),
		gasPrice:        big.NewInt(1),
		layerZeroFee:    big.NewInt(5),
		approveStatus:   types.TransactionSuccess,
		swapStatus:      types.TransactionSuccess,
		statusByHash:    make(map[common.Hash]types.TransactionStatus),
	}
}

func (f *fakeNetwork) Name() string                  { return f.name }
func (f *fakeNetwork) ChainID() *big.Int             { return f.chainID }
func (f *fakeNetwork) StargateChainID() uint16       { return f.stargateChainID }
func (f *fakeNetwork) RouterAddress() common.Address { return f.router }
func (f *fakeNetwork) ApproveGasLimit() uint64       { return f.approveGasLimit }

func (f *fakeNetwork) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return f.nativeBalance, nil
}

func (f *fakeNetwork) GetTokenBalance(ctx context.Context, token, address common.Address) (*big.Int, error) {
	return f.tokenBalance, nil
}

func (f *fakeNetwork) GetTokenAllowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	return f.allowance, nil
}

func (f *fakeNetwork) ApproveTokenUsage(ctx context.Context, account *wallet.Account, token, spender common.Address, amount *big.Int) (common.Hash, error) {
	f.approveCalls++
	f.allowance = amount
	f.statusByHash[approveTxHash] = f.approveStatus
	return approveTxHash, nil
}

func (f *fakeNetwork) WaitForTransaction(ctx context.Context, hash common.Hash) types.TransactionStatus {
	if status, ok := f.statusByHash[hash]; ok {
		return status
	}
	return types.TransactionNotFound
}

func (f *fakeNetwork) GetNonce(ctx context.Context, address common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeNetwork) GetCurrentGasPrice(ctx context.Context) (*big.Int, error) {
	return f.gasPrice, nil
}

func (f *fakeNetwork) GetTransactionGasParams(ctx context.Context) (*types.GasParams, error) {
	return &types.GasParams{GasPrice: f.gasPrice}, nil
}

func (f *fakeNetwork) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	f.sentTxs = append(f.sentTxs, tx)
	f.statusByHash[tx.Hash()] = f.swapStatus
	return nil
}

func (f *fakeNetwork) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	// The only read-only call the bridge makes is quoteLayerZeroFee.
	return routerABI.Methods["quoteLayerZeroFee"].Outputs.Pack(f.layerZeroFee, big.NewInt(0))
}

func testAccount(t *testing.T) *wallet.Account {
	t.Helper()
	account, err := wallet.FromPrivateKey(testPrivateKey)
	require.NoError(t, err)
	return account
}

// fundedRequest returns a request the fake networks can satisfy: plenty
// of native token, exactly enough stablecoin, allowance already granted.
func fundedRequest(t *testing.T, src, dst *fakeNetwork) Request {
	t.Helper()

	amount := big.NewInt(50_000_000)
	src.nativeBalance = big.NewInt(1_000_000_000)
	src.tokenBalance = new(big.Int).Set(amount)
	src.allowance = new(big.Int).Set(amount)

	return Request{
		Account:       testAccount(t),
		SrcNetwork:    src,
		DstNetwork:    dst,
		SrcStablecoin: types.Stablecoin{Symbol: "USDC", ContractAddress: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6, PoolID: 1},
		DstStablecoin: types.Stablecoin{Symbol: "USDC", ContractAddress: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", Decimals: 6, PoolID: 1},
		Amount:        amount,
		Slippage:      0.005,
	}
}

func TestMakeBridgeSucceeds(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()
	dst.stargateChainID = 109

	helper, err := NewBridgeHelper(fundedRequest(t, src, dst), nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	// Allowance was already sufficient, so no approval was issued.
	require.Zero(t, src.approveCalls)
	require.Len(t, src.sentTxs, 1)

	tx := src.sentTxs[0]
	require.Equal(t, src.router, *tx.To())
	require.Equal(t, big.NewInt(5), tx.Value(), "swap value must carry the LayerZero fee")
	require.Equal(t, uint64(7), tx.Nonce())
	require.Equal(t, routerABI.Methods["swap"].ID, tx.Data()[:4])
}

func TestMakeBridgeRejectedOnLowTokenBalance(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.tokenBalance = big.NewInt(49_999_999)

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	// No transactions of any kind were issued.
	require.Zero(t, src.approveCalls)
	require.Empty(t, src.sentTxs)
}

func TestMakeBridgeRejectedOnLowNativeBalance(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.nativeBalance = big.NewInt(1)

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, src.sentTxs)
}

func TestMakeBridgeSwapNotFound(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.swapStatus = types.TransactionNotFound

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.ErrorIs(t, err, ErrTransactionNotFound)
	require.False(t, ok)
}

func TestMakeBridgeSwapFailed(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.swapStatus = types.TransactionFailed

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.ErrorIs(t, err, ErrTransactionFailed)
	require.False(t, ok)
}

func TestApproveSkippedWhenAllowanceSufficient(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	require.NoError(t, helper.approveStablecoinUsage(context.Background(), req.Amount))
	require.Zero(t, src.approveCalls)
}

func TestApproveIssuedWhenAllowanceShort(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.allowance = big.NewInt(0)

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	require.NoError(t, helper.approveStablecoinUsage(context.Background(), req.Amount))
	require.Equal(t, 1, src.approveCalls)
}

func TestApproveFailureRaisesTransactionFailed(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()

	req := fundedRequest(t, src, dst)
	src.allowance = big.NewInt(0)
	src.approveStatus = types.TransactionFailed

	helper, err := NewBridgeHelper(req, nil)
	require.NoError(t, err)

	ok, err := helper.MakeBridge(context.Background())
	require.ErrorIs(t, err, ErrTransactionFailed)
	require.False(t, ok)

	// The swap never ran.
	require.Empty(t, src.sentTxs)
}

func TestAmountWithSlippage(t *testing.T) {
	// Binary-exact slippages give exact expectations.
	tests := []struct {
		amount   int64
		slippage float64
		expected int64
	}{
		{1000, 0, 1000},
		{1000, 0.25, 750},
		{1000, 0.5, 500},
		{999, 0.5, 500},  // floor(499.5) = 499
		{1, 0.5, 1},      // floor(0.5) = 0
		{1000, 0.125, 875},
	}

	for _, tt := range tests {
		req := Request{Amount: big.NewInt(tt.amount), Slippage: tt.slippage}
		require.Equal(t, big.NewInt(tt.expected), req.AmountWithSlippage(),
			"amount=%d slippage=%v", tt.amount, tt.slippage)
	}
}

func TestAmountWithSlippageBounds(t *testing.T) {
	amounts := []int64{1, 2, 17, 999, 1_000_000, 123_456_789}
	slippages := []float64{0, 0.001, 0.005, 0.1, 0.33, 0.999}

	for _, a := range amounts {
		for _, s := range slippages {
			req := Request{Amount: big.NewInt(a), Slippage: s}
			got := req.AmountWithSlippage()
			require.True(t, got.Sign() >= 0, "amount=%d slippage=%v got=%s", a, s, got)
			require.True(t, got.Cmp(req.Amount) <= 0, "amount=%d slippage=%v got=%s", a, s, got)
		}
	}
}

func TestRequestValidate(t *testing.T) {
	src := newFakeNetwork()
	dst := newFakeNetwork()
	account := testAccount(t)

	valid := Request{
		Account:    account,
		SrcNetwork: src,
		DstNetwork: dst,
		Amount:     big.NewInt(1),
		Slippage:   0.005,
	}
	require.NoError(t, valid.Validate())

	zeroAmount := valid
	zeroAmount.Amount = big.NewInt(0)
	require.Error(t, zeroAmount.Validate())

	negativeAmount := valid
	negativeAmount.Amount = big.NewInt(-5)
	require.Error(t, negativeAmount.Validate())

	fullSlippage := valid
	fullSlippage.Slippage = 1
	require.Error(t, fullSlippage.Validate())

	negativeSlippage := valid
	negativeSlippage.Slippage = -0.1
	require.Error(t, negativeSlippage.Validate())

	noAccount := valid
	noAccount.Account = nil
	require.Error(t, noAccount.Validate())
}
