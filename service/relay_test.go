package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wrapErrors "github.com/linlinbupt123-crypto/relay_service/errors"
	"github.com/linlinbupt123-crypto/relay_service/request"
)

const ownAddress = "0x96216849c49358B10257cb55b28eA603c874b05E"

// fakeToken records every call so tests can assert that failures short-circuit
// before the next network round-trip.
type fakeToken struct {
	decimals    uint8
	decimalsErr error
	balance     *big.Int
	balanceErr  error
	txHash      string
	transferErr error

	decimalsCalls int
	balanceCalls  int
	transferCalls int
	lastTo        string
	lastAmount    *big.Int
}

func (f *fakeToken) Decimals(ctx context.Context) (uint8, error) {
	f.decimalsCalls++
	return f.decimals, f.decimalsErr
}

func (f *fakeToken) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	f.balanceCalls++
	return f.balance, f.balanceErr
}

func (f *fakeToken) Transfer(ctx context.Context, to string, amountBaseUnits *big.Int) (string, error) {
	f.transferCalls++
	f.lastTo = to
	f.lastAmount = amountBaseUnits
	return f.txHash, f.transferErr
}

func newTestService(token *fakeToken) *RelayService {
	return NewRelayService(token, ownAddress, decimal.RequireFromString("0.00000000000001"))
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTransfer_MissingFields(t *testing.T) {
	token := &fakeToken{decimals: 18}
	svc := newTestService(token)

	_, err := svc.Transfer(context.Background(), &request.TransferReq{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing 'to' or 'amountZEC'")
	assert.Equal(t, wrapErrors.CodeValidation, wrapErrors.CodeOf(err))
	assert.Zero(t, token.decimalsCalls, "validation failure must not reach the chain")
	assert.Zero(t, token.transferCalls)
}

func TestTransfer_Success(t *testing.T) {
	token := &fakeToken{decimals: 18, txHash: "0xdeadbeef"}
	svc := newTestService(token)

	txHash, err := svc.Transfer(context.Background(), &request.TransferReq{
		To:        "0x1111111111111111111111111111111111111111",
		AmountZEC: amount("1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", txHash)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", token.lastTo)
	assert.Equal(t, big.NewInt(10000), token.lastAmount)
}

func TestTransfer_ZeroAmountStillSubmits(t *testing.T) {
	token := &fakeToken{decimals: 18, txHash: "0xfeed"}
	svc := newTestService(token)

	_, err := svc.Transfer(context.Background(), &request.TransferReq{
		To:        "0x1111111111111111111111111111111111111111",
		AmountZEC: amount("0"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, token.transferCalls)
	assert.Equal(t, int64(0), token.lastAmount.Int64())
}

func TestTransfer_DecimalsLookupFails(t *testing.T) {
	token := &fakeToken{decimalsErr: errors.New("rpc down")}
	svc := newTestService(token)

	_, err := svc.Transfer(context.Background(), &request.TransferReq{
		To:        "0x1111111111111111111111111111111111111111",
		AmountZEC: amount("1"),
	})

	require.Error(t, err)
	assert.Zero(t, token.transferCalls, "submission must not be attempted after a failed decimals read")
}

func TestTransfer_PrecisionLossIsConversionError(t *testing.T) {
	// decimals=6 cannot hold a 1e-14 STI amount
	token := &fakeToken{decimals: 6}
	svc := newTestService(token)

	_, err := svc.Transfer(context.Background(), &request.TransferReq{
		To:        "0x1111111111111111111111111111111111111111",
		AmountZEC: amount("1"),
	})

	require.Error(t, err)
	assert.Equal(t, wrapErrors.CodeConversion, wrapErrors.CodeOf(err))
	assert.Zero(t, token.transferCalls)
}

func TestBalance_ZeroFormatsWithFractionalDigit(t *testing.T) {
	token := &fakeToken{decimals: 18, balance: big.NewInt(0)}
	svc := newTestService(token)

	balance, err := svc.Balance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.0 STI", balance)
}

func TestBalance_FormatsAtTokenPrecision(t *testing.T) {
	token := &fakeToken{decimals: 6, balance: big.NewInt(1500000)}
	svc := newTestService(token)

	balance, err := svc.Balance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.5 STI", balance)
}

func TestBalance_DecimalsLookupFails(t *testing.T) {
	token := &fakeToken{decimalsErr: errors.New("rpc down")}
	svc := newTestService(token)

	_, err := svc.Balance(context.Background())

	require.Error(t, err)
	assert.Zero(t, token.balanceCalls, "balance read must not be attempted after a failed decimals read")
}
