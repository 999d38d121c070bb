package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/linlinbupt123-crypto/relay_service/config"
	wrapErrors "github.com/linlinbupt123-crypto/relay_service/errors"
)

// Minimal ERC-20 surface: decimals / balanceOf / transfer.
const erc20ABI = `[
	{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// ERC20Client signs and submits transfers for one token contract with one
// key. It satisfies TokenClient.
type ERC20Client struct {
	client         *ethclient.Client
	contractABI    abi.ABI
	token          common.Address
	signingKey     *ecdsa.PrivateKey
	from           common.Address
	chainID        *big.Int
	confirmTimeout time.Duration

	// 串行化 nonce 分配: held from nonce fetch through broadcast, so two
	// concurrent transfers cannot race for the same nonce.
	mu sync.Mutex
}

// NewERC20Client dials the RPC endpoint and resolves the chain ID. Both fail
// fast at startup rather than on the first request.
func NewERC20Client(ctx context.Context, cfg *config.Config) (*ERC20Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.DailChain, "eth dial", err)
	}
	chainID, err := client.NetworkID(ctx)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.GetchainIDErr, "get chainID", err)
	}
	contractABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, err
	}
	return &ERC20Client{
		client:         client,
		contractABI:    contractABI,
		token:          common.HexToAddress(cfg.TokenAddress),
		signingKey:     cfg.SigningKey,
		from:           crypto.PubkeyToAddress(cfg.SigningKey.PublicKey),
		chainID:        chainID,
		confirmTimeout: cfg.ConfirmTimeout,
	}, nil
}

// From is the signer's own address.
func (c *ERC20Client) From() common.Address {
	return c.from
}

// Decimals reads the contract's declared precision. Fetched per call, never
// cached.
func (c *ERC20Client) Decimals(ctx context.Context) (uint8, error) {
	out, err := c.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, wrapErrors.New(wrapErrors.CodeChainRead, "decimals", "unexpected return type")
	}
	return decimals, nil
}

// BalanceOf reads the token balance of an address in base units.
func (c *ERC20Client) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, wrapErrors.New(wrapErrors.CodeChainRead, "balanceOf", fmt.Sprintf("invalid address %q", address))
	}
	out, err := c.call(ctx, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, wrapErrors.New(wrapErrors.CodeChainRead, "balanceOf", "unexpected return type")
	}
	return balance, nil
}

func (c *ERC20Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.contractABI.Pack(method, args...)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeChainRead, method, err)
	}
	res, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeChainRead, method, err)
	}
	out, err := c.contractABI.Unpack(method, res)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeChainRead, method, err)
	}
	return out, nil
}

// Transfer signs and broadcasts transfer(to, amount), then waits until the
// transaction is mined. A reverted receipt is an error even though the
// transaction landed on chain.
func (c *ERC20Client) Transfer(ctx context.Context, to string, amountBaseUnits *big.Int) (string, error) {
	if !common.IsHexAddress(to) {
		return "", wrapErrors.New(wrapErrors.SendTxErr, "transfer", fmt.Sprintf("invalid recipient address %q", to))
	}
	data, err := c.contractABI.Pack("transfer", common.HexToAddress(to), amountBaseUnits)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.SendTxErr, "pack transfer", err)
	}

	signedTx, err := c.submit(ctx, data)
	if err != nil {
		return "", err
	}

	waitCtx := ctx
	if c.confirmTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, c.confirmTimeout)
		defer cancel()
	}
	receipt, err := bind.WaitMined(waitCtx, c.client, signedTx)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.CodeConfirm, "wait mined", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", wrapErrors.New(wrapErrors.CodeConfirm, "wait mined",
			fmt.Sprintf("transaction %s reverted", signedTx.Hash().Hex()))
	}
	return signedTx.Hash().Hex(), nil
}

// submit builds, signs and broadcasts the transaction under the nonce lock.
// Waiting for the receipt happens outside the lock so a slow confirmation
// does not stall the next submission.
func (c *ERC20Client) submit(ctx context.Context, data []byte) (*types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.PendingNonceAt, "PendingNonceAt", err)
	}

	tip, err := c.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.SendTxErr, "SuggestGasTipCap", err)
	}

	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.SendTxErr, "HeaderByNumber", err)
	}

	feeCap := new(big.Int).Add(
		new(big.Int).Mul(header.BaseFee, big.NewInt(2)), // 留 buffer
		tip,
	)

	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.from,
		To:   &c.token,
		Data: data,
	})
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.CodeGasEstimate, "EstimateGas", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &c.token,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signer := types.NewLondonSigner(c.chainID)
	signedTx, err := types.SignTx(tx, signer, c.signingKey)
	if err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.SignerErr, "SignTx", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, wrapErrors.WrapWithCode(wrapErrors.SendTxErr, "SendTransaction", err)
	}
	return signedTx, nil
}
