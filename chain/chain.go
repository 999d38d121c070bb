package chain

import (
	"context"
	"math/big"
)

// TokenClient is what the relay needs from the token contract. Every call is
// a network round-trip and may fail.
type TokenClient interface {
	Decimals(ctx context.Context) (uint8, error)
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	// Transfer signs and broadcasts a token transfer, then blocks until the
	// transaction is mined. Returns the transaction hash.
	Transfer(ctx context.Context, to string, amountBaseUnits *big.Int) (string, error)
}
