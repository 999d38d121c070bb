package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/linlinbupt123-crypto/relay_service/chain"
	wrapErrors "github.com/linlinbupt123-crypto/relay_service/errors"
	"github.com/linlinbupt123-crypto/relay_service/request"
	"github.com/linlinbupt123-crypto/relay_service/utils"
)

type RelayService struct {
	Token      chain.TokenClient
	OwnAddress string
	Rate       decimal.Decimal
}

func NewRelayService(token chain.TokenClient, ownAddress string, rate decimal.Decimal) *RelayService {
	return &RelayService{
		Token:      token,
		OwnAddress: ownAddress,
		Rate:       rate,
	}
}

// Transfer 发起代币转账: validates the request, converts ZEC to STI at the
// configured rate, scales to base units at the contract's declared decimals,
// then submits and waits for mining. Returns the transaction hash.
func (s *RelayService) Transfer(ctx context.Context, req *request.TransferReq) (string, error) {
	// Validation happens before any network call.
	if req.To == "" || req.AmountZEC == nil {
		return "", wrapErrors.New(wrapErrors.CodeValidation, "transfer", "Missing 'to' or 'amountZEC'")
	}

	// Decimals are read from the contract per request, never cached.
	decimals, err := s.Token.Decimals(ctx)
	if err != nil {
		return "", err
	}

	sti := utils.ConvertToSTI(*req.AmountZEC, s.Rate)
	amountBaseUnits, err := utils.ToBaseUnits(sti, decimals)
	if err != nil {
		return "", wrapErrors.WrapWithCode(wrapErrors.CodeConversion, "convert amount", err)
	}

	slog.Info("signing transfer",
		"amount_zec", req.AmountZEC.String(),
		"amount_sti", utils.FixedSTIString(sti),
		"base_units", amountBaseUnits.String(),
		"to", req.To,
	)

	txHash, err := s.Token.Transfer(ctx, req.To, amountBaseUnits)
	if err != nil {
		return "", err
	}

	slog.Info("transfer complete", "tx_hash", txHash)
	return txHash, nil
}

// Balance reads the signer's own token balance and renders it as
// "<amount> STI".
func (s *RelayService) Balance(ctx context.Context) (string, error) {
	decimals, err := s.Token.Decimals(ctx)
	if err != nil {
		return "", err
	}
	balance, err := s.Token.BalanceOf(ctx, s.OwnAddress)
	if err != nil {
		return "", err
	}
	return utils.FormatUnits(balance, decimals) + " STI", nil
}
