package request

import "github.com/shopspring/decimal"

// --- 请求结构 ---

// TransferReq is the body of POST /transfer. AmountZEC is a pointer so that
// an explicit 0 is distinguishable from a missing field.
type TransferReq struct {
	To        string           `json:"to"`
	AmountZEC *decimal.Decimal `json:"amountZEC"`
}
