package errors

type Code string

const (
	CodeValidation Code = "INVALID_REQUEST_ERROR"
	CodeConversion Code = "AMOUNT_CONVERSION_ERROR"
	CodeChainRead  Code = "CHAIN_READ_ERROR"
	CodeConfirm    Code = "TX_CONFIRM_ERROR"

	CodeGasEstimate Code = "GAS_ESTIMATE_ERROR"
	PendingNonceAt  Code = "PENDING_NONCE_AT_ERROR"
	DailChain       Code = "DIAL_CHAIN_ERROR"
	SignerErr       Code = "SIGNER_ERROR"
	SendTxErr       Code = "SEND_TX_ERROR"
	GetchainIDErr   Code = "GET_CHAIN_ID_ERROR"
)
