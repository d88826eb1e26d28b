package values

// Label keys resolved through a Translator. The English table below is used
// when no translation is configured.
const (
	// Statuses
	StrPending         = "pending"
	StrSent            = "sent"
	StrReceived        = "received"
	StrFailed          = "failed"
	StrCanceled        = "canceled"
	StrCanceling       = "canceling"
	StrRefunded        = "refunded"
	StrRefundPending   = "refund-pending"
	StrExpired         = "expired"
	StrSeen            = "seen"
	StrConfirmed       = "confirmed"
	StrDeposit         = "deposit"
	StrWithdrawal      = "withdrawal"
	StrComplete        = "complete"
	StrGroupInvitation = "group-invitation"
	StrUnknown         = "unknown"

	// Transaction types
	StrLightning           = "lightning"
	StrOnchain             = "onchain"
	StrEcash               = "ecash"
	StrStabilityDeposit    = "stability-deposit"
	StrStabilityWithdrawal = "stability-withdrawal"
	StrStabilityTransfer   = "stability-transfer"
	StrMultispend          = "multispend"

	// Detail rows
	StrType               = "type"
	StrStatus             = "status"
	StrDate               = "date"
	StrAmount             = "amount"
	StrInvoice            = "invoice"
	StrPreimage           = "preimage"
	StrAddress            = "address"
	StrTxid               = "txid"
	StrError              = "error"
	StrNotes              = "notes"
	StrFees               = "fees"
	StrDepositDestination = "deposit-destination"
	StrStableBalance      = "stable-balance"
	StrCurrentValue       = "current-value"
	StrWithdrawalValue    = "withdrawal-value"
	StrTransferFrom       = "transfer-from"
	StrTransferTo         = "transfer-to"
	StrDepositor          = "depositor"
	StrWithdrawer         = "withdrawer"
	StrDescription        = "description"

	// Fees
	StrServiceFee   = "service-fee"
	StrLightningFee = "lightning-fee"
	StrNetworkFee   = "network-fee"
	StrStabilityFee = "stability-fee"
	StrTotalFees    = "total-fees"

	// Actions
	StrRetry = "retry"

	// Errors
	StrUnknownError    = "unknown-error"
	StrInvalidInput    = "invalid-input"
	StrNotFound        = "not-found"
	StrFetchFailed     = "fetch-failed"
	StrNotConnected    = "not-connected"
	StrRequestCanceled = "request-canceled"
	StrDatabaseInUse   = "database-in-use"
	StrUnknownCurrency = "unknown-currency"
	StrRateUnavailable = "rate-unavailable"
)

// Translator resolves a label key to user facing text.
type Translator func(key string) string

var english = map[string]string{
	StrPending:         "Pending",
	StrSent:            "Sent",
	StrReceived:        "Received",
	StrFailed:          "Failed",
	StrCanceled:        "Canceled",
	StrCanceling:       "Canceling",
	StrRefunded:        "Refunded",
	StrRefundPending:   "Refund pending",
	StrExpired:         "Expired",
	StrSeen:            "Seen",
	StrConfirmed:       "Confirmed",
	StrDeposit:         "Deposit",
	StrWithdrawal:      "Withdrawal",
	StrComplete:        "Complete",
	StrGroupInvitation: "Group invitation",
	StrUnknown:         "Unknown",

	StrLightning:           "Lightning",
	StrOnchain:             "On-chain",
	StrEcash:               "E-cash",
	StrStabilityDeposit:    "Stable balance deposit",
	StrStabilityWithdrawal: "Stable balance withdrawal",
	StrStabilityTransfer:   "Stable balance transfer",
	StrMultispend:          "Multispend",

	StrType:               "Type",
	StrStatus:             "Status",
	StrDate:               "Date",
	StrAmount:             "Amount",
	StrInvoice:            "Invoice",
	StrPreimage:           "Preimage",
	StrAddress:            "Address",
	StrTxid:               "Transaction ID",
	StrError:              "Error",
	StrNotes:              "Notes",
	StrFees:               "Fees",
	StrDepositDestination: "Deposit to",
	StrStableBalance:      "Stable balance",
	StrCurrentValue:       "Current value",
	StrWithdrawalValue:    "Withdrawal value",
	StrTransferFrom:       "From",
	StrTransferTo:         "To",
	StrDepositor:          "Depositor",
	StrWithdrawer:         "Withdrawer",
	StrDescription:        "Description",

	StrServiceFee:   "Service fee",
	StrLightningFee: "Lightning fee",
	StrNetworkFee:   "Network fee",
	StrStabilityFee: "Stable balance fees",
	StrTotalFees:    "Total fees",

	StrRetry: "Retry",

	StrUnknownError:    "Something went wrong",
	StrInvalidInput:    "Invalid input",
	StrNotFound:        "Not found",
	StrFetchFailed:     "Could not load transactions",
	StrNotConnected:    "Not connected",
	StrRequestCanceled: "Request canceled",
	StrDatabaseInUse:   "History is open in another process",
	StrUnknownCurrency: "Unknown currency",
	StrRateUnavailable: "Exchange rate unavailable",
}

// String returns the English text for key, or the key itself when it has no
// entry.
func String(key string) string {
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

// Keys renders every label as its key.
func Keys(key string) string {
	return key
}
