package txtypes

import "github.com/lightningnetwork/lnd/lnwire"

// State is one variant of a transaction's kind-specific state. Each variant
// carries only the fields the backend reports for it.
type State interface {
	StateType() StateType
}

// PlainState is a state variant that carries no fields.
type PlainState StateType

func (s PlainState) StateType() StateType { return StateType(s) }

// UnknownState holds a state tag this package does not recognise for the
// record's kind.
type UnknownState struct {
	Type StateType
}

func (s UnknownState) StateType() StateType { return s.Type }

// Lightning send.

type LnPayWaitingForRefund struct {
	ErrorReason string `json:"error_reason,omitempty"`
}

func (LnPayWaitingForRefund) StateType() StateType { return StateWaitingForRefund }

type LnPayRefunded struct {
	GatewayError string `json:"gateway_error,omitempty"`
}

func (LnPayRefunded) StateType() StateType { return StateRefunded }

type LnPaySuccess struct {
	Preimage string `json:"preimage"`
}

func (LnPaySuccess) StateType() StateType { return StateSuccess }

// Lightning receive, shared by one-off and recurring receives.

type LnReceiveWaitingForPayment struct {
	Invoice string `json:"invoice"`
	Timeout int64  `json:"timeout,omitempty"`
}

func (LnReceiveWaitingForPayment) StateType() StateType { return StateWaitingForPayment }

type LnReceiveCanceled struct {
	Reason string `json:"reason,omitempty"`
}

func (LnReceiveCanceled) StateType() StateType { return StateCanceled }

// On-chain withdraw.

type OnchainWithdrawSucceeded struct {
	Txid string `json:"txid"`
}

func (OnchainWithdrawSucceeded) StateType() StateType { return StateSucceeded }

type OnchainWithdrawFailed struct {
	Error string `json:"error,omitempty"`
}

func (OnchainWithdrawFailed) StateType() StateType { return StateFailed }

// On-chain deposit.

// BtcOutput is the deposit output the federation watches.
type BtcOutput struct {
	Txid   string `json:"txid"`
	OutIdx uint32 `json:"out_idx"`
}

type OnchainDepositWaitingForConfirmation struct {
	BtcOutput
}

func (OnchainDepositWaitingForConfirmation) StateType() StateType { return StateWaitingForConfirmation }

type OnchainDepositConfirmed struct {
	BtcOutput
}

func (OnchainDepositConfirmed) StateType() StateType { return StateConfirmed }

type OnchainDepositClaimed struct {
	BtcOutput
}

func (OnchainDepositClaimed) StateType() StateType { return StateClaimed }

type OnchainDepositFailed struct {
	Error string `json:"error,omitempty"`
}

func (OnchainDepositFailed) StateType() StateType { return StateFailed }

// Out-of-band e-cash receive.

type OOBReceiveFailed struct {
	Error string `json:"error,omitempty"`
}

func (OOBReceiveFailed) StateType() StateType { return StateFailed }

// Stability pool v1. Cent amounts are USD cents.

type SPDepositComplete struct {
	InitialAmountCents int64               `json:"initial_amount_cents"`
	FeesPaidSoFar      lnwire.MilliSatoshi `json:"fees_paid_so_far"`
}

func (SPDepositComplete) StateType() StateType { return StateCompleteDeposit }

type SPWithdrawPending struct {
	EstimatedWithdrawalCents int64 `json:"estimated_withdrawal_cents"`
}

func (SPWithdrawPending) StateType() StateType { return StatePendingWithdrawal }

type SPWithdrawComplete struct {
	EstimatedWithdrawalCents int64 `json:"estimated_withdrawal_cents"`
}

func (SPWithdrawComplete) StateType() StateType { return StateCompleteWithdrawal }

// Stability pool v2. FiatAmount is in USD cents.

type SPV2DepositPending struct {
	Amount     lnwire.MilliSatoshi `json:"amount"`
	FiatAmount int64               `json:"fiat_amount"`
}

func (SPV2DepositPending) StateType() StateType { return StatePendingDeposit }

type SPV2DepositCompleted struct {
	Amount        lnwire.MilliSatoshi `json:"amount"`
	FiatAmount    int64               `json:"fiat_amount"`
	FeesPaidSoFar lnwire.MilliSatoshi `json:"fees_paid_so_far"`
}

func (SPV2DepositCompleted) StateType() StateType { return StateCompletedDeposit }

type SPV2DepositFailed struct {
	Error string `json:"error,omitempty"`
}

func (SPV2DepositFailed) StateType() StateType { return StateFailedDeposit }

type SPV2WithdrawalPending struct {
	Amount     lnwire.MilliSatoshi `json:"amount"`
	FiatAmount int64               `json:"fiat_amount"`
}

func (SPV2WithdrawalPending) StateType() StateType { return StatePendingWithdrawal }

type SPV2WithdrawalCompleted struct {
	Amount     lnwire.MilliSatoshi `json:"amount"`
	FiatAmount int64               `json:"fiat_amount"`
}

func (SPV2WithdrawalCompleted) StateType() StateType { return StateCompletedWithdrawal }

type SPV2WithdrawalFailed struct {
	Error string `json:"error,omitempty"`
}

func (SPV2WithdrawalFailed) StateType() StateType { return StateFailedWithdrawal }

type SPV2TransferInCompleted struct {
	FromAccountID string              `json:"from_account_id"`
	Amount        lnwire.MilliSatoshi `json:"amount"`
	FiatAmount    int64               `json:"fiat_amount"`
	TransferKind  string              `json:"kind,omitempty"`
}

func (SPV2TransferInCompleted) StateType() StateType { return StateCompletedTransfer }

type SPV2TransferOutCompleted struct {
	ToAccountID  string              `json:"to_account_id"`
	Amount       lnwire.MilliSatoshi `json:"amount"`
	FiatAmount   int64               `json:"fiat_amount"`
	TransferKind string              `json:"kind,omitempty"`
}

func (SPV2TransferOutCompleted) StateType() StateType { return StateCompletedTransfer }

// Multispend group account movements. FiatAmount is in USD cents.

type MultispendDepositCompleted struct {
	DepositorID string `json:"depositor"`
	FiatAmount  int64  `json:"fiat_amount"`
	Description string `json:"description,omitempty"`
}

func (MultispendDepositCompleted) StateType() StateType { return StateCompleted }

type MultispendWithdrawalCompleted struct {
	WithdrawerID string `json:"withdrawer"`
	FiatAmount   int64  `json:"fiat_amount"`
	Description  string `json:"description,omitempty"`
}

func (MultispendWithdrawalCompleted) StateType() StateType { return StateCompleted }
