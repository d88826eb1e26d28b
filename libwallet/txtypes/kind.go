package txtypes

// Kind identifies the payment channel a transaction went through.
type Kind string

const (
	KindLnPay               Kind = "lnPay"
	KindLnReceive           Kind = "lnReceive"
	KindLnRecurringdReceive Kind = "lnRecurringdReceive"
	KindOnchainWithdraw     Kind = "onchainWithdraw"
	KindOnchainDeposit      Kind = "onchainDeposit"
	KindOOBSend             Kind = "oobSend"
	KindOOBReceive          Kind = "oobReceive"

	// stability pool v1
	KindSPDeposit  Kind = "spDeposit"
	KindSPWithdraw Kind = "spWithdraw"

	// stability pool v2
	KindSPV2Deposit     Kind = "sPV2Deposit"
	KindSPV2Withdrawal  Kind = "sPV2Withdrawal"
	KindSPV2TransferIn  Kind = "sPV2TransferIn"
	KindSPV2TransferOut Kind = "sPV2TransferOut"

	KindMultispendDeposit    Kind = "multispendDeposit"
	KindMultispendWithdrawal Kind = "multispendWithdrawal"
)

// StateType is the wire tag of a transaction state variant.
type StateType string

const (
	StateCreated                StateType = "created"
	StateFunded                 StateType = "funded"
	StateAwaitingChange         StateType = "awaitingChange"
	StateWaitingForRefund       StateType = "waitingForRefund"
	StateCanceled               StateType = "canceled"
	StateFailed                 StateType = "failed"
	StateRefunded               StateType = "refunded"
	StateSuccess                StateType = "success"
	StateWaitingForPayment      StateType = "waitingForPayment"
	StateAwaitingFunds          StateType = "awaitingFunds"
	StateClaimed                StateType = "claimed"
	StateSucceeded              StateType = "succeeded"
	StateWaitingForTransaction  StateType = "waitingForTransaction"
	StateWaitingForConfirmation StateType = "waitingForConfirmation"
	StateConfirmed              StateType = "confirmed"
	StateUserCanceledProcessing StateType = "userCanceledProcessing"
	StateUserCanceledSuccess    StateType = "userCanceledSuccess"
	StateUserCanceledFailure    StateType = "userCanceledFailure"
	StateIssuing                StateType = "issuing"
	StateDone                   StateType = "done"
	StatePendingDeposit         StateType = "pendingDeposit"
	StateCompleteDeposit        StateType = "completeDeposit"
	StatePendingWithdrawal      StateType = "pendingWithdrawal"
	StateCompleteWithdrawal     StateType = "completeWithdrawal"
	StateCompletedDeposit       StateType = "completedDeposit"
	StateFailedDeposit          StateType = "failedDeposit"
	StateCompletedWithdrawal    StateType = "completedWithdrawal"
	StateFailedWithdrawal       StateType = "failedWithdrawal"
	StateCompletedTransfer      StateType = "completedTransfer"
	StateCompleted              StateType = "completed"
	StateDataNotInCache         StateType = "dataNotInCache"
)

// Kinds lists every known transaction kind.
var Kinds = []Kind{
	KindLnPay,
	KindLnReceive,
	KindLnRecurringdReceive,
	KindOnchainWithdraw,
	KindOnchainDeposit,
	KindOOBSend,
	KindOOBReceive,
	KindSPDeposit,
	KindSPWithdraw,
	KindSPV2Deposit,
	KindSPV2Withdrawal,
	KindSPV2TransferIn,
	KindSPV2TransferOut,
	KindMultispendDeposit,
	KindMultispendWithdrawal,
}

var lnReceiveStates = []StateType{
	StateCreated,
	StateWaitingForPayment,
	StateFunded,
	StateAwaitingFunds,
	StateClaimed,
	StateCanceled,
}

var kindStates = map[Kind][]StateType{
	KindLnPay: {
		StateCreated,
		StateFunded,
		StateAwaitingChange,
		StateWaitingForRefund,
		StateCanceled,
		StateFailed,
		StateRefunded,
		StateSuccess,
	},
	KindLnReceive:           lnReceiveStates,
	KindLnRecurringdReceive: lnReceiveStates,
	KindOnchainWithdraw:     {StateCreated, StateSucceeded, StateFailed},
	KindOnchainDeposit: {
		StateWaitingForTransaction,
		StateWaitingForConfirmation,
		StateConfirmed,
		StateClaimed,
		StateFailed,
	},
	KindOOBSend: {
		StateCreated,
		StateSuccess,
		StateCanceled,
		StateRefunded,
		StateUserCanceledProcessing,
		StateUserCanceledSuccess,
		StateUserCanceledFailure,
	},
	KindOOBReceive:  {StateCreated, StateIssuing, StateDone, StateFailed},
	KindSPDeposit:   {StatePendingDeposit, StateCompleteDeposit, StateDataNotInCache},
	KindSPWithdraw:  {StatePendingWithdrawal, StateCompleteWithdrawal, StateDataNotInCache},
	KindSPV2Deposit: {StatePendingDeposit, StateCompletedDeposit, StateFailedDeposit, StateDataNotInCache},
	KindSPV2Withdrawal: {
		StatePendingWithdrawal,
		StateCompletedWithdrawal,
		StateFailedWithdrawal,
		StateDataNotInCache,
	},
	KindSPV2TransferIn:       {StateCompletedTransfer, StateDataNotInCache},
	KindSPV2TransferOut:      {StateCompletedTransfer, StateDataNotInCache},
	KindMultispendDeposit:    {StateCompleted, StateDataNotInCache},
	KindMultispendWithdrawal: {StateCompleted, StateDataNotInCache},
}

// KindStates returns the state tags valid for kind. Unknown kinds have none.
func KindStates(kind Kind) []StateType {
	return kindStates[kind]
}

// IsValidState reports whether tag is a known state of kind.
func IsValidState(kind Kind, tag StateType) bool {
	for _, t := range kindStates[kind] {
		if t == tag {
			return true
		}
	}
	return false
}

// IsStabilityPool reports whether the kind moves funds in or out of a
// stability pool account.
func (k Kind) IsStabilityPool() bool {
	switch k {
	case KindSPDeposit, KindSPWithdraw, KindSPV2Deposit, KindSPV2Withdrawal,
		KindSPV2TransferIn, KindSPV2TransferOut:
		return true
	}
	return false
}

// IsTransfer reports whether the kind is an internal stability pool transfer.
func (k Kind) IsTransfer() bool {
	return k == KindSPV2TransferIn || k == KindSPV2TransferOut
}
