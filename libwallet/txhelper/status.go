package txhelper

import (
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/values"
)

// status is the display status of one (kind, state) pair. export is only set
// where exports word the status differently.
type status struct {
	key    string
	export string
	badge  Badge
}

var (
	pending     = status{key: values.StrPending, badge: BadgePending}
	failed      = status{key: values.StrFailed, badge: BadgeFailed}
	canceled    = status{key: values.StrCanceled, badge: BadgeFailed}
	refunded    = status{key: values.StrRefunded, badge: BadgeFailed}
	sent        = status{key: values.StrSent, badge: BadgeOutgoing}
	received    = status{key: values.StrReceived, badge: BadgeIncoming}
	notInCache  = status{key: values.StrUnknown, badge: BadgeFailed}
	unknownStat = status{key: values.StrUnknown, badge: BadgePending}
)

var lnReceiveStatuses = map[txtypes.StateType]status{
	txtypes.StateCreated:           pending,
	txtypes.StateWaitingForPayment: pending,
	txtypes.StateFunded:            pending,
	txtypes.StateAwaitingFunds:     pending,
	txtypes.StateClaimed:           received,
	txtypes.StateCanceled:          {key: values.StrExpired, badge: BadgeExpired},
}

// Recurring receives read as received on creation while the badge stays
// pending.
var lnRecurringReceiveStatuses = withOverride(lnReceiveStatuses, txtypes.StateCreated,
	status{key: values.StrReceived, badge: BadgePending})

var statuses = map[txtypes.Kind]map[txtypes.StateType]status{
	txtypes.KindLnPay: {
		txtypes.StateCreated:          pending,
		txtypes.StateFunded:           pending,
		txtypes.StateAwaitingChange:   pending,
		txtypes.StateWaitingForRefund: {key: values.StrRefundPending, badge: BadgePending},
		txtypes.StateCanceled:         canceled,
		txtypes.StateFailed:           failed,
		txtypes.StateRefunded:         refunded,
		txtypes.StateSuccess:          sent,
	},
	txtypes.KindLnReceive:           lnReceiveStatuses,
	txtypes.KindLnRecurringdReceive: lnRecurringReceiveStatuses,
	txtypes.KindOnchainWithdraw: {
		txtypes.StateCreated:   pending,
		txtypes.StateSucceeded: sent,
		txtypes.StateFailed:    failed,
	},
	txtypes.KindOnchainDeposit: {
		txtypes.StateWaitingForTransaction:  pending,
		txtypes.StateWaitingForConfirmation: {key: values.StrSeen, badge: BadgePending},
		txtypes.StateConfirmed:              {key: values.StrConfirmed, badge: BadgePending},
		txtypes.StateClaimed:                received,
		txtypes.StateFailed:                 failed,
	},
	txtypes.KindOOBSend: {
		txtypes.StateCreated:                pending,
		txtypes.StateSuccess:                sent,
		txtypes.StateCanceled:               canceled,
		txtypes.StateRefunded:               refunded,
		txtypes.StateUserCanceledProcessing: {key: values.StrCanceling, badge: BadgePending},
		txtypes.StateUserCanceledSuccess:    canceled,
		txtypes.StateUserCanceledFailure:    sent,
	},
	txtypes.KindOOBReceive: {
		txtypes.StateCreated: pending,
		txtypes.StateIssuing: pending,
		txtypes.StateDone:    received,
		txtypes.StateFailed:  failed,
	},
	txtypes.KindSPDeposit: {
		txtypes.StatePendingDeposit:  pending,
		txtypes.StateCompleteDeposit: {key: values.StrDeposit, export: values.StrComplete, badge: BadgeOutgoing},
		txtypes.StateDataNotInCache:  notInCache,
	},
	txtypes.KindSPWithdraw: {
		txtypes.StatePendingWithdrawal:  pending,
		txtypes.StateCompleteWithdrawal: {key: values.StrWithdrawal, export: values.StrComplete, badge: BadgeIncoming},
		txtypes.StateDataNotInCache:     notInCache,
	},
	txtypes.KindSPV2Deposit: {
		txtypes.StatePendingDeposit:   pending,
		txtypes.StateCompletedDeposit: {key: values.StrDeposit, export: values.StrComplete, badge: BadgeOutgoing},
		txtypes.StateFailedDeposit:    failed,
		txtypes.StateDataNotInCache:   notInCache,
	},
	txtypes.KindSPV2Withdrawal: {
		txtypes.StatePendingWithdrawal:   pending,
		txtypes.StateCompletedWithdrawal: {key: values.StrWithdrawal, export: values.StrComplete, badge: BadgeIncoming},
		txtypes.StateFailedWithdrawal:    failed,
		txtypes.StateDataNotInCache:      notInCache,
	},
	txtypes.KindSPV2TransferIn: {
		txtypes.StateCompletedTransfer: received,
		txtypes.StateDataNotInCache:    notInCache,
	},
	txtypes.KindSPV2TransferOut: {
		txtypes.StateCompletedTransfer: sent,
		txtypes.StateDataNotInCache:    notInCache,
	},
	txtypes.KindMultispendDeposit: {
		txtypes.StateCompleted:      {key: values.StrDeposit, export: values.StrComplete, badge: BadgeIncoming},
		txtypes.StateDataNotInCache: notInCache,
	},
	txtypes.KindMultispendWithdrawal: {
		txtypes.StateCompleted:      {key: values.StrWithdrawal, export: values.StrComplete, badge: BadgeOutgoing},
		txtypes.StateDataNotInCache: notInCache,
	},
}

// Retrying a v1 stability pool record that fell out of the cache is not
// supported.
var noRetryKinds = map[txtypes.Kind]bool{
	txtypes.KindSPDeposit:  true,
	txtypes.KindSPWithdraw: true,
}

func withOverride(base map[txtypes.StateType]status, tag txtypes.StateType, s status) map[txtypes.StateType]status {
	m := make(map[txtypes.StateType]status, len(base))
	for k, v := range base {
		m[k] = v
	}
	m[tag] = s
	return m
}

func lookupStatus(tx *txtypes.Transaction) status {
	if s, ok := statuses[tx.Kind][tx.StateType()]; ok {
		return s
	}
	return unknownStat
}

// StatusBadge returns the badge of the transaction's current state. States
// without a mapping are pending.
func StatusBadge(tx *txtypes.Transaction) Badge {
	return lookupStatus(tx).badge
}

// StatusKey returns the label key describing the transaction's state.
func StatusKey(tx *txtypes.Transaction, ctx StatusContext) string {
	s := lookupStatus(tx)
	if ctx.Export && s.export != "" {
		return s.export
	}
	return s.key
}

// ShowRetry reports whether a failed transaction offers a retry action.
func ShowRetry(tx *txtypes.Transaction) bool {
	if StatusBadge(tx) != BadgeFailed {
		return false
	}
	return !(tx.HasState(txtypes.StateDataNotInCache) && noRetryKinds[tx.Kind])
}

// AmountSign returns the sign shown before the transaction amount. An
// on-chain deposit still waiting for its transaction has an uncertain amount
// and canceled lightning invoices and payments show no sign. flip inverts
// the sign of every kind except stability pool transfers.
func AmountSign(tx *txtypes.Transaction, flip bool) string {
	switch {
	case tx.Kind == txtypes.KindOnchainDeposit && tx.HasState(txtypes.StateWaitingForTransaction):
		return SignUncertain
	case tx.HasState(txtypes.StateCanceled) &&
		(tx.Kind == txtypes.KindLnPay || tx.Kind == txtypes.KindLnReceive || tx.Kind == txtypes.KindLnRecurringdReceive):
		return ""
	}

	sending := TxDirection(tx.Kind) == TxDirectionSent
	if flip && !tx.Kind.IsTransfer() {
		sending = !sending
	}
	if sending {
		return SignMinus
	}
	return SignPlus
}

// Classify returns the list view classification of a transaction.
func Classify(tx *txtypes.Transaction, ctx StatusContext) Classification {
	return Classification{
		Direction: TxDirection(tx.Kind),
		Badge:     StatusBadge(tx),
		StatusKey: StatusKey(tx, ctx),
		Sign:      AmountSign(tx, false),
		ShowRetry: ShowRetry(tx),
	}
}

// ClassifyMultispend returns the classification of a multispend group
// account event.
func ClassifyMultispend(m *txtypes.MultispendTransaction, ctx StatusContext) Classification {
	c := Classification{
		Direction: TxDirectionInvalid,
		Badge:     BadgePending,
		StatusKey: values.StrPending,
	}

	switch m.State {
	case txtypes.MultispendDeposit:
		c.Direction, c.Badge, c.Sign = TxDirectionReceived, BadgeIncoming, SignPlus
		c.StatusKey = values.StrDeposit
		if ctx.Export {
			c.StatusKey = values.StrComplete
		}
	case txtypes.MultispendWithdrawal:
		c.Direction, c.Sign = TxDirectionSent, SignMinus
		if m.Withdrawal == nil {
			break
		}
		switch m.Withdrawal.TxSubmissionStatus.Type {
		case txtypes.SubmissionAccepted:
			c.Badge, c.StatusKey = BadgeOutgoing, values.StrWithdrawal
			if ctx.Export {
				c.StatusKey = values.StrComplete
			}
		case txtypes.SubmissionRejected:
			c.Badge, c.StatusKey, c.ShowRetry = BadgeFailed, values.StrFailed, true
		}
	case txtypes.MultispendGroupInvitation:
		c.StatusKey = values.StrGroupInvitation
	default:
		c.StatusKey = values.StrUnknown
	}
	return c
}
