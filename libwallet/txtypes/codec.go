package txtypes

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type stateDecoder func(raw json.RawMessage) (State, error)

func decodeAs[T State](raw json.RawMessage) (State, error) {
	var s T
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// stateDecoders holds the variants that carry fields. Any other valid tag
// decodes to a PlainState.
var stateDecoders = map[Kind]map[StateType]stateDecoder{
	KindLnPay: {
		StateWaitingForRefund: decodeAs[LnPayWaitingForRefund],
		StateRefunded:         decodeAs[LnPayRefunded],
		StateSuccess:          decodeAs[LnPaySuccess],
	},
	KindLnReceive: {
		StateWaitingForPayment: decodeAs[LnReceiveWaitingForPayment],
		StateCanceled:          decodeAs[LnReceiveCanceled],
	},
	KindLnRecurringdReceive: {
		StateWaitingForPayment: decodeAs[LnReceiveWaitingForPayment],
		StateCanceled:          decodeAs[LnReceiveCanceled],
	},
	KindOnchainWithdraw: {
		StateSucceeded: decodeAs[OnchainWithdrawSucceeded],
		StateFailed:    decodeAs[OnchainWithdrawFailed],
	},
	KindOnchainDeposit: {
		StateWaitingForConfirmation: decodeAs[OnchainDepositWaitingForConfirmation],
		StateConfirmed:              decodeAs[OnchainDepositConfirmed],
		StateClaimed:                decodeAs[OnchainDepositClaimed],
		StateFailed:                 decodeAs[OnchainDepositFailed],
	},
	KindOOBReceive: {
		StateFailed: decodeAs[OOBReceiveFailed],
	},
	KindSPDeposit: {
		StateCompleteDeposit: decodeAs[SPDepositComplete],
	},
	KindSPWithdraw: {
		StatePendingWithdrawal:  decodeAs[SPWithdrawPending],
		StateCompleteWithdrawal: decodeAs[SPWithdrawComplete],
	},
	KindSPV2Deposit: {
		StatePendingDeposit:   decodeAs[SPV2DepositPending],
		StateCompletedDeposit: decodeAs[SPV2DepositCompleted],
		StateFailedDeposit:    decodeAs[SPV2DepositFailed],
	},
	KindSPV2Withdrawal: {
		StatePendingWithdrawal:   decodeAs[SPV2WithdrawalPending],
		StateCompletedWithdrawal: decodeAs[SPV2WithdrawalCompleted],
		StateFailedWithdrawal:    decodeAs[SPV2WithdrawalFailed],
	},
	KindSPV2TransferIn: {
		StateCompletedTransfer: decodeAs[SPV2TransferInCompleted],
	},
	KindSPV2TransferOut: {
		StateCompletedTransfer: decodeAs[SPV2TransferOutCompleted],
	},
	KindMultispendDeposit: {
		StateCompleted: decodeAs[MultispendDepositCompleted],
	},
	KindMultispendWithdrawal: {
		StateCompleted: decodeAs[MultispendWithdrawalCompleted],
	},
}

// DecodeState decodes a `{"type": ..., ...}` state object for kind. Tags that
// are not valid for the kind decode to an UnknownState.
func DecodeState(kind Kind, raw json.RawMessage) (State, error) {
	var tagged struct {
		Type StateType `json:"type"`
	}
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("invalid %s state: %w", kind, err)
	}

	if !IsValidState(kind, tagged.Type) {
		return UnknownState{Type: tagged.Type}, nil
	}
	if decode, ok := stateDecoders[kind][tagged.Type]; ok {
		return decode(raw)
	}
	return PlainState(tagged.Type), nil
}

// EncodeState encodes s as a tagged state object.
func EncodeState(s State) (json.RawMessage, error) {
	if s == nil {
		return json.RawMessage("null"), nil
	}

	tag, err := json.Marshal(s.StateType())
	if err != nil {
		return nil, err
	}

	var fields []byte
	switch s.(type) {
	case PlainState, UnknownState:
		fields = []byte("{}")
	default:
		if fields, err = json.Marshal(s); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if body := bytes.TrimSpace(fields[1 : len(fields)-1]); len(body) > 0 {
		buf.WriteByte(',')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type transactionAlias Transaction

type transactionJSON struct {
	*transactionAlias
	State json.RawMessage `json:"state"`
}

// MarshalJSON implements json.Marshaler.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	state, err := EncodeState(tx.State)
	if err != nil {
		return nil, err
	}
	alias := transactionAlias(tx)
	return json.Marshal(transactionJSON{transactionAlias: &alias, State: state})
}

// UnmarshalJSON implements json.Unmarshaler.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	aux := transactionJSON{transactionAlias: (*transactionAlias)(tx)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	tx.State = nil
	if len(aux.State) == 0 || string(aux.State) == "null" {
		return nil
	}
	state, err := DecodeState(tx.Kind, aux.State)
	if err != nil {
		return err
	}
	tx.State = state
	return nil
}
