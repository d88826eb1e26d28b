package txtypes

import (
	"encoding/json"
	"fmt"

	"github.com/lightningnetwork/lnd/lnwire"
)

// MultispendState is the kind of event recorded on a multispend group
// account.
type MultispendState string

const (
	MultispendDeposit         MultispendState = "deposit"
	MultispendWithdrawal      MultispendState = "withdrawal"
	MultispendGroupInvitation MultispendState = "groupInvitation"
	MultispendInvalid         MultispendState = "invalid"
)

// SubmissionStatusType is the on-chain submission status of an approved
// multispend withdrawal.
type SubmissionStatusType string

const (
	SubmissionUnknown  SubmissionStatusType = "unknown"
	SubmissionAccepted SubmissionStatusType = "accepted"
	SubmissionRejected SubmissionStatusType = "rejected"
)

// SubmissionStatus is encoded either as the bare string "unknown" or as a
// single key object, `{"accepted":{"txid":...}}` or `{"rejected":{"error":...}}`.
type SubmissionStatus struct {
	Type  SubmissionStatusType
	Txid  string
	Error string
}

func (s SubmissionStatus) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case SubmissionAccepted:
		return json.Marshal(map[string]interface{}{
			string(SubmissionAccepted): map[string]string{"txid": s.Txid},
		})
	case SubmissionRejected:
		return json.Marshal(map[string]interface{}{
			string(SubmissionRejected): map[string]string{"error": s.Error},
		})
	default:
		return json.Marshal(string(SubmissionUnknown))
	}
}

func (s *SubmissionStatus) UnmarshalJSON(data []byte) error {
	*s = SubmissionStatus{Type: SubmissionUnknown}

	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		return nil
	}

	var keyed map[string]struct {
		Txid  string `json:"txid"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &keyed); err != nil {
		return fmt.Errorf("invalid submission status: %w", err)
	}
	if v, ok := keyed[string(SubmissionAccepted)]; ok {
		s.Type, s.Txid = SubmissionAccepted, v.Txid
	} else if v, ok := keyed[string(SubmissionRejected)]; ok {
		s.Type, s.Error = SubmissionRejected, v.Error
	}
	return nil
}

// MultispendDepositEvent records a member funding the group account.
type MultispendDepositEvent struct {
	User        string              `json:"user"`
	Amount      lnwire.MilliSatoshi `json:"amount"`
	FiatAmount  int64               `json:"fiatAmount"`
	Txid        string              `json:"txid,omitempty"`
	Description string              `json:"description,omitempty"`
}

// MultispendWithdrawalEvent records an approved withdrawal request.
type MultispendWithdrawalEvent struct {
	Sender             string              `json:"sender"`
	Amount             lnwire.MilliSatoshi `json:"amount"`
	FiatAmount         int64               `json:"fiatAmount"`
	Description        string              `json:"description,omitempty"`
	TxSubmissionStatus SubmissionStatus    `json:"txSubmissionStatus"`
}

// MultispendGroupInvitationEvent records the creation of the group account.
type MultispendGroupInvitationEvent struct {
	Proposer  string   `json:"proposer"`
	Signers   []string `json:"signers"`
	Threshold uint64   `json:"threshold"`
}

// MultispendTransaction is an event on a multispend group account. Time is
// in unix milliseconds.
type MultispendTransaction struct {
	Counter uint64          `json:"counter"`
	Time    int64           `json:"time"`
	State   MultispendState `json:"state"`

	// Exactly one of these is set, matching State.
	Deposit         *MultispendDepositEvent         `json:"-"`
	Withdrawal      *MultispendWithdrawalEvent      `json:"-"`
	GroupInvitation *MultispendGroupInvitationEvent `json:"-"`
}

// CreatedAt returns the event time in unix seconds, truncating.
func (m *MultispendTransaction) CreatedAt() int64 {
	return m.Time / 1000
}

// FiatAmount returns the event's USD cent amount, or zero for events that do
// not move funds.
func (m *MultispendTransaction) FiatAmount() int64 {
	switch {
	case m.State == MultispendDeposit && m.Deposit != nil:
		return m.Deposit.FiatAmount
	case m.State == MultispendWithdrawal && m.Withdrawal != nil:
		return m.Withdrawal.FiatAmount
	}
	return 0
}

type multispendAlias MultispendTransaction

type multispendJSON struct {
	*multispendAlias
	Event json.RawMessage `json:"event,omitempty"`
}

func (m MultispendTransaction) MarshalJSON() ([]byte, error) {
	var event interface{}
	switch m.State {
	case MultispendDeposit:
		event = m.Deposit
	case MultispendWithdrawal:
		event = m.Withdrawal
	case MultispendGroupInvitation:
		event = m.GroupInvitation
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	alias := multispendAlias(m)
	return json.Marshal(multispendJSON{multispendAlias: &alias, Event: raw})
}

func (m *MultispendTransaction) UnmarshalJSON(data []byte) error {
	aux := multispendJSON{multispendAlias: (*multispendAlias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.Deposit, m.Withdrawal, m.GroupInvitation = nil, nil, nil
	if len(aux.Event) == 0 || string(aux.Event) == "null" {
		return nil
	}

	var err error
	switch m.State {
	case MultispendDeposit:
		m.Deposit = new(MultispendDepositEvent)
		err = json.Unmarshal(aux.Event, m.Deposit)
	case MultispendWithdrawal:
		m.Withdrawal = &MultispendWithdrawalEvent{
			TxSubmissionStatus: SubmissionStatus{Type: SubmissionUnknown},
		}
		err = json.Unmarshal(aux.Event, m.Withdrawal)
	case MultispendGroupInvitation:
		m.GroupInvitation = new(MultispendGroupInvitationEvent)
		err = json.Unmarshal(aux.Event, m.GroupInvitation)
	default:
		m.State = MultispendInvalid
	}
	return err
}
