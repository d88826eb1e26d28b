// Package details builds the labelled rows shown on a transaction's detail
// view.
package details

import (
	"github.com/crypto-power/fediwallet/libwallet/txhelper"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/libwallet/values"
)

// Row is one labelled value of a detail view.
type Row struct {
	LabelKey string
	Label    string
	Value    string
	// Copyable values offer a copy action.
	Copyable bool
	// Truncated values are shortened in the middle when displayed.
	Truncated bool
}

// MemberLookup resolves a chat user id to a display name.
type MemberLookup interface {
	DisplayName(userID string) (string, bool)
}

// Assembler renders detail rows for one display context.
type Assembler struct {
	dc        utils.DisplayContext
	translate values.Translator
	members   MemberLookup
}

// NewAssembler returns an assembler. A nil translator renders English labels
// and a nil member lookup shows raw user ids.
func NewAssembler(dc utils.DisplayContext, t values.Translator, members MemberLookup) *Assembler {
	if t == nil {
		t = values.String
	}
	return &Assembler{dc: dc, translate: t, members: members}
}

type rows struct {
	a    *Assembler
	list []Row
}

func (r *rows) add(key, value string) {
	if value == "" {
		return
	}
	r.list = append(r.list, Row{LabelKey: key, Label: r.a.translate(key), Value: value})
}

func (r *rows) addCopyable(key, value string) {
	if value == "" {
		return
	}
	r.list = append(r.list, Row{
		LabelKey:  key,
		Label:     r.a.translate(key),
		Value:     value,
		Copyable:  true,
		Truncated: true,
	})
}

// Assemble returns the detail rows of tx: type, status and date, then the
// rows specific to its kind and state, then the total fees when any were
// charged. Rows are only emitted for fields that are present.
func (a *Assembler) Assemble(tx *txtypes.Transaction) []Row {
	r := &rows{a: a}
	r.add(values.StrType, a.translate(txhelper.TxTypeKey(tx.Kind)))
	r.add(values.StrStatus, a.translate(txhelper.StatusKey(tx, txhelper.StatusContext{})))
	r.add(values.StrDate, utils.FormatDetailTime(tx.CreatedAt, a.dc.Location))

	switch tx.Kind {
	case txtypes.KindLnPay:
		r.addCopyable(values.StrInvoice, tx.LnInvoice)
		if s, ok := tx.State.(txtypes.LnPaySuccess); ok {
			r.addCopyable(values.StrPreimage, s.Preimage)
		}
	case txtypes.KindLnReceive, txtypes.KindLnRecurringdReceive:
		invoice := tx.LnInvoice
		if s, ok := tx.State.(txtypes.LnReceiveWaitingForPayment); ok && invoice == "" {
			invoice = s.Invoice
		}
		r.addCopyable(values.StrInvoice, invoice)
	case txtypes.KindOnchainWithdraw, txtypes.KindOnchainDeposit:
		r.addCopyable(values.StrAddress, tx.OnchainAddress)
		a.onchainRows(r, tx.State)
	case txtypes.KindOOBReceive:
		if s, ok := tx.State.(txtypes.OOBReceiveFailed); ok {
			r.add(values.StrError, s.Error)
		}
	case txtypes.KindMultispendDeposit:
		if s, ok := tx.State.(txtypes.MultispendDepositCompleted); ok {
			r.add(values.StrDepositor, a.memberName(s.DepositorID))
			r.add(values.StrAmount, a.centsText(s.FiatAmount))
			r.add(values.StrDescription, s.Description)
		}
	case txtypes.KindMultispendWithdrawal:
		if s, ok := tx.State.(txtypes.MultispendWithdrawalCompleted); ok {
			r.add(values.StrWithdrawer, a.memberName(s.WithdrawerID))
			r.add(values.StrAmount, a.centsText(s.FiatAmount))
			r.add(values.StrDescription, s.Description)
		}
	default:
		if tx.Kind.IsStabilityPool() {
			a.stabilityRows(r, tx)
		}
	}

	if fees := txhelper.MakeFeeDetails(tx, a.dc); fees.HasFees() {
		r.add(values.StrFees, fees.Total.Formatted)
	}
	return r.list
}

func (a *Assembler) onchainRows(r *rows, state txtypes.State) {
	switch s := state.(type) {
	case txtypes.OnchainWithdrawSucceeded:
		r.addCopyable(values.StrTxid, s.Txid)
	case txtypes.OnchainWithdrawFailed:
		r.add(values.StrError, s.Error)
	case txtypes.OnchainDepositWaitingForConfirmation:
		r.addCopyable(values.StrTxid, s.Txid)
	case txtypes.OnchainDepositConfirmed:
		r.addCopyable(values.StrTxid, s.Txid)
	case txtypes.OnchainDepositClaimed:
		r.addCopyable(values.StrTxid, s.Txid)
	case txtypes.OnchainDepositFailed:
		r.add(values.StrError, s.Error)
	}
}

func (a *Assembler) stabilityRows(r *rows, tx *txtypes.Transaction) {
	if tx.Kind == txtypes.KindSPDeposit || tx.Kind == txtypes.KindSPV2Deposit {
		if !tx.HasState(txtypes.StateDataNotInCache) {
			r.add(values.StrDepositDestination, a.translate(values.StrStableBalance))
		}
	}

	switch s := tx.State.(type) {
	case txtypes.SPDepositComplete:
		r.add(values.StrCurrentValue, a.centsText(s.InitialAmountCents))
	case txtypes.SPWithdrawPending:
		r.add(values.StrWithdrawalValue, a.centsText(s.EstimatedWithdrawalCents))
	case txtypes.SPWithdrawComplete:
		r.add(values.StrWithdrawalValue, a.centsText(s.EstimatedWithdrawalCents))
	case txtypes.SPV2DepositPending:
		r.add(values.StrCurrentValue, a.centsText(s.FiatAmount))
	case txtypes.SPV2DepositCompleted:
		r.add(values.StrCurrentValue, a.centsText(s.FiatAmount))
	case txtypes.SPV2WithdrawalPending:
		r.add(values.StrWithdrawalValue, a.centsText(s.FiatAmount))
	case txtypes.SPV2WithdrawalCompleted:
		r.add(values.StrWithdrawalValue, a.centsText(s.FiatAmount))
	case txtypes.SPV2TransferInCompleted:
		r.addCopyable(values.StrTransferFrom, s.FromAccountID)
		r.add(values.StrAmount, a.centsText(s.FiatAmount))
	case txtypes.SPV2TransferOutCompleted:
		r.addCopyable(values.StrTransferTo, s.ToAccountID)
		r.add(values.StrAmount, a.centsText(s.FiatAmount))
	case txtypes.SPV2DepositFailed:
		r.add(values.StrError, s.Error)
	case txtypes.SPV2WithdrawalFailed:
		r.add(values.StrError, s.Error)
	}
}

// AssembleMultispend returns the detail rows of a multispend group account
// event.
func (a *Assembler) AssembleMultispend(m *txtypes.MultispendTransaction) []Row {
	c := txhelper.ClassifyMultispend(m, txhelper.StatusContext{})

	r := &rows{a: a}
	r.add(values.StrType, a.translate(values.StrMultispend))
	r.add(values.StrStatus, a.translate(c.StatusKey))
	r.add(values.StrDate, utils.FormatDetailTime(m.CreatedAt(), a.dc.Location))

	switch {
	case m.Deposit != nil:
		r.add(values.StrDepositor, a.memberName(m.Deposit.User))
		r.add(values.StrAmount, a.multispendAmount(m))
		r.add(values.StrDescription, m.Deposit.Description)
		r.addCopyable(values.StrTxid, m.Deposit.Txid)
	case m.Withdrawal != nil:
		r.add(values.StrWithdrawer, a.memberName(m.Withdrawal.Sender))
		r.add(values.StrAmount, a.multispendAmount(m))
		r.add(values.StrDescription, m.Withdrawal.Description)
		status := m.Withdrawal.TxSubmissionStatus
		r.addCopyable(values.StrTxid, status.Txid)
		r.add(values.StrError, status.Error)
	}
	return r.list
}

func (a *Assembler) memberName(userID string) string {
	if userID == "" {
		return ""
	}
	if a.members != nil {
		if name, ok := a.members.DisplayName(userID); ok && name != "" {
			return name
		}
	}
	return userID
}

func (a *Assembler) multispendAmount(m *txtypes.MultispendTransaction) string {
	if v := txhelper.MultispendFiat(m, a.dc); v.Available() {
		return txhelper.FormatFiatValue(v, a.dc)
	}
	return a.centsText(m.FiatAmount())
}

// centsText renders a USD cent amount in the preferred currency, or in USD
// when no rate is known.
func (a *Assembler) centsText(cents int64) string {
	if a.dc.HasRate() {
		return a.dc.FormatFiat(utils.CentsToOtherFiat(cents, a.dc.BtcUsdRate, a.dc.BtcToFiatRate()))
	}
	return a.dc.FormatFiatIn(float64(cents)/100, utils.USD)
}
