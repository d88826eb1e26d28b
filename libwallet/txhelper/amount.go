package txhelper

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
)

// FiatSource names where a fiat value was taken from.
type FiatSource int

const (
	FiatUnavailable FiatSource = iota
	FiatLive
	FiatHistorical
	FiatStateField
)

// FiatValue is a fiat amount and the currency it is denominated in.
type FiatValue struct {
	Amount   float64
	Currency string
	Source   FiatSource
}

// Available reports whether a fiat value could be computed.
func (v FiatValue) Available() bool {
	return v.Source != FiatUnavailable
}

// AmountText is the rendered amount of a history record.
type AmountText struct {
	Sign     string
	Sats     btcutil.Amount
	SatsText string
	Fiat     FiatValue
	FiatText string
}

// TransactionFiat picks the fiat value of a transaction. Partially settled
// stability pool states report the value the pool quoted, even when a rate
// snapshot exists. Every other record prefers the snapshot, then a fiat
// amount carried by its state, then the live rate.
func TransactionFiat(tx *txtypes.Transaction, dc utils.DisplayContext) FiatValue {
	if cents, ok := pendingStabilityCents(tx.State); ok {
		return centsValue(cents, dc)
	}

	if snap := tx.FiatSnapshot; snap != nil && snap.FiatCode != "" && snap.BtcToFiatHundredths > 0 {
		return FiatValue{
			Amount:   utils.SnapshotToFiat(tx.AmountSats(), snap.BtcToFiatHundredths),
			Currency: snap.FiatCode,
			Source:   FiatHistorical,
		}
	}

	if cents, ok := settledStateCents(tx.State); ok {
		return centsValue(cents, dc)
	}

	return liveValue(tx.AmountSats(), dc)
}

func pendingStabilityCents(state txtypes.State) (int64, bool) {
	switch s := state.(type) {
	case txtypes.SPWithdrawPending:
		return s.EstimatedWithdrawalCents, true
	case txtypes.SPV2WithdrawalPending:
		return s.FiatAmount, true
	case txtypes.SPV2DepositPending:
		return s.FiatAmount, true
	}
	return 0, false
}

func settledStateCents(state txtypes.State) (int64, bool) {
	switch s := state.(type) {
	case txtypes.SPWithdrawComplete:
		return s.EstimatedWithdrawalCents, true
	case txtypes.SPDepositComplete:
		return s.InitialAmountCents, true
	case txtypes.SPV2DepositCompleted:
		return s.FiatAmount, true
	case txtypes.SPV2WithdrawalCompleted:
		return s.FiatAmount, true
	case txtypes.SPV2TransferInCompleted:
		return s.FiatAmount, true
	case txtypes.SPV2TransferOutCompleted:
		return s.FiatAmount, true
	case txtypes.MultispendDepositCompleted:
		return s.FiatAmount, true
	case txtypes.MultispendWithdrawalCompleted:
		return s.FiatAmount, true
	}
	return 0, false
}

func centsValue(cents int64, dc utils.DisplayContext) FiatValue {
	if !dc.HasRate() {
		return FiatValue{Currency: dc.Currency}
	}
	return FiatValue{
		Amount:   utils.CentsToOtherFiat(cents, dc.BtcUsdRate, dc.BtcToFiatRate()),
		Currency: dc.Currency,
		Source:   FiatStateField,
	}
}

func liveValue(sats btcutil.Amount, dc utils.DisplayContext) FiatValue {
	rate := dc.BtcToFiatRate()
	if rate <= 0 {
		return FiatValue{Currency: dc.Currency}
	}
	return FiatValue{
		Amount:   utils.SatToFiat(sats, rate),
		Currency: dc.Currency,
		Source:   FiatLive,
	}
}

// FormatFiatValue renders v, or an empty string when it is unavailable.
func FormatFiatValue(v FiatValue, dc utils.DisplayContext) string {
	if !v.Available() {
		return ""
	}
	if v.Currency == "" {
		return dc.FormatFiat(v.Amount)
	}
	return dc.FormatFiatIn(v.Amount, v.Currency)
}

// MakeAmountText renders the signed amount of tx. The amount of an on-chain
// deposit still waiting for its transaction is not known and is left blank.
func MakeAmountText(tx *txtypes.Transaction, dc utils.DisplayContext, flip bool) AmountText {
	at := AmountText{
		Sign: AmountSign(tx, flip),
		Sats: tx.AmountSats(),
		Fiat: TransactionFiat(tx, dc),
	}
	if at.Sign == SignUncertain {
		return at
	}

	at.SatsText = at.Sign + dc.FormatSats(at.Sats)
	if text := FormatFiatValue(at.Fiat, dc); text != "" {
		at.FiatText = at.Sign + text
	}
	return at
}

// MultispendFiat values a multispend event's USD cent amount in the preferred
// currency.
func MultispendFiat(m *txtypes.MultispendTransaction, dc utils.DisplayContext) FiatValue {
	return centsValue(m.FiatAmount(), dc)
}
