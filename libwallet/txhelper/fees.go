package txhelper

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/libwallet/values"
	"github.com/lightningnetwork/lnd/lnwire"
)

// FeeItem is one line of a fee breakdown.
type FeeItem struct {
	LabelKey  string
	Amount    lnwire.MilliSatoshi
	Formatted string
}

// FeeDetails is the fee breakdown of a transaction.
type FeeDetails struct {
	Items []FeeItem
	Total FeeItem
}

// HasFees reports whether any fee was charged.
func (f FeeDetails) HasFees() bool {
	return f.Total.Amount > 0
}

// MakeFeeDetails itemises the fees charged for tx. The service fee is only
// itemised once it is being or has been charged. Every item and the total are
// formatted as "{fiat} ({sats})" at the live rate, or the sats alone when no
// rate is known. The formatted total is the sum of the truncated item sats so
// it always adds up to the displayed items. Total.Amount keeps the exact
// millisatoshi sum.
func MakeFeeDetails(tx *txtypes.Transaction, dc utils.DisplayContext) FeeDetails {
	var items []FeeItem
	add := func(key string, amount lnwire.MilliSatoshi) {
		if amount == 0 {
			return
		}
		items = append(items, FeeItem{
			LabelKey:  key,
			Amount:    amount,
			Formatted: FormatFee(amount, dc),
		})
	}

	if fs := tx.FeeStatus; fs != nil && (fs.Type == txtypes.FeeSuccess || fs.Type == txtypes.FeePendingSend) {
		add(values.StrServiceFee, fs.Fee)
	}

	switch tx.Kind {
	case txtypes.KindLnPay:
		add(values.StrLightningFee, tx.LightningFees)
	case txtypes.KindOnchainWithdraw:
		add(values.StrNetworkFee, tx.OnchainFees)
	}

	switch s := tx.State.(type) {
	case txtypes.SPDepositComplete:
		add(values.StrStabilityFee, s.FeesPaidSoFar)
	case txtypes.SPV2DepositCompleted:
		add(values.StrStabilityFee, s.FeesPaidSoFar)
	}

	var total lnwire.MilliSatoshi
	var totalSats btcutil.Amount
	for _, item := range items {
		total += item.Amount
		totalSats += utils.MsatToSat(item.Amount)
	}

	return FeeDetails{
		Items: items,
		Total: FeeItem{
			LabelKey:  values.StrTotalFees,
			Amount:    total,
			Formatted: FormatFee(utils.SatToMsat(totalSats), dc),
		},
	}
}

// FormatFee formats a fee amount as "{fiat} ({sats})".
func FormatFee(amount lnwire.MilliSatoshi, dc utils.DisplayContext) string {
	sats := utils.MsatToSat(amount)
	satsText := dc.FormatSats(sats)
	rate := dc.BtcToFiatRate()
	if rate <= 0 {
		return satsText
	}
	return dc.FormatFiat(utils.MsatToFiat(amount, rate)) + " (" + satsText + ")"
}
