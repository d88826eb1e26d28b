package utils

import (
	"math"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/shopspring/decimal"
)

// MsatToSat converts millisatoshis to whole satoshis, truncating toward zero.
func MsatToSat(msat lnwire.MilliSatoshi) btcutil.Amount {
	return msat.ToSatoshis()
}

// SatToMsat converts satoshis to millisatoshis.
func SatToMsat(sats btcutil.Amount) lnwire.MilliSatoshi {
	if sats < 0 {
		return 0
	}
	return lnwire.NewMSatFromSatoshis(sats)
}

// SatToBtc converts satoshis to bitcoin.
func SatToBtc(sats btcutil.Amount) float64 {
	return sats.ToBTC()
}

// BtcToSat converts bitcoin to satoshis, rounding to the nearest satoshi.
// Invalid amounts convert to zero.
func BtcToSat(btc float64) btcutil.Amount {
	amt, err := btcutil.NewAmount(btc)
	if err != nil {
		return 0
	}
	return amt
}

// SatToFiat converts satoshis to fiat using the price of one bitcoin in that
// fiat. A missing or invalid rate yields zero.
func SatToFiat(sats btcutil.Amount, btcToFiatRate float64) float64 {
	if !validRate(btcToFiatRate) {
		return 0
	}
	return finite(float64(sats) / btcutil.SatoshiPerBitcoin * btcToFiatRate)
}

// MsatToFiat converts millisatoshis to fiat after truncating to satoshis.
func MsatToFiat(msat lnwire.MilliSatoshi, btcToFiatRate float64) float64 {
	return SatToFiat(MsatToSat(msat), btcToFiatRate)
}

// FiatToSat converts a fiat amount to satoshis, rounding to the nearest
// satoshi. A missing or invalid rate yields zero.
func FiatToSat(fiat, btcToFiatRate float64) btcutil.Amount {
	if !validRate(btcToFiatRate) || math.IsNaN(fiat) || math.IsInf(fiat, 0) {
		return 0
	}
	return btcutil.Amount(math.Round(fiat / btcToFiatRate * btcutil.SatoshiPerBitcoin))
}

// CentsToOtherFiat converts USD cents to another fiat currency by way of
// bitcoin: the USD value is priced in BTC at btcUsdRate and then valued at
// btcToFiatRate.
func CentsToOtherFiat(cents int64, btcUsdRate, btcToFiatRate float64) float64 {
	if !validRate(btcUsdRate) || !validRate(btcToFiatRate) {
		return 0
	}
	usd := float64(cents) / 100
	return finite(usd / btcUsdRate * btcToFiatRate)
}

// SnapshotToFiat values sats at a historical rate quoted in hundredths of
// fiat per bitcoin.
func SnapshotToFiat(sats btcutil.Amount, btcToFiatHundredths int64) float64 {
	if btcToFiatHundredths <= 0 {
		return 0
	}
	v := decimal.NewFromInt(int64(sats)).
		Mul(decimal.NewFromInt(btcToFiatHundredths)).
		Div(decimal.NewFromInt(btcutil.SatoshiPerBitcoin * 100))
	f, _ := v.Float64()
	return f
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
