package utils

import (
	"math"

	"github.com/btcsuite/btcd/btcutil"
	lnurl "github.com/fiatjaf/go-lnurl"
	"github.com/lightningnetwork/lnd/lnwire"
)

// BoundsCheck is the outcome of validating an entered amount.
type BoundsCheck int

const (
	WithinBounds BoundsCheck = iota
	BelowMinimum
	AboveMaximum
)

// AmountBounds limits the amount a user may enter. A zero Min is no minimum.
// Max only applies when HasMax is set, so a zero Max is a real cap.
type AmountBounds struct {
	Min    btcutil.Amount
	Max    btcutil.Amount
	HasMax bool
}

// BoundsFromInvoice fixes the amount to the one requested by an invoice. An
// invoice without an amount leaves it unbounded.
func BoundsFromInvoice(amount lnwire.MilliSatoshi) AmountBounds {
	sats := MsatToSat(amount)
	return AmountBounds{Min: sats, Max: sats, HasMax: sats > 0}
}

// BoundsFromLNURLPay reads the sendable range of an LNURL pay request.
func BoundsFromLNURLPay(params lnurl.LNURLPayParams) AmountBounds {
	return msatBounds(params.MinSendable, params.MaxSendable)
}

// BoundsFromLNURLWithdraw reads the withdrawable range of an LNURL withdraw
// request.
func BoundsFromLNURLWithdraw(params lnurl.LNURLWithdrawResponse) AmountBounds {
	return msatBounds(params.MinWithdrawable, params.MaxWithdrawable)
}

// msatBounds reads an LNURL msat range. A non-positive maximum is absent.
func msatBounds(min, max int64) AmountBounds {
	return AmountBounds{
		Min:    msatBound(min),
		Max:    msatBound(max),
		HasMax: max > 0,
	}
}

func msatBound(msat int64) btcutil.Amount {
	if msat <= 0 {
		return 0
	}
	return MsatToSat(lnwire.MilliSatoshi(msat))
}

// WithBalance caps the maximum at the spendable balance.
func (b AmountBounds) WithBalance(balance btcutil.Amount) AmountBounds {
	if balance < 0 {
		balance = 0
	}
	if !b.HasMax || balance < b.Max {
		b.Max = balance
		b.HasMax = true
	}
	return b
}

// Resolve checks entered against the bounds. An amount just outside a bound
// whose fiat value displays the same as the bound, at two decimals, snaps to
// the bound: the user typed the value they were shown.
func (b AmountBounds) Resolve(entered btcutil.Amount, btcToFiatRate float64) (btcutil.Amount, BoundsCheck) {
	if b.Min > 0 && entered < b.Min {
		if sameDisplayedFiat(entered, b.Min, btcToFiatRate) {
			return b.Min, WithinBounds
		}
		return entered, BelowMinimum
	}
	if b.HasMax && entered > b.Max {
		if sameDisplayedFiat(entered, b.Max, btcToFiatRate) {
			return b.Max, WithinBounds
		}
		return entered, AboveMaximum
	}
	return entered, WithinBounds
}

// ResolveFiat converts an entered fiat amount to sats and checks it against
// the bounds. The fiat value the user typed is compared with the displayed
// fiat value of each bound.
func (b AmountBounds) ResolveFiat(fiat, btcToFiatRate float64) (btcutil.Amount, BoundsCheck) {
	sats := FiatToSat(fiat, btcToFiatRate)
	if !validRate(btcToFiatRate) {
		return b.Resolve(sats, btcToFiatRate)
	}
	if b.Min > 0 && sats < b.Min && round2(fiat) == round2(SatToFiat(b.Min, btcToFiatRate)) {
		return b.Min, WithinBounds
	}
	if b.HasMax && sats > b.Max && round2(fiat) == round2(SatToFiat(b.Max, btcToFiatRate)) {
		return b.Max, WithinBounds
	}
	return b.Resolve(sats, btcToFiatRate)
}

func sameDisplayedFiat(a, b btcutil.Amount, rate float64) bool {
	if !validRate(rate) {
		return false
	}
	return round2(SatToFiat(a, rate)) == round2(SatToFiat(b, rate))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
