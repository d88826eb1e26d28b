package txhelper

import (
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/values"
)

var sendKinds = map[txtypes.Kind]bool{
	txtypes.KindLnPay:                true,
	txtypes.KindOnchainWithdraw:      true,
	txtypes.KindOOBSend:              true,
	txtypes.KindSPDeposit:            true,
	txtypes.KindSPV2Deposit:          true,
	txtypes.KindSPV2TransferOut:      true,
	txtypes.KindMultispendWithdrawal: true,
}

// TxDirection returns whether the kind sends funds out of or into the
// wallet. Every kind not explicitly a send is a receive.
func TxDirection(kind txtypes.Kind) int32 {
	if sendKinds[kind] {
		return TxDirectionSent
	}
	return TxDirectionReceived
}

// TxTypeKey returns the label key of the channel a transaction used.
func TxTypeKey(kind txtypes.Kind) string {
	switch kind {
	case txtypes.KindLnPay, txtypes.KindLnReceive, txtypes.KindLnRecurringdReceive:
		return values.StrLightning
	case txtypes.KindOnchainWithdraw, txtypes.KindOnchainDeposit:
		return values.StrOnchain
	case txtypes.KindOOBSend, txtypes.KindOOBReceive:
		return values.StrEcash
	case txtypes.KindSPDeposit, txtypes.KindSPV2Deposit:
		return values.StrStabilityDeposit
	case txtypes.KindSPWithdraw, txtypes.KindSPV2Withdrawal:
		return values.StrStabilityWithdrawal
	case txtypes.KindSPV2TransferIn, txtypes.KindSPV2TransferOut:
		return values.StrStabilityTransfer
	case txtypes.KindMultispendDeposit, txtypes.KindMultispendWithdrawal:
		return values.StrMultispend
	default:
		return values.StrUnknown
	}
}
