package txtypes

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
)

// FeeStatusType is the settlement stage of the federation service fee.
type FeeStatusType string

const (
	FeePendingSend    FeeStatusType = "pendingSend"
	FeePendingReceive FeeStatusType = "pendingReceive"
	FeeSuccess        FeeStatusType = "success"
	FeeFailedSend     FeeStatusType = "failedSend"
	FeeFailedReceive  FeeStatusType = "failedReceive"
)

// FeeStatus describes the service fee charged by the federation.
type FeeStatus struct {
	Type   FeeStatusType       `json:"type"`
	Fee    lnwire.MilliSatoshi `json:"fedi_fee"`
	FeePPM uint64              `json:"fedi_fee_ppm,omitempty"`
}

// FiatSnapshot is the exchange rate recorded when the transaction happened.
// BtcToFiatHundredths is the price of one bitcoin in hundredths of FiatCode.
type FiatSnapshot struct {
	FiatCode            string `json:"fiatCode"`
	BtcToFiatHundredths int64  `json:"btcToFiatHundredths"`
}

// FrontendMetadata is client supplied data attached when the transaction was
// created.
type FrontendMetadata struct {
	InitialNotes      string `json:"initialNotes,omitempty"`
	RecipientMatrixID string `json:"recipientMatrixId,omitempty"`
	SenderMatrixID    string `json:"senderMatrixId,omitempty"`
}

// Transaction is a single wallet history record.
type Transaction struct {
	ID        string              `json:"id"`
	CreatedAt int64               `json:"createdAt"`
	Amount    lnwire.MilliSatoshi `json:"amount"`
	Kind      Kind                `json:"kind"`
	State     State               `json:"-"`

	FeeStatus        *FeeStatus        `json:"feeStatus,omitempty"`
	Notes            string            `json:"txnNotes"`
	FiatSnapshot     *FiatSnapshot     `json:"txDateFiatInfo,omitempty"`
	FrontendMetadata *FrontendMetadata `json:"frontendMetadata,omitempty"`

	// lightning
	LnInvoice     string              `json:"ln_invoice,omitempty"`
	LightningFees lnwire.MilliSatoshi `json:"lightning_fees,omitempty"`

	// on-chain
	OnchainAddress string              `json:"onchain_address,omitempty"`
	OnchainFees    lnwire.MilliSatoshi `json:"onchain_fees,omitempty"`
	OnchainFeeRate uint64              `json:"onchain_fee_rate,omitempty"`
}

// StateType returns the tag of the transaction's state, or an empty tag when
// no state is set.
func (tx *Transaction) StateType() StateType {
	if tx.State == nil {
		return ""
	}
	return tx.State.StateType()
}

// HasState reports whether the transaction is in the given state.
func (tx *Transaction) HasState(tag StateType) bool {
	return tx.StateType() == tag
}

// AmountSats returns the record amount truncated to whole satoshis.
func (tx *Transaction) AmountSats() btcutil.Amount {
	return tx.Amount.ToSatoshis()
}

// InitialNotes returns the notes supplied when the transaction was created.
func (tx *Transaction) InitialNotes() string {
	if tx.FrontendMetadata == nil {
		return ""
	}
	return tx.FrontendMetadata.InitialNotes
}

// Copy returns a shallow copy of the record with its own pointer fields.
func (tx *Transaction) Copy() *Transaction {
	c := *tx
	if tx.FeeStatus != nil {
		fs := *tx.FeeStatus
		c.FeeStatus = &fs
	}
	if tx.FiatSnapshot != nil {
		fs := *tx.FiatSnapshot
		c.FiatSnapshot = &fs
	}
	if tx.FrontendMetadata != nil {
		fm := *tx.FrontendMetadata
		c.FrontendMetadata = &fm
	}
	return &c
}
