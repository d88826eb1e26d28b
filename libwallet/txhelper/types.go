package txhelper

const (
	TxDirectionInvalid  int32 = -1
	TxDirectionSent     int32 = 0
	TxDirectionReceived int32 = 1
)

// Badge is the coarse status icon shown next to a transaction.
type Badge string

const (
	BadgeIncoming Badge = "incoming"
	BadgeOutgoing Badge = "outgoing"
	BadgePending  Badge = "pending"
	BadgeFailed   Badge = "failed"
	BadgeExpired  Badge = "expired"
)

// Amount signs.
const (
	SignPlus      = "+"
	SignMinus     = "-"
	SignUncertain = "~"
)

// StatusContext selects the wording of status labels.
type StatusContext struct {
	// Export renders labels for CSV and other exports.
	Export bool
}

// Classification is everything the history list shows about a record's
// status.
type Classification struct {
	Direction int32
	Badge     Badge
	StatusKey string
	Sign      string
	// ShowRetry reports whether a failed record offers a retry action.
	ShowRetry bool
}
