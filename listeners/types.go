package listeners

type HistoryNotifType int

const (
	// History notification types
	HistoryUpdated HistoryNotifType = iota // 0 = federation history changed.
	NotesUpdated                           // 1 = transaction notes changed.
)

// HistoryNotification models history cache notifications.
type HistoryNotification struct {
	Type         HistoryNotifType
	FederationID string
	Count        int
	TxID         string
}
