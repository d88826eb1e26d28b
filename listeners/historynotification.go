package listeners

import "sync"

// HistoryNotificationListener satisfies the history.HistoryListener interface
// contract and forwards every notification on a channel.
type HistoryNotificationListener struct {
	historyNotifChan chan HistoryNotification

	// historyNotifChan may be closed while a send is still running.
	// notifChanClosed is closed first so late sends are dropped.
	notifChanClosed chan struct{}
	// wg tracks the pending sends.
	wg sync.WaitGroup
	// wgMu prevents Add and Wait from running simultaneously.
	wgMu sync.Mutex
}

func NewHistoryNotificationListener() *HistoryNotificationListener {
	return &HistoryNotificationListener{
		historyNotifChan: make(chan HistoryNotification, 4),
		notifChanClosed:  make(chan struct{}, 1),
	}
}

func (hl *HistoryNotificationListener) OnHistoryUpdated(federationID string, count int) {
	hl.UpdateNotification(HistoryNotification{
		Type:         HistoryUpdated,
		FederationID: federationID,
		Count:        count,
	})
}

func (hl *HistoryNotificationListener) OnNotesUpdated(federationID, txID string) {
	hl.UpdateNotification(HistoryNotification{
		Type:         NotesUpdated,
		FederationID: federationID,
		TxID:         txID,
	})
}

// HistoryNotifChan returns a read-only channel.
func (hl *HistoryNotificationListener) HistoryNotifChan() <-chan HistoryNotification {
	return hl.historyNotifChan
}

// UpdateNotification sends signal without blocking. The signal is dropped
// when the channel is full or closed.
func (hl *HistoryNotificationListener) UpdateNotification(signal HistoryNotification) {
	hl.wgMu.Lock()
	hl.wg.Add(1)
	hl.wgMu.Unlock()

	defer hl.wg.Done()

	select {
	case <-hl.notifChanClosed:
		return
	default:
	}

	select {
	case hl.historyNotifChan <- signal:
	default:
	}
}

func (hl *HistoryNotificationListener) CloseHistoryChan() {
	close(hl.notifChanClosed)

	// Drain all unread channel's contents.
	go func() {
		for range hl.historyNotifChan {
		}
	}()

	// Wait until all pending writes succeed.
	hl.wgMu.Lock()
	hl.wg.Wait()
	hl.wgMu.Unlock()

	close(hl.historyNotifChan)
}
