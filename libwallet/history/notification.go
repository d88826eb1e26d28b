package history

import (
	"decred.org/dcrwallet/v2/errors"
	"github.com/crypto-power/fediwallet/libwallet/utils"
)

// HistoryListener is notified when a federation's cached history changes.
type HistoryListener interface {
	OnHistoryUpdated(federationID string, count int)
	OnNotesUpdated(federationID, txID string)
}

// AddHistoryListener registers a listener under a unique identifier.
func (c *Cache) AddHistoryListener(listener HistoryListener, uniqueIdentifier string) error {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	if _, ok := c.listeners[uniqueIdentifier]; ok {
		return errors.New(utils.ErrListenerAlreadyExist)
	}
	c.listeners[uniqueIdentifier] = listener
	return nil
}

func (c *Cache) RemoveHistoryListener(uniqueIdentifier string) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	delete(c.listeners, uniqueIdentifier)
}

func (c *Cache) publishHistoryUpdated(federationID string, count int) {
	c.listenersMu.RLock()
	defer c.listenersMu.RUnlock()

	for _, l := range c.listeners {
		l.OnHistoryUpdated(federationID, count)
	}
}

func (c *Cache) publishNotesUpdated(federationID, txID string) {
	c.listenersMu.RLock()
	defer c.listenersMu.RUnlock()

	for _, l := range c.listeners {
		l.OnNotesUpdated(federationID, txID)
	}
}
