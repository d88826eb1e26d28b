package history

import (
	"context"
	"sync"

	"decred.org/dcrwallet/v2/errors"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"golang.org/x/sync/errgroup"
)

// Backend is the settlement backend the history is fetched from.
type Backend interface {
	// ListTransactions returns up to limit records of the federation. When
	// startTime is set only records created before it are returned.
	ListTransactions(ctx context.Context, federationID string, startTime *int64, limit int) ([]*txtypes.Transaction, error)
	UpdateTransactionNotes(ctx context.Context, federationID, txID, notes string) error
}

// Store persists each federation's merged history.
type Store interface {
	Read(federationID string, offset, limit int) ([]*txtypes.Transaction, error)
	ReplaceAll(federationID string, txs []*txtypes.Transaction) error
}

// FetchOptions control a single history fetch.
type FetchOptions struct {
	// Limit is the page size, utils.DefaultPageSize when zero.
	Limit int
	// PaginateFromLast requests the page older than the oldest cached
	// record.
	PaginateFromLast bool
	// Refresh discards the cached list instead of merging into it.
	Refresh bool
}

// federationHistory is the cached history of one federation. fetchMu is held
// for the whole read-merge-write of a fetch or notes update so the two never
// interleave. mu guards txs for readers.
type federationHistory struct {
	fetchMu sync.Mutex

	mu  sync.RWMutex
	txs []*txtypes.Transaction

	// ids whose notes were already defaulted from their initial notes
	notesDefaulted map[string]bool
}

func (h *federationHistory) snapshot() []*txtypes.Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]*txtypes.Transaction(nil), h.txs...)
}

func (h *federationHistory) set(txs []*txtypes.Transaction) {
	h.mu.Lock()
	h.txs = txs
	h.mu.Unlock()
}

func (h *federationHistory) find(txID string) *txtypes.Transaction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, tx := range h.txs {
		if tx.ID == txID {
			return tx
		}
	}
	return nil
}

func (h *federationHistory) oldest() (int64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.txs) == 0 {
		return 0, false
	}
	return h.txs[len(h.txs)-1].CreatedAt, true
}

// Cache holds the transaction history of every federation the wallet has
// joined. Cached records are shared between callers and must be treated as
// read-only.
type Cache struct {
	backend Backend
	store   Store

	mu          sync.Mutex
	federations map[string]*federationHistory

	listenersMu sync.RWMutex
	listeners   map[string]HistoryListener
}

// NewCache returns a cache fetching from backend. store may be nil to keep
// the history in memory only.
func NewCache(backend Backend, store Store) *Cache {
	return &Cache{
		backend:     backend,
		store:       store,
		federations: make(map[string]*federationHistory),
		listeners:   make(map[string]HistoryListener),
	}
}

func (c *Cache) federation(federationID string) *federationHistory {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.federations[federationID]
	if !ok {
		h = &federationHistory{notesDefaulted: make(map[string]bool)}
		c.federations[federationID] = h
	}
	return h
}

// Transactions returns the cached history of the federation, newest first.
func (c *Cache) Transactions(federationID string) []*txtypes.Transaction {
	return c.federation(federationID).snapshot()
}

// Transaction returns the cached record with the given id, or nil.
func (c *Cache) Transaction(federationID, txID string) *txtypes.Transaction {
	return c.federation(federationID).find(txID)
}

// Load warms an empty federation history from the store.
func (c *Cache) Load(federationID string) error {
	const op errors.Op = "history.Load"
	if federationID == "" {
		return errors.E(op, errors.Invalid, utils.ErrNoFederation)
	}
	if c.store == nil {
		return nil
	}

	h := c.federation(federationID)
	h.fetchMu.Lock()
	defer h.fetchMu.Unlock()

	if len(h.snapshot()) > 0 {
		return nil
	}

	txs, err := c.store.Read(federationID, 0, 0)
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	for _, tx := range txs {
		if tx.InitialNotes() != "" {
			h.notesDefaulted[tx.ID] = true
		}
	}
	h.set(MergeTransactions(nil, txs))
	log.Debugf("[%s] loaded %d saved transactions", federationID, len(txs))
	return nil
}

// Fetch requests a page of history from the backend and merges it into the
// cached list, returning the updated list. A failed request leaves the cache
// untouched.
func (c *Cache) Fetch(ctx context.Context, federationID string, opts FetchOptions) ([]*txtypes.Transaction, error) {
	const op errors.Op = "history.Fetch"
	if federationID == "" {
		return nil, errors.E(op, errors.Invalid, utils.ErrNoFederation)
	}
	if opts.Limit < 0 {
		return nil, errors.E(op, errors.Invalid, errors.Errorf("invalid limit %d", opts.Limit))
	}
	limit := opts.Limit
	if limit == 0 {
		limit = utils.DefaultPageSize
	}

	h := c.federation(federationID)
	h.fetchMu.Lock()
	defer h.fetchMu.Unlock()

	var startTime *int64
	if opts.PaginateFromLast {
		if oldest, ok := h.oldest(); ok {
			startTime = &oldest
		}
	}

	incoming, err := c.backend.ListTransactions(ctx, federationID, startTime, limit)
	if err != nil {
		log.Errorf("[%s] error fetching transactions: %v", federationID, err)
		return nil, errors.E(op, errors.IO, err)
	}

	var existing []*txtypes.Transaction
	if !opts.Refresh {
		existing = h.snapshot()
	}

	incoming, defaulted := defaultNotes(h, incoming)
	merged := MergeTransactions(existing, incoming)
	c.commit(federationID, h, merged)
	log.Debugf("[%s] fetched %d transactions, %d cached", federationID, len(incoming), len(merged))

	for _, tx := range defaulted {
		if err := c.backend.UpdateTransactionNotes(ctx, federationID, tx.ID, tx.Notes); err != nil {
			log.Warnf("[%s] error saving initial notes of %s: %v", federationID, tx.ID, err)
		}
	}

	return append([]*txtypes.Transaction(nil), merged...), nil
}

// defaultNotes gives records without notes the initial notes they were
// created with. Each id is defaulted at most once so notes a user later
// clears stay cleared. Modified records are copies.
func defaultNotes(h *federationHistory, incoming []*txtypes.Transaction) ([]*txtypes.Transaction, []*txtypes.Transaction) {
	var defaulted []*txtypes.Transaction
	out := make([]*txtypes.Transaction, 0, len(incoming))
	for _, tx := range incoming {
		if tx == nil {
			continue
		}
		initial := tx.InitialNotes()
		if initial == "" || h.notesDefaulted[tx.ID] {
			out = append(out, tx)
			continue
		}

		h.notesDefaulted[tx.ID] = true
		if tx.Notes != "" {
			out = append(out, tx)
			continue
		}
		updated := tx.Copy()
		updated.Notes = initial
		defaulted = append(defaulted, updated)
		out = append(out, updated)
	}
	return out, defaulted
}

// UpdateNotes saves new notes for a cached record through the backend and
// merges the updated record back into the cache.
func (c *Cache) UpdateNotes(ctx context.Context, federationID, txID, notes string) (*txtypes.Transaction, error) {
	const op errors.Op = "history.UpdateNotes"
	if federationID == "" {
		return nil, errors.E(op, errors.Invalid, utils.ErrNoFederation)
	}

	h := c.federation(federationID)
	h.fetchMu.Lock()
	defer h.fetchMu.Unlock()

	current := h.find(txID)
	if current == nil {
		return nil, errors.E(op, errors.NotExist, errors.Errorf("transaction %s not found", txID))
	}

	if err := c.backend.UpdateTransactionNotes(ctx, federationID, txID, notes); err != nil {
		log.Errorf("[%s] error updating notes of %s: %v", federationID, txID, err)
		return nil, errors.E(op, errors.IO, err)
	}

	updated := current.Copy()
	updated.Notes = notes
	h.notesDefaulted[txID] = true

	c.commit(federationID, h, MergeTransactions(h.snapshot(), []*txtypes.Transaction{updated}))
	c.publishNotesUpdated(federationID, txID)
	return updated, nil
}

// commit stores the merged list and notifies listeners. Callers hold
// h.fetchMu.
func (c *Cache) commit(federationID string, h *federationHistory, merged []*txtypes.Transaction) {
	if c.store != nil {
		if err := c.store.ReplaceAll(federationID, merged); err != nil {
			log.Warnf("[%s] error saving transactions: %v", federationID, err)
		}
	}
	h.set(merged)
	c.publishHistoryUpdated(federationID, len(merged))
}

// Clear drops the cached history of the federation.
func (c *Cache) Clear(federationID string) {
	c.mu.Lock()
	h, ok := c.federations[federationID]
	c.mu.Unlock()
	if !ok {
		return
	}

	h.fetchMu.Lock()
	defer h.fetchMu.Unlock()
	h.set(nil)
	h.notesDefaulted = make(map[string]bool)
}

// RefreshAll refreshes the history of several federations in parallel. A
// failing federation does not cancel the others. The first error is returned
// after every fetch has finished.
func (c *Cache) RefreshAll(ctx context.Context, federationIDs []string, limit int) error {
	var g errgroup.Group
	for _, id := range federationIDs {
		id := id
		g.Go(func() error {
			_, err := c.Fetch(ctx, id, FetchOptions{Limit: limit, Refresh: true})
			return err
		})
	}
	return g.Wait()
}
