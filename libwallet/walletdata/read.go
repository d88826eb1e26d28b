package walletdata

import (
	"github.com/asdine/storm"
	"github.com/asdine/storm/q"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
)

// storedTransaction is a history record persisted under its federation's
// node. Position is the record's index in the cached, newest first, history
// list so that records with equal timestamps reload in the same order.
type storedTransaction struct {
	ID        string `storm:"id"`
	Position  int    `storm:"index"`
	CreatedAt int64  `storm:"index"`
	Kind      string `storm:"index"`
	Tx        *txtypes.Transaction
}

func (db *DB) federation(federationID string) storm.Node {
	return db.walletDataDB.From(federationID)
}

// Read returns up to `limit` transactions of the federation starting from
// `offset`, in cached history order. A zero limit returns every transaction.
func (db *DB) Read(federationID string, offset, limit int) ([]*txtypes.Transaction, error) {
	query := db.federation(federationID).Select(q.True()).OrderBy("Position")
	if offset > 0 {
		query = query.Skip(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []storedTransaction
	err := query.Find(&records)
	if err != nil && err != storm.ErrNotFound {
		return nil, err
	}

	txs := make([]*txtypes.Transaction, 0, len(records))
	for _, rec := range records {
		if rec.Tx != nil {
			txs = append(txs, rec.Tx)
		}
	}
	return txs, nil
}

// ReadKind returns the federation's transactions of a single kind, newest
// first.
func (db *DB) ReadKind(federationID string, kind txtypes.Kind) ([]*txtypes.Transaction, error) {
	var records []storedTransaction
	err := db.federation(federationID).Select(q.Eq("Kind", string(kind))).OrderBy("Position").Find(&records)
	if err != nil && err != storm.ErrNotFound {
		return nil, err
	}

	txs := make([]*txtypes.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, rec.Tx)
	}
	return txs, nil
}

// FindOne returns the federation's transaction with the given id.
func (db *DB) FindOne(federationID, txID string) (*txtypes.Transaction, error) {
	var rec storedTransaction
	if err := db.federation(federationID).One("ID", txID, &rec); err != nil {
		return nil, err
	}
	return rec.Tx, nil
}

// Count returns the number of transactions saved for the federation.
func (db *DB) Count(federationID string) (int, error) {
	count, err := db.federation(federationID).Count(&storedTransaction{})
	if err != nil && err != storm.ErrNotFound {
		return -1, err
	}
	return count, nil
}
