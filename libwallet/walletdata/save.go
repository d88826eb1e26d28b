package walletdata

import (
	"time"

	"decred.org/dcrwallet/v2/errors"
	"github.com/asdine/storm"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	bolt "go.etcd.io/bbolt"
)

const KeyLastSaved = "LastSaved"

// ReplaceAll atomically replaces the federation's saved history with txs,
// which must be in history order.
func (db *DB) ReplaceAll(federationID string, txs []*txtypes.Transaction) error {
	const op errors.Op = "walletdata.ReplaceAll"

	tx, err := db.federation(federationID).Begin(true)
	if err != nil {
		return errors.E(op, errors.IO, err)
	}
	defer tx.Rollback()

	err = tx.Drop(&storedTransaction{})
	if err != nil && err != bolt.ErrBucketNotFound && err != storm.ErrNotFound {
		return errors.E(op, errors.IO, err)
	}

	for i, t := range txs {
		rec := &storedTransaction{
			ID:        t.ID,
			Position:  i,
			CreatedAt: t.CreatedAt,
			Kind:      string(t.Kind),
			Tx:        t,
		}
		if err = tx.Save(rec); err != nil {
			return errors.E(op, errors.IO, errors.Errorf("error saving transaction %s: %v", t.ID, err))
		}
	}

	if err = tx.Set(TxBucketName, KeyLastSaved, time.Now().Unix()); err != nil {
		return errors.E(op, errors.IO, err)
	}
	return tx.Commit()
}

// LastSaved returns the unix time the federation's history was last saved,
// or zero if it never was.
func (db *DB) LastSaved(federationID string) (int64, error) {
	var lastSaved int64
	err := db.federation(federationID).Get(TxBucketName, KeyLastSaved, &lastSaved)
	if err != nil && err != storm.ErrNotFound {
		return 0, err
	}
	return lastSaved, nil
}

// ClearSavedTransactions deletes the federation's saved history.
func (db *DB) ClearSavedTransactions(federationID string) error {
	node := db.federation(federationID)
	err := node.Drop(&storedTransaction{})
	if err != nil && err != bolt.ErrBucketNotFound && err != storm.ErrNotFound {
		return err
	}

	err = node.Delete(TxBucketName, KeyLastSaved)
	if err != nil && err != storm.ErrNotFound && err != bolt.ErrBucketNotFound {
		return err
	}
	return nil
}
