package walletdata

import (
	"fmt"
	"os"
	"time"

	"decred.org/dcrwallet/v2/errors"
	"github.com/asdine/storm"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	bolt "go.etcd.io/bbolt"
)

const (
	DbName = "walletData.db"

	TxBucketName = "TxIndexInfo"
	KeyDbVersion = "DbVersion"

	// TxDbVersion is necessary to force re-indexing if changes are made to the structure of data being stored.
	// Increment this version number if db structure changes such that client apps need to re-fetch.
	TxDbVersion uint32 = 1

	dbLockTimeout = time.Second
)

type DB struct {
	walletDataDB *storm.DB
	dbPath       string
	Close        func() error
}

// Initialize opens the existing storm db at `dbPath`
// and checks the database version for compatibility.
// If there is a version mismatch or the db does not exist at `dbPath`,
// a new db is created and the current db version number saved to the db.
func Initialize(dbPath string) (*DB, error) {
	walletDataDB, err := openOrCreateDB(dbPath)
	if err != nil {
		return nil, err
	}

	walletDataDB, err = ensureTxDatabaseVersion(walletDataDB, dbPath)
	if err != nil {
		return nil, err
	}

	return &DB{
		walletDataDB: walletDataDB,
		dbPath:       dbPath,
		Close:        walletDataDB.Close,
	}, nil
}

func openOrCreateDB(dbPath string) (*storm.DB, error) {
	var isNewDbFile bool

	// first check if db file exists at dbPath, if not we'll need to create it and set the db version
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			isNewDbFile = true
		} else {
			return nil, fmt.Errorf("error checking wallet data database file: %s", err.Error())
		}
	}

	walletDataDB, err := storm.Open(dbPath, storm.BoltOptions(0600, &bolt.Options{Timeout: dbLockTimeout}))
	if err != nil {
		switch err {
		case bolt.ErrTimeout:
			// timeout error occurs if storm fails to acquire a lock on the database file
			return nil, errors.New(utils.ErrBackendDatabaseInUse)
		default:
			return nil, fmt.Errorf("error opening wallet data database: %s", err.Error())
		}
	}

	if isNewDbFile {
		err = walletDataDB.Set(TxBucketName, KeyDbVersion, TxDbVersion)
		if err != nil {
			walletDataDB.Close()
			os.RemoveAll(dbPath)
			return nil, fmt.Errorf("error initializing wallet data db: %s", err.Error())
		}
	}

	return walletDataDB, nil
}

// ensureTxDatabaseVersion checks the version of the existing db against `TxDbVersion`.
// If there's a difference, the current wallet data db file is deleted and a new one created.
// Cached history is re-fetched from the backend, so nothing is lost.
func ensureTxDatabaseVersion(walletDataDB *storm.DB, dbPath string) (*storm.DB, error) {
	var currentDbVersion uint32
	err := walletDataDB.Get(TxBucketName, KeyDbVersion, &currentDbVersion)
	if err != nil && err != storm.ErrNotFound {
		return nil, fmt.Errorf("error checking wallet data database version: %s", err.Error())
	}

	if currentDbVersion == TxDbVersion {
		return walletDataDB, nil
	}

	log.Infof("Wallet data database version %d is outdated, recreating at version %d", currentDbVersion, TxDbVersion)
	if err = walletDataDB.Close(); err != nil {
		return nil, fmt.Errorf("error closing outdated wallet data database: %s", err.Error())
	}
	if err = os.RemoveAll(dbPath); err != nil {
		return nil, fmt.Errorf("error deleting outdated wallet data database: %s", err.Error())
	}
	return openOrCreateDB(dbPath)
}
