package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketUsedMetadata = []byte("used_metadata")

// BoltLedger is a bbolt-backed implementation of Store. The duplicate check
// and the insert run inside one write transaction, so check-and-mark is
// atomic even across processes sharing the database file.
type BoltLedger struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltLedger)(nil)

// OpenBoltLedger opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLedger(dbPath string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUsedMetadata)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create bucket: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error { return l.db.Close() }

// Used reports whether the metadata hash has been redeemed.
func (l *BoltLedger) Used(hash [32]byte) (bool, error) {
	var used bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		used = tx.Bucket(bucketUsedMetadata).Get(hash[:]) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ledger: lookup metadata hash: %w", err)
	}
	return used, nil
}

// Mark records the metadata hash as redeemed.
func (l *BoltLedger) Mark(hash [32]byte) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsedMetadata)
		if b.Get(hash[:]) != nil {
			return ErrDuplicateMetadata
		}
		if err := b.Put(hash[:], []byte{}); err != nil {
			return fmt.Errorf("ledger: put metadata hash: %w", err)
		}
		return nil
	})
}

// Count returns the number of redeemed metadata hashes.
func (l *BoltLedger) Count() (uint64, error) {
	var count uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketUsedMetadata).Stats().KeyN)
		return nil
	})
	return count, err
}
