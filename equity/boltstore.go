package equity

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketEquityState = []byte("equity_state")
	keySnapshot       = []byte("snapshot")
)

// BoltStore persists registry snapshots in a bbolt database so accounting
// state survives process restarts.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("equity: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("equity: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEquityState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("equity: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// SaveSnapshot serializes and stores the snapshot, replacing any previous one.
func (s *BoltStore) SaveSnapshot(snap *Snapshot) error {
	data, err := SerializeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketEquityState).Put(keySnapshot, data); err != nil {
			return fmt.Errorf("equity: put snapshot: %w", err)
		}
		return nil
	})
}

// LoadSnapshot retrieves and decodes the stored snapshot.
func (s *BoltStore) LoadSnapshot() (*Snapshot, error) {
	var snap *Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEquityState).Get(keySnapshot)
		if data == nil {
			return ErrSnapshotNotFound
		}
		var derr error
		snap, derr = DeserializeSnapshot(data)
		return derr
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
