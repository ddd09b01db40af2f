package ledger

import "sync"

// Store tracks which metadata-reference hashes have already been redeemed.
// A hash, once marked, stays marked forever; entries are never removed.
type Store interface {
	// Used reports whether the metadata hash has been redeemed.
	Used(hash [32]byte) (bool, error)

	// Mark records the metadata hash as redeemed. Returns
	// ErrDuplicateMetadata if it is already present. The presence check and
	// the insert happen atomically.
	Mark(hash [32]byte) error

	// Count returns the number of redeemed metadata hashes.
	Count() (uint64, error)
}

// MemLedger is an in-memory implementation of Store for testing.
type MemLedger struct {
	mu   sync.RWMutex
	used map[[32]byte]struct{}
}

// Compile-time interface check.
var _ Store = (*MemLedger)(nil)

// NewMemLedger creates a new in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{used: make(map[[32]byte]struct{})}
}

// Used reports whether the metadata hash has been redeemed.
func (l *MemLedger) Used(hash [32]byte) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.used[hash]
	return ok, nil
}

// Mark records the metadata hash as redeemed.
func (l *MemLedger) Mark(hash [32]byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.used[hash]; ok {
		return ErrDuplicateMetadata
	}
	l.used[hash] = struct{}{}
	return nil
}

// Count returns the number of redeemed metadata hashes.
func (l *MemLedger) Count() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.used)), nil
}
