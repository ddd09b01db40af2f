package equity

import (
	"errors"
	"sync"
)

// errDestinationRefused is what MemTransport returns for refused destinations.
var errDestinationRefused = errors.New("equity: destination refused funds")

// MemTransport is an in-memory Transport for testing. It credits balances
// per destination and can be told to refuse specific destinations.
type MemTransport struct {
	mu        sync.Mutex
	balances  map[[20]byte]uint64
	refused   map[[20]byte]bool
	transfers []TransferRecord
}

// TransferRecord is one successful transfer seen by a MemTransport.
type TransferRecord struct {
	Dest   [20]byte
	Amount uint64
}

// Compile-time interface check.
var _ Transport = (*MemTransport)(nil)

// NewMemTransport creates an empty in-memory transport.
func NewMemTransport() *MemTransport {
	return &MemTransport{
		balances: make(map[[20]byte]uint64),
		refused:  make(map[[20]byte]bool),
	}
}

// Refuse makes subsequent transfers to dest fail.
func (t *MemTransport) Refuse(dest [20]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refused[dest] = true
}

// Accept re-enables transfers to dest.
func (t *MemTransport) Accept(dest [20]byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.refused, dest)
}

// Transfer credits amount to dest, or fails if dest is set to refuse.
func (t *MemTransport) Transfer(dest [20]byte, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.refused[dest] {
		return errDestinationRefused
	}
	t.balances[dest] += amount
	t.transfers = append(t.transfers, TransferRecord{Dest: dest, Amount: amount})
	return nil
}

// BalanceOf returns the total credited to dest.
func (t *MemTransport) BalanceOf(dest [20]byte) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[dest]
}

// Transfers returns a copy of all successful transfers in order.
func (t *MemTransport) Transfers() []TransferRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TransferRecord, len(t.transfers))
	copy(out, t.transfers)
	return out
}
