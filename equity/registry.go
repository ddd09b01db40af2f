package equity

import (
	"fmt"
	"sync"
)

// Registry is the immutable payee table plus the mutable accounting state of
// the distribution scheme. Payees and shares are fixed at construction; only
// released amounts, the enabled-address cursors, and the held balance change
// afterward. One RWMutex serializes every mutating operation against every
// other operation on the same instance.
type Registry struct {
	mu            sync.RWMutex
	groupSize     int
	payees        []Payee
	totalShares   uint64
	totalReleased uint64
	held          uint64
	transport     Transport
	events        []Event
}

// NewRegistry constructs the payee table. groups[i] is the ordered backup
// address group for payee i and shares[i] its weight. All groups must have
// the same length (the group size, at least MinGroupSize). Payee indexes are
// assigned by position.
func NewRegistry(groups [][][20]byte, shares []uint64, transport Transport) (*Registry, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport", ErrNilParam)
	}
	if len(groups) != len(shares) {
		return nil, fmt.Errorf("%w: %d groups, %d shares", ErrLengthMismatch, len(groups), len(shares))
	}
	if len(groups) == 0 {
		return nil, ErrNoPayees
	}

	groupSize := len(groups[0])
	if groupSize < MinGroupSize {
		return nil, fmt.Errorf("%w: group 0 has %d addresses, need at least %d",
			ErrBadAddressCount, groupSize, MinGroupSize)
	}
	for i, g := range groups {
		if len(g) != groupSize {
			return nil, fmt.Errorf("%w: group %d has %d addresses, want %d",
				ErrBadAddressCount, i, len(g), groupSize)
		}
	}

	var zero [20]byte
	for i, g := range groups {
		for j, addr := range g {
			if addr == zero {
				return nil, fmt.Errorf("%w: group %d, position %d", ErrZeroAddress, i, j)
			}
		}
	}

	for i, s := range shares {
		if s == 0 {
			return nil, fmt.Errorf("%w: payee %d", ErrZeroShares, i)
		}
	}

	r := &Registry{
		groupSize: groupSize,
		payees:    make([]Payee, len(groups)),
		transport: transport,
	}
	for i := range groups {
		addrs := make([][20]byte, groupSize)
		copy(addrs, groups[i])
		r.payees[i] = Payee{Addresses: addrs, Shares: shares[i]}
		r.totalShares += shares[i]
		r.events = append(r.events, Event{Kind: EventPayeeAdded, Payee: i, Amount: shares[i]})
	}

	return r, nil
}

// GroupSize returns the number of backup addresses per payee.
func (r *Registry) GroupSize() int { return r.groupSize }

// PayeeCount returns the number of payees.
func (r *Registry) PayeeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.payees)
}

// TotalShares returns the sum of all payee shares, fixed at construction.
func (r *Registry) TotalShares() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalShares
}

// TotalReleased returns the cumulative amount released to all payees.
func (r *Registry) TotalReleased() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalReleased
}

// Held returns the balance currently held for future distribution.
func (r *Registry) Held() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.held
}

// TotalReceived returns the all-time total inflow: the held balance plus
// everything ever released.
func (r *Registry) TotalReceived() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.held + r.totalReleased
}

// SharesOf returns the share weight of the payee at index i.
func (r *Registry) SharesOf(i int) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.payees) {
		return 0, fmt.Errorf("%w: %d", ErrBadPayeeIndex, i)
	}
	return r.payees[i].Shares, nil
}

// ReleasedOf returns the cumulative amount released to the payee at index i.
func (r *Registry) ReleasedOf(i int) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.payees) {
		return 0, fmt.Errorf("%w: %d", ErrBadPayeeIndex, i)
	}
	return r.payees[i].Released, nil
}

// EnabledIndex returns the enabled-address cursor for the payee at index i.
func (r *Registry) EnabledIndex(i int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.payees) {
		return 0, fmt.Errorf("%w: %d", ErrBadPayeeIndex, i)
	}
	return r.payees[i].Enabled, nil
}

// EnabledAddress returns the currently enabled receiving address for the
// payee at index i.
func (r *Registry) EnabledAddress(i int) ([20]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.payees) {
		return [20]byte{}, fmt.Errorf("%w: %d", ErrBadPayeeIndex, i)
	}
	p := &r.payees[i]
	return p.Addresses[p.Enabled], nil
}

// Owed returns the amount a release for payee i would pay out right now.
func (r *Registry) Owed(i int) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.payees) {
		return 0, fmt.Errorf("%w: %d", ErrBadPayeeIndex, i)
	}
	return r.owedLocked(&r.payees[i]), nil
}

// owedLocked computes floor(totalReceived * shares / totalShares) - released.
// Callers must hold at least a read lock.
func (r *Registry) owedLocked(p *Payee) uint64 {
	totalReceived := r.held + r.totalReleased
	entitled := totalReceived * p.Shares / r.totalShares
	if entitled <= p.Released {
		return 0
	}
	return entitled - p.Released
}

// Receive records an incoming transfer. Intake is unconditional: it always
// succeeds regardless of sender.
func (r *Registry) Receive(sender [20]byte, amount uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held += amount
	r.events = append(r.events, Event{
		Kind:    EventFundsReceived,
		Payee:   -1,
		Address: sender,
		Amount:  amount,
	})
}

// Events returns a copy of all recorded events in order.
func (r *Registry) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
