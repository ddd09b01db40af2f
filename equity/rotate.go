package equity

import "fmt"

// Rotate advances the enabled-address cursor of the target payee by one,
// permanently disabling every address before the new cursor.
//
// The caller must be an address belonging to some other payee, and that
// address must itself still be enabled (at or after its own payee's cursor).
// A payee can never rotate its own group: rotation must be attested by an
// independent stakeholder in good standing, so a compromised or locked-out
// payee cannot unilaterally redirect its payouts.
func (r *Registry) Rotate(caller [20]byte, target int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target < 0 || target >= len(r.payees) {
		return fmt.Errorf("%w: %d", ErrBadPayeeIndex, target)
	}
	p := &r.payees[target]
	if p.Enabled+1 >= r.groupSize {
		return fmt.Errorf("%w: payee %d", ErrAllAddressesUsed, target)
	}

	callerPayee, callerPos := r.locate(caller)
	if callerPayee < 0 {
		return ErrCallerNotPayee
	}
	if callerPayee == target {
		return fmt.Errorf("%w: payee %d", ErrSelfRotation, target)
	}
	if callerPos < r.payees[callerPayee].Enabled {
		return fmt.Errorf("%w: payee %d, position %d", ErrCallerDisabled, callerPayee, callerPos)
	}

	p.Enabled++
	r.events = append(r.events, Event{
		Kind:     EventAddressRotated,
		Payee:    target,
		NewIndex: p.Enabled,
	})
	return nil
}

// locate scans all payee groups for addr and returns its payee index and
// position within the group, or (-1, -1). Linear in payees x group size;
// fine at the scales this registry serves.
func (r *Registry) locate(addr [20]byte) (int, int) {
	for i := range r.payees {
		for j, a := range r.payees[i].Addresses {
			if a == addr {
				return i, j
			}
		}
	}
	return -1, -1
}
