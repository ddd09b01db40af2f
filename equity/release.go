package equity

import "fmt"

// Release pays out everything currently owed to the payee at payeeIndex,
// sending it to that payee's currently enabled address.
//
// The owed amount is floor(totalReceived * shares / totalShares) minus what
// the payee has already received. Truncating division means the sum of all
// owed amounts at any snapshot can fall short of totalReceived by up to
// payeeCount-1 units; that remainder stays held as rounding dust.
//
// Accounting is updated before the transfer so a re-entrant call observes
// the payee as already paid. If the destination refuses the funds, the
// update is rolled back and the call fails with ErrTransferRejected.
//
// Returns the amount transferred.
func (r *Registry) Release(payeeIndex int) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payeeIndex < 0 || payeeIndex >= len(r.payees) {
		return 0, fmt.Errorf("%w: %d", ErrBadPayeeIndex, payeeIndex)
	}
	p := &r.payees[payeeIndex]
	if p.Shares == 0 {
		// Unreachable after construction validation.
		return 0, fmt.Errorf("%w: payee %d", ErrZeroShares, payeeIndex)
	}

	owed := r.owedLocked(p)
	if owed == 0 {
		return 0, fmt.Errorf("%w: payee %d", ErrNothingDue, payeeIndex)
	}

	// Destination is resolved at release time: after a rotation the newly
	// enabled address receives the entire owed amount, including whatever
	// accrued while an older address was enabled.
	dest := p.Addresses[p.Enabled]

	p.Released += owed
	r.totalReleased += owed
	r.held -= owed

	if err := r.transport.Transfer(dest, owed); err != nil {
		p.Released -= owed
		r.totalReleased -= owed
		r.held += owed
		return 0, fmt.Errorf("%w: %w", ErrTransferRejected, err)
	}

	r.events = append(r.events, Event{
		Kind:    EventPaymentReleased,
		Payee:   payeeIndex,
		Address: dest,
		Amount:  owed,
	})
	return owed, nil
}
