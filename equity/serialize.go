package equity

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Snapshot is the serializable accounting state of a Registry. Events are
// in-process observability and are not part of a snapshot.
type Snapshot struct {
	GroupSize     int
	TotalShares   uint64
	TotalReleased uint64
	Held          uint64
	Payees        []Payee
}

const (
	snapshotHeaderSize = 28 // total_shares(8) + total_released(8) + held(8) + group_size(2) + num_payees(2)
	payeeFixedSize     = 18 // shares(8) + released(8) + enabled(2), followed by group_size*20 address bytes
	addressSize        = 20
)

// SerializeSnapshot encodes a snapshot to binary format.
func SerializeSnapshot(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: snapshot", ErrNilParam)
	}
	if s.GroupSize < MinGroupSize || s.GroupSize > math.MaxUint16 {
		return nil, fmt.Errorf("%w: group size %d", ErrInvalidSnapshotData, s.GroupSize)
	}
	if len(s.Payees) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d payees", ErrInvalidSnapshotData, len(s.Payees))
	}

	payeeSize := payeeFixedSize + s.GroupSize*addressSize
	buf := make([]byte, snapshotHeaderSize+payeeSize*len(s.Payees))
	offset := 0

	binary.BigEndian.PutUint64(buf[offset:offset+8], s.TotalShares)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:offset+8], s.TotalReleased)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:offset+8], s.Held)
	offset += 8
	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(s.GroupSize))
	offset += 2
	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(s.Payees)))
	offset += 2

	for i := range s.Payees {
		p := &s.Payees[i]
		if len(p.Addresses) != s.GroupSize {
			return nil, fmt.Errorf("%w: payee %d has %d addresses, want %d",
				ErrInvalidSnapshotData, i, len(p.Addresses), s.GroupSize)
		}
		if p.Enabled < 0 || p.Enabled >= s.GroupSize {
			return nil, fmt.Errorf("%w: payee %d enabled index %d", ErrInvalidSnapshotData, i, p.Enabled)
		}

		binary.BigEndian.PutUint64(buf[offset:offset+8], p.Shares)
		offset += 8
		binary.BigEndian.PutUint64(buf[offset:offset+8], p.Released)
		offset += 8
		binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(p.Enabled))
		offset += 2
		for _, addr := range p.Addresses {
			copy(buf[offset:offset+addressSize], addr[:])
			offset += addressSize
		}
	}

	return buf, nil
}

// DeserializeSnapshot decodes binary data into a Snapshot.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) < snapshotHeaderSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidSnapshotData, len(data))
	}
	offset := 0

	s := &Snapshot{}
	s.TotalShares = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	s.TotalReleased = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	s.Held = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8
	s.GroupSize = int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2
	numPayees := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2

	if s.GroupSize < MinGroupSize {
		return nil, fmt.Errorf("%w: group size %d", ErrInvalidSnapshotData, s.GroupSize)
	}

	payeeSize := payeeFixedSize + s.GroupSize*addressSize
	if len(data) != snapshotHeaderSize+payeeSize*numPayees {
		return nil, fmt.Errorf("%w: expected %d bytes for %d payees, got %d",
			ErrInvalidSnapshotData, snapshotHeaderSize+payeeSize*numPayees, numPayees, len(data))
	}

	s.Payees = make([]Payee, numPayees)
	for i := 0; i < numPayees; i++ {
		p := &s.Payees[i]
		p.Shares = binary.BigEndian.Uint64(data[offset : offset+8])
		offset += 8
		p.Released = binary.BigEndian.Uint64(data[offset : offset+8])
		offset += 8
		p.Enabled = int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if p.Enabled >= s.GroupSize {
			return nil, fmt.Errorf("%w: payee %d enabled index %d", ErrInvalidSnapshotData, i, p.Enabled)
		}

		p.Addresses = make([][20]byte, s.GroupSize)
		for j := 0; j < s.GroupSize; j++ {
			copy(p.Addresses[j][:], data[offset:offset+addressSize])
			offset += addressSize
		}
	}

	return s, nil
}

// Snapshot captures the registry's current accounting state.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &Snapshot{
		GroupSize:     r.groupSize,
		TotalShares:   r.totalShares,
		TotalReleased: r.totalReleased,
		Held:          r.held,
		Payees:        make([]Payee, len(r.payees)),
	}
	for i := range r.payees {
		p := r.payees[i]
		addrs := make([][20]byte, len(p.Addresses))
		copy(addrs, p.Addresses)
		p.Addresses = addrs
		s.Payees[i] = p
	}
	return s
}

// RestoreRegistry rebuilds a Registry from a snapshot, re-attaching a
// transport. The snapshot must come from SerializeSnapshot/Snapshot; beyond
// structural checks no re-validation of payee data is performed.
func RestoreRegistry(s *Snapshot, transport Transport) (*Registry, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: snapshot", ErrNilParam)
	}
	if transport == nil {
		return nil, fmt.Errorf("%w: transport", ErrNilParam)
	}
	if len(s.Payees) == 0 {
		return nil, ErrNoPayees
	}
	if s.GroupSize < MinGroupSize {
		return nil, fmt.Errorf("%w: group size %d", ErrInvalidSnapshotData, s.GroupSize)
	}

	r := &Registry{
		groupSize:     s.GroupSize,
		payees:        make([]Payee, len(s.Payees)),
		totalShares:   s.TotalShares,
		totalReleased: s.TotalReleased,
		held:          s.Held,
		transport:     transport,
	}
	for i := range s.Payees {
		p := s.Payees[i]
		if len(p.Addresses) != s.GroupSize {
			return nil, fmt.Errorf("%w: payee %d has %d addresses, want %d",
				ErrInvalidSnapshotData, i, len(p.Addresses), s.GroupSize)
		}
		addrs := make([][20]byte, s.GroupSize)
		copy(addrs, p.Addresses)
		p.Addresses = addrs
		r.payees[i] = p
	}
	return r, nil
}
