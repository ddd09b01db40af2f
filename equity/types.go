package equity

// MinGroupSize is the smallest allowed number of backup addresses per payee.
// With fewer than two there is nothing to rotate to.
const MinGroupSize = 2

// Payee is one stakeholder: an ordered group of backup receiving addresses,
// a share weight, the cumulative amount released to it, and the index of the
// currently enabled address. The enabled index only ever advances; addresses
// before it are permanently disabled.
type Payee struct {
	Addresses [][20]byte // P2PKH address hashes, fixed group size
	Shares    uint64     // Proportional entitlement weight
	Released  uint64     // Cumulative amount released, monotonic
	Enabled   int        // Index of the enabled address, monotonic
}

// Transport moves released funds to a destination address. The destination
// may refuse, in which case the release that triggered the transfer rolls
// back its accounting.
type Transport interface {
	Transfer(dest [20]byte, amount uint64) error
}

// EventKind discriminates recorded registry events.
type EventKind uint8

const (
	EventPayeeAdded EventKind = iota
	EventAddressRotated
	EventPaymentReleased
	EventFundsReceived
)

// Event is one recorded observation. Field use depends on Kind:
//   - EventPayeeAdded: Payee, Amount (shares)
//   - EventAddressRotated: Payee, NewIndex
//   - EventPaymentReleased: Payee, Address (destination), Amount
//   - EventFundsReceived: Address (sender), Amount; Payee is -1
type Event struct {
	Kind     EventKind
	Payee    int
	Address  [20]byte
	Amount   uint64
	NewIndex int
}
