package equity

import "errors"

var (
	// ErrLengthMismatch indicates the address-group list and share list differ in length.
	ErrLengthMismatch = errors.New("equity: address group count does not match share count")

	// ErrNoPayees indicates construction was attempted with an empty payee list.
	ErrNoPayees = errors.New("equity: no payees")

	// ErrBadAddressCount indicates an address group does not have the fixed group size.
	ErrBadAddressCount = errors.New("equity: bad address count in group")

	// ErrZeroAddress indicates an address group contains the zero address.
	ErrZeroAddress = errors.New("equity: zero address in group")

	// ErrZeroShares indicates a payee has a zero share count.
	ErrZeroShares = errors.New("equity: zero share count")

	// ErrBadPayeeIndex indicates the payee index is out of range.
	ErrBadPayeeIndex = errors.New("equity: payee index out of range")

	// ErrAllAddressesUsed indicates the payee's enabled-address cursor cannot
	// advance further: every backup address has been consumed.
	ErrAllAddressesUsed = errors.New("equity: all backup addresses used")

	// ErrCallerNotPayee indicates the rotating caller belongs to no payee.
	ErrCallerNotPayee = errors.New("equity: caller is not a payee address")

	// ErrSelfRotation indicates a payee tried to rotate its own address group.
	ErrSelfRotation = errors.New("equity: payee cannot rotate its own addresses")

	// ErrCallerDisabled indicates the caller's address was itself rotated
	// away and has lost the right to trigger rotations.
	ErrCallerDisabled = errors.New("equity: caller address is disabled")

	// ErrNothingDue indicates the payee is not owed any funds right now.
	ErrNothingDue = errors.New("equity: nothing due to payee")

	// ErrTransferRejected indicates the destination refused the funds; the
	// accounting update for the call was rolled back.
	ErrTransferRejected = errors.New("equity: transfer rejected by destination")

	// ErrInvalidSnapshotData indicates serialized snapshot bytes are malformed.
	ErrInvalidSnapshotData = errors.New("equity: invalid snapshot data")

	// ErrSnapshotNotFound indicates no snapshot has been saved.
	ErrSnapshotNotFound = errors.New("equity: snapshot not found")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("equity: nil parameter")
)
