package ledger

import "errors"

var (
	// ErrDuplicateMetadata indicates the metadata hash was already marked redeemed.
	ErrDuplicateMetadata = errors.New("ledger: metadata reference already redeemed")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("ledger: nil parameter")
)
