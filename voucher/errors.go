package voucher

import "errors"

var (
	// ErrBadSignatureEncoding indicates the signature is not a valid compact
	// recoverable signature. Callers must treat this exactly like an
	// unauthorized signer: reject with no partial effects.
	ErrBadSignatureEncoding = errors.New("voucher: malformed signature")

	// ErrSigningFailed indicates the compact signature could not be produced.
	ErrSigningFailed = errors.New("voucher: signing failed")

	// ErrInvalidVoucherData indicates serialized voucher bytes are malformed.
	ErrInvalidVoucherData = errors.New("voucher: invalid voucher data")

	// ErrMetadataRefTooLong indicates the metadata reference exceeds the wire limit.
	ErrMetadataRefTooLong = errors.New("voucher: metadata reference too long")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("voucher: nil parameter")
)
