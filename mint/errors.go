package mint

import "errors"

var (
	// ErrUnauthorizedSigner indicates the voucher was not signed by the
	// designated authority. The signature itself may be cryptographically
	// valid; only the recovered identity is wrong.
	ErrUnauthorizedSigner = errors.New("mint: voucher not signed by designated authority")

	// ErrInsufficientPayment indicates the attached payment is below the
	// voucher's minimum price.
	ErrInsufficientPayment = errors.New("mint: payment below voucher minimum price")

	// ErrDuplicateMetadata indicates the voucher's metadata reference was
	// already redeemed, possibly under a different asset identifier.
	ErrDuplicateMetadata = errors.New("mint: metadata reference already redeemed")

	// ErrDuplicateAsset indicates the asset identifier was already issued.
	// Asset registry implementations must return this from Issue.
	ErrDuplicateAsset = errors.New("mint: asset identifier already issued")

	// ErrAssetNotFound indicates the asset identifier has not been issued.
	ErrAssetNotFound = errors.New("mint: asset not found")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("mint: nil parameter")
)
