package voucher

import (
	"fmt"

	bsm "github.com/bsv-blockchain/go-sdk/compat/bsm"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// SignatureSize is the length of a compact recoverable signature:
// 1 recovery header byte + 32-byte R + 32-byte S.
const SignatureSize = 65

// AddressOf returns the 20-byte P2PKH hash for a public key.
func AddressOf(pub *ec.PublicKey) [20]byte {
	var addr [20]byte
	copy(addr[:], bsvhash.Hash160(pub.Compressed()))
	return addr
}

// MetadataHash returns the content hash that keys a metadata reference in
// the redemption ledger.
func MetadataHash(ref string) [32]byte {
	var h [32]byte
	copy(h[:], bsvhash.Sha256([]byte(ref)))
	return h
}

// Sign produces a compact recoverable signature over the voucher's typed
// digest. Only the offline voucher tool and tests sign; the issuing side
// verifies and never holds the authority key.
func Sign(d Domain, v *Voucher, priv *ec.PrivateKey) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: voucher", ErrNilParam)
	}
	if priv == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilParam)
	}

	digest := Digest(d, v)
	sig, err := bsm.SignMessage(priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig, nil
}

// RecoverSigner recovers the address hash whose key produced sig over the
// voucher's typed digest under domain d. A signature that is not 65 bytes,
// or whose recovery header is invalid, fails with ErrBadSignatureEncoding.
func RecoverSigner(d Domain, v *Voucher, sig []byte) ([20]byte, error) {
	var zero [20]byte
	if v == nil {
		return zero, fmt.Errorf("%w: voucher", ErrNilParam)
	}
	if len(sig) != SignatureSize {
		return zero, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrBadSignatureEncoding, SignatureSize, len(sig))
	}

	digest := Digest(d, v)
	pub, _, err := bsm.PubKeyFromSignature(sig, digest[:])
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBadSignatureEncoding, err)
	}
	return AddressOf(pub), nil
}
