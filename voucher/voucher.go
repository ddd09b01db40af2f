package voucher

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Voucher authorizes the creation of one specific asset at a minimum price.
// It is produced and signed offline by the issuing authority and submitted
// by a requester together with payment; it is never persisted.
type Voucher struct {
	AssetID     uint64 // Asset identifier to issue
	MinPrice    uint64 // Minimum acceptable payment, smallest currency unit
	MetadataRef string // Opaque metadata reference (e.g. an ipfs:// URI)
	Signature   []byte // Compact recoverable signature over the typed digest
}

const (
	voucherFixedSize = 22 // asset_id(8) + min_price(8) + ref_len(4) + sig_len(2)

	// MaxMetadataRefLen bounds the metadata reference on the wire.
	MaxMetadataRefLen = math.MaxUint32
)

// SerializeVoucher encodes a voucher to binary format:
// asset_id(8) + min_price(8) + ref_len(4) + ref + sig_len(2) + sig.
func SerializeVoucher(v *Voucher) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: voucher", ErrNilParam)
	}
	if len(v.MetadataRef) > MaxMetadataRefLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMetadataRefTooLong, len(v.MetadataRef))
	}
	if len(v.Signature) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: signature of %d bytes", ErrInvalidVoucherData, len(v.Signature))
	}

	buf := make([]byte, voucherFixedSize+len(v.MetadataRef)+len(v.Signature))
	offset := 0

	binary.BigEndian.PutUint64(buf[offset:offset+8], v.AssetID)
	offset += 8

	binary.BigEndian.PutUint64(buf[offset:offset+8], v.MinPrice)
	offset += 8

	binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(len(v.MetadataRef)))
	offset += 4
	copy(buf[offset:], v.MetadataRef)
	offset += len(v.MetadataRef)

	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(v.Signature)))
	offset += 2
	copy(buf[offset:], v.Signature)

	return buf, nil
}

// DeserializeVoucher decodes binary data into a Voucher.
func DeserializeVoucher(data []byte) (*Voucher, error) {
	if len(data) < voucherFixedSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidVoucherData, len(data))
	}
	offset := 0

	v := &Voucher{}
	v.AssetID = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	v.MinPrice = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	refLen := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4
	if len(data) < offset+refLen+2 {
		return nil, fmt.Errorf("%w: truncated metadata reference", ErrInvalidVoucherData)
	}
	v.MetadataRef = string(data[offset : offset+refLen])
	offset += refLen

	sigLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2
	if len(data) != offset+sigLen {
		return nil, fmt.Errorf("%w: expected %d bytes for signature, got %d",
			ErrInvalidVoucherData, sigLen, len(data)-offset)
	}
	if sigLen > 0 {
		v.Signature = make([]byte, sigLen)
		copy(v.Signature, data[offset:])
	}

	return v, nil
}
