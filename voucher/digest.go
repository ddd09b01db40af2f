package voucher

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// The typed digest binds a voucher's payload to one issuer deployment so a
// signature cannot be replayed against a different issuer name, protocol
// version, network, or authority instance. The scheme hashes a fixed-layout
// encoding of type tag + field values with SHA3-256, keeping the typed-data
// domain distinct from the double-SHA256 used at the signing layer.

// Domain identifies one issuer deployment.
type Domain struct {
	Name     string   // Issuer name
	Version  string   // Protocol version string
	Network  uint64   // Chain/network identifier
	Instance [20]byte // Address hash of the verifying instance
}

var (
	domainTypeTag  = sha3.Sum256([]byte("MintDomain(string name,string version,uint64 network,bytes20 instance)"))
	voucherTypeTag = sha3.Sum256([]byte("Voucher(uint64 assetId,uint64 minPrice,string metadataRef)"))
)

const (
	domainEncSize = 32 + 32 + 32 + 8 + 20 // type_tag + name_hash + version_hash + network(8) + instance(20)
	structEncSize = 32 + 8 + 8 + 32       // type_tag + asset_id(8) + min_price(8) + ref_hash
	digestEncSize = 2 + 32 + 32           // prefix(2) + domain_separator + struct_hash
)

// DomainSeparator hashes the domain tuple.
func DomainSeparator(d Domain) [32]byte {
	nameHash := sha3.Sum256([]byte(d.Name))
	versionHash := sha3.Sum256([]byte(d.Version))

	buf := make([]byte, domainEncSize)
	offset := 0
	copy(buf[offset:offset+32], domainTypeTag[:])
	offset += 32
	copy(buf[offset:offset+32], nameHash[:])
	offset += 32
	copy(buf[offset:offset+32], versionHash[:])
	offset += 32
	binary.BigEndian.PutUint64(buf[offset:offset+8], d.Network)
	offset += 8
	copy(buf[offset:offset+20], d.Instance[:])

	return sha3.Sum256(buf)
}

// StructHash hashes the voucher's three payload fields. The signature field
// is excluded: it is what signs this hash.
func StructHash(v *Voucher) [32]byte {
	refHash := sha3.Sum256([]byte(v.MetadataRef))

	buf := make([]byte, structEncSize)
	offset := 0
	copy(buf[offset:offset+32], voucherTypeTag[:])
	offset += 32
	binary.BigEndian.PutUint64(buf[offset:offset+8], v.AssetID)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:offset+8], v.MinPrice)
	offset += 8
	copy(buf[offset:offset+32], refHash[:])

	return sha3.Sum256(buf)
}

// Digest computes the signing digest for a voucher under a domain.
// The 0x19 0x01 prefix marks the bytes as structured data that can never be
// a valid serialized transaction.
func Digest(d Domain, v *Voucher) [32]byte {
	sep := DomainSeparator(d)
	sh := StructHash(v)

	buf := make([]byte, digestEncSize)
	buf[0] = 0x19
	buf[1] = 0x01
	copy(buf[2:34], sep[:])
	copy(buf[34:66], sh[:])

	return sha3.Sum256(buf)
}
