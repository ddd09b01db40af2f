package mint

import (
	"fmt"
	"sync"

	"github.com/mintforge/libmintforge-go/ledger"
	"github.com/mintforge/libmintforge-go/voucher"
)

// Authority redeems signed vouchers. Each redemption is single-shot: it
// either issues the asset and records the metadata reference as used, or it
// fails with no state change at all. All mutating work runs under one mutex,
// so redemptions on the same Authority never interleave.
type Authority struct {
	mu        sync.Mutex
	domain    voucher.Domain
	authority [20]byte
	ledger    ledger.Store
	assets    AssetRegistry
	receipts  []Receipt
}

// Receipt records one successful redemption.
type Receipt struct {
	AssetID      uint64
	Requester    [20]byte
	Payment      uint64
	MetadataHash [32]byte
}

// NewAuthority creates an Authority that accepts vouchers signed by the
// designated authority address under the given domain.
func NewAuthority(domain voucher.Domain, authority [20]byte, st ledger.Store, assets AssetRegistry) (*Authority, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: ledger store", ErrNilParam)
	}
	if assets == nil {
		return nil, fmt.Errorf("%w: asset registry", ErrNilParam)
	}
	return &Authority{
		domain:    domain,
		authority: authority,
		ledger:    st,
		assets:    assets,
	}, nil
}

// DesignatedAuthority returns the address permitted to sign vouchers.
func (a *Authority) DesignatedAuthority() [20]byte { return a.authority }

// Domain returns the signing domain this authority verifies against.
func (a *Authority) Domain() voucher.Domain { return a.domain }

// Redeem verifies a signed voucher and issues its asset to the requester.
//
// Checks run in a fixed order and the first failure aborts with no state
// change: signer recovery (a malformed signature is rejected exactly like a
// wrong signer), signer identity, payment floor, metadata duplicate, then
// issuance. A duplicate asset identifier surfaces from the registry
// unchanged. The metadata hash is marked used only after issuance succeeds.
//
// Returns the issued asset identifier.
func (a *Authority) Redeem(requester [20]byte, v *voucher.Voucher, payment uint64) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if v == nil {
		return 0, fmt.Errorf("%w: voucher", ErrNilParam)
	}

	signer, err := voucher.RecoverSigner(a.domain, v, v.Signature)
	if err != nil {
		return 0, err
	}
	if signer != a.authority {
		return 0, ErrUnauthorizedSigner
	}

	if payment < v.MinPrice {
		return 0, fmt.Errorf("%w: attached %d, need %d", ErrInsufficientPayment, payment, v.MinPrice)
	}

	metaHash := voucher.MetadataHash(v.MetadataRef)
	used, err := a.ledger.Used(metaHash)
	if err != nil {
		return 0, fmt.Errorf("mint: ledger lookup: %w", err)
	}
	if used {
		return 0, ErrDuplicateMetadata
	}

	if err := a.assets.Issue(requester, v.AssetID); err != nil {
		return 0, err
	}
	if err := a.assets.BindMetadata(v.AssetID, v.MetadataRef); err != nil {
		return 0, fmt.Errorf("mint: bind metadata: %w", err)
	}

	if err := a.ledger.Mark(metaHash); err != nil {
		return 0, fmt.Errorf("mint: mark metadata: %w", err)
	}

	a.receipts = append(a.receipts, Receipt{
		AssetID:      v.AssetID,
		Requester:    requester,
		Payment:      payment,
		MetadataHash: metaHash,
	})

	return v.AssetID, nil
}

// Receipts returns a copy of all successful redemption records.
func (a *Authority) Receipts() []Receipt {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Receipt, len(a.receipts))
	copy(out, a.receipts)
	return out
}
