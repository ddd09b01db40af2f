package mint

// AssetRegistry is the external collaborator that owns asset records.
// Its operations must be atomic with respect to a single redemption: a
// failed Issue leaves no asset record behind.
type AssetRegistry interface {
	// Issue creates the asset identified by assetID, owned by owner.
	// Must return ErrDuplicateAsset if assetID was already issued.
	Issue(owner [20]byte, assetID uint64) error

	// BindMetadata attaches a metadata reference to an issued asset.
	BindMetadata(assetID uint64, metadataRef string) error
}
