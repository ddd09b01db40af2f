package mint

import (
	"fmt"
	"sync"
)

// MemAssetRegistry is an in-memory AssetRegistry for testing and for
// embedding where no external registry exists.
type MemAssetRegistry struct {
	mu       sync.RWMutex
	owners   map[uint64][20]byte
	metadata map[uint64]string
}

// Compile-time interface check.
var _ AssetRegistry = (*MemAssetRegistry)(nil)

// NewMemAssetRegistry creates an empty in-memory asset registry.
func NewMemAssetRegistry() *MemAssetRegistry {
	return &MemAssetRegistry{
		owners:   make(map[uint64][20]byte),
		metadata: make(map[uint64]string),
	}
}

// Issue creates the asset identified by assetID, owned by owner.
func (r *MemAssetRegistry) Issue(owner [20]byte, assetID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[assetID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateAsset, assetID)
	}
	r.owners[assetID] = owner
	return nil
}

// BindMetadata attaches a metadata reference to an issued asset.
func (r *MemAssetRegistry) BindMetadata(assetID uint64, metadataRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owners[assetID]; !ok {
		return fmt.Errorf("%w: %d", ErrAssetNotFound, assetID)
	}
	r.metadata[assetID] = metadataRef
	return nil
}

// OwnerOf returns the owner of an issued asset.
func (r *MemAssetRegistry) OwnerOf(assetID uint64) ([20]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.owners[assetID]
	if !ok {
		return [20]byte{}, fmt.Errorf("%w: %d", ErrAssetNotFound, assetID)
	}
	return owner, nil
}

// MetadataOf returns the metadata reference bound to an issued asset.
func (r *MemAssetRegistry) MetadataOf(assetID uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.metadata[assetID]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrAssetNotFound, assetID)
	}
	return ref, nil
}

// AssetCount returns the number of issued assets.
func (r *MemAssetRegistry) AssetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}
