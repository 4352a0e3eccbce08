package storage

import (
	"fmt"
	"sort"

	"github.com/ipfs/go-cid"

	"contentauth.dev/c2pa/manifest"
)

// ResourceIndex maps resource identifiers to the CIDs of their persisted
// bytes. It is the durable link between an ingredient's references and a
// CAS.
type ResourceIndex map[string]cid.Cid

// PutResources persists every blob of a resource store and returns the
// identifier-to-CID index. Blobs are written in sorted identifier order so
// backend write patterns are deterministic.
func PutResources(cas CAS, res manifest.ResourceStore) (ResourceIndex, error) {
	if cas == nil {
		return nil, fmt.Errorf("storage: nil CAS")
	}
	ids := make([]string, 0, len(res))
	for id := range res {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(ResourceIndex, len(ids))
	for _, id := range ids {
		c, err := cas.Put(res[id])
		if err != nil {
			return nil, fmt.Errorf("storage: put resource %q: %w", id, err)
		}
		out[id] = c
	}
	return out, nil
}

// GetResources rebuilds a resource store from a CAS using an index
// produced by PutResources.
func GetResources(cas CAS, index ResourceIndex) (manifest.ResourceStore, error) {
	if cas == nil {
		return nil, fmt.Errorf("storage: nil CAS")
	}
	out := make(manifest.ResourceStore, len(index))
	for id, c := range index {
		b, err := cas.Get(c)
		if err != nil {
			return nil, fmt.Errorf("storage: get resource %q: %w", id, err)
		}
		out[id] = b
	}
	return out, nil
}
