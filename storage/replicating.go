package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"contentauth.dev/c2pa/hashutil"
)

// NamedCAS associates a CAS with a stable backend name, for callers that
// need per-backend metadata when replicating resource blobs.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes to all configured backends. Reads fall back in
// order. Writes require every backend to return the canonical CID,
// otherwise ErrCIDMismatch.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes the same bytes to all backends and returns the canonical
// CID plus the per-backend CID mapping.
func (r ReplicatingCAS) PutAll(bytes []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := hashutil.ContentCID(bytes)
	if err != nil {
		return cid.Undef, nil, err
	}
	if !want.Defined() {
		return cid.Undef, nil, ErrInvalidCID
	}
	if len(r.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("storage: ReplicatingCAS has no backends")
	}

	out := make(map[string]cid.Cid, len(r.Backends))
	for _, b := range r.Backends {
		if b.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
		got, err := b.CAS.Put(bytes)
		if err != nil {
			return cid.Undef, nil, err
		}
		out[b.Name] = got
		if got != want {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (r ReplicatingCAS) Put(bytes []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(bytes)
	return id, err
}

func (r ReplicatingCAS) Get(id cid.Cid) ([]byte, error) {
	for _, b := range r.Backends {
		if b.CAS == nil {
			continue
		}
		out, err := b.CAS.Get(id)
		if err == nil {
			return out, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (r ReplicatingCAS) Has(id cid.Cid) bool {
	for _, b := range r.Backends {
		if b.CAS != nil && b.CAS.Has(id) {
			return true
		}
	}
	return false
}
