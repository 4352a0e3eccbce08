package storage

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// MultiCAS provides deterministic, ordered fallback across multiple CAS
// adapters. Retrieval order is the slice order; callers MUST supply a fixed
// order so no map-iteration nondeterminism leaks into hydration.
//
// Put writes only to the first adapter.
type MultiCAS struct {
	Adapters []CAS
}

var _ CAS = MultiCAS{}

func (m MultiCAS) Put(bytes []byte) (cid.Cid, error) {
	if len(m.Adapters) == 0 {
		return cid.Undef, errors.New("storage: MultiCAS has no adapters")
	}
	return m.Adapters[0].Put(bytes)
}

func (m MultiCAS) Get(id cid.Cid) ([]byte, error) {
	for _, cas := range m.Adapters {
		b, err := cas.Get(id)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (m MultiCAS) Has(id cid.Cid) bool {
	for _, cas := range m.Adapters {
		if cas.Has(id) {
			return true
		}
	}
	return false
}
