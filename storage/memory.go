package storage

import (
	"sync"

	"github.com/ipfs/go-cid"

	"contentauth.dev/c2pa/hashutil"
)

// Memory is an in-memory CAS, safe for concurrent use. Useful for tests
// and for callers that persist resource maps elsewhere and only need a
// scratch store during assembly.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ CAS = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Put(bytes []byte) (cid.Cid, error) {
	id, err := hashutil.ContentCID(bytes)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ErrInvalidCID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[id.String()]; !ok {
		m.blobs[id.String()] = append([]byte(nil), bytes...)
	}
	return id, nil
}

func (m *Memory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[id.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[id.String()]
	return ok
}
