// Package storage provides content-addressable persistence for provenance
// resource blobs. Callers own storage of the resource maps this module
// returns; everything here is an optional backend for doing that.
package storage

import "github.com/ipfs/go-cid"

// CAS is a minimal content-addressable blob store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored blobs MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
