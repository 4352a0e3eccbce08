// Package localfs stores provenance resource blobs as read-only files
// under a root directory, addressed by their CIDv1 content ID.
package localfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/storage"
)

// CAS lays blobs out as <root>/blobs/<prefix>/<cid>, where prefix is the
// first two characters of the CID string. Files are written once, made
// read-only, and never modified afterward; the store is offline and
// deterministic.
type CAS struct {
	root string
}

// New opens (or creates) a blob store rooted at dir.
func New(dir string) (*CAS, error) {
	if dir == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, "blobs"), 0o755); err != nil {
		return nil, err
	}
	return &CAS{root: dir}, nil
}

// Put stores the resource bytes under their content ID. Re-putting the
// same bytes is a no-op; different bytes already filed under the CID are
// an immutability violation.
func (c *CAS) Put(b []byte) (cid.Cid, error) {
	id, err := hashutil.ContentCID(b)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, storage.ErrInvalidCID
	}

	path := c.pathFor(id)
	existing, err := os.ReadFile(path)
	if err == nil {
		if !bytes.Equal(existing, b) {
			return cid.Undef, storage.ErrImmutable
		}
		return id, nil
	}
	if !os.IsNotExist(err) {
		return cid.Undef, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	// Write-then-rename: a blob is either fully present or absent. Writers
	// racing on the same CID rename identical bytes, so the overwrite is
	// harmless.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return cid.Undef, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return cid.Undef, err
	}
	if err := tmp.Close(); err != nil {
		return cid.Undef, err
	}
	if err := os.Chmod(tmp.Name(), 0o444); err != nil {
		return cid.Undef, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

// Get returns the blob stored under id. Bytes that no longer hash to the
// CID they are filed under (on-disk tampering) fail with ErrCIDMismatch.
func (c *CAS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	b, err := os.ReadFile(c.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	got, err := hashutil.ContentCID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (c *CAS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(c.pathFor(id))
	return err == nil
}

func (c *CAS) pathFor(id cid.Cid) string {
	s := id.String()
	prefix := s
	if len(s) >= 2 {
		prefix = s[:2]
	}
	return filepath.Join(c.root, "blobs", prefix, s)
}
