// Package testkit provides the conformance suite every resource blob
// backend in this module must pass.
package testkit

import (
	"bytes"
	"testing"

	"github.com/ipfs/go-cid"

	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/manifest"
	"contentauth.dev/c2pa/storage"
)

// NewCAS constructs a fresh, empty backend for one subtest. Each returned
// instance must be isolated from the others.
type NewCAS func(t *testing.T) storage.CAS

// RunCASConformance exercises the CAS contract: content-derived CIDs,
// idempotent puts, ErrNotFound for absent blobs, rejection of undefined
// CIDs, and a full resource-store round trip through the index helpers.
func RunCASConformance(t *testing.T, newCAS NewCAS) {
	t.Helper()

	t.Run("RoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		want := []byte("resource blob")

		id, err := cas.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		wantID, err := hashutil.ContentCID(want)
		if err != nil {
			t.Fatalf("ContentCID failed: %v", err)
		}
		if id != wantID {
			t.Fatalf("Put CID must derive from the bytes: got %s want %s", id, wantID)
		}

		got, err := cas.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("IdempotentPut", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("same bytes")

		id1, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		id2, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("DistinctBlobs", func(t *testing.T) {
		cas := newCAS(t)
		thumb := []byte("thumbnail bytes")
		icc := []byte("icc profile bytes")

		thumbID, err := cas.Put(thumb)
		if err != nil {
			t.Fatalf("Put thumbnail failed: %v", err)
		}
		iccID, err := cas.Put(icc)
		if err != nil {
			t.Fatalf("Put profile failed: %v", err)
		}
		if thumbID == iccID {
			t.Fatalf("distinct blobs must get distinct CIDs")
		}

		gotThumb, err := cas.Get(thumbID)
		if err != nil {
			t.Fatalf("Get thumbnail failed: %v", err)
		}
		if !bytes.Equal(gotThumb, thumb) {
			t.Fatalf("thumbnail bytes mismatch after storing a second blob")
		}
	})

	t.Run("MissingBlob", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("missing")
		id, err := hashutil.ContentCID(b)
		if err != nil {
			t.Fatalf("ContentCID failed: %v", err)
		}

		if cas.Has(id) {
			t.Fatalf("Has returned true for an absent blob")
		}
		if _, err := cas.Get(id); !storage.IsNotFound(err) {
			t.Fatalf("Get absent blob: got err=%v want ErrNotFound", err)
		}

		if _, err := cas.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !cas.Has(id) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("UndefinedCID", func(t *testing.T) {
		cas := newCAS(t)
		var undef cid.Cid
		if cas.Has(undef) {
			t.Fatalf("Has should be false for an undefined CID")
		}
		if _, err := cas.Get(undef); err == nil {
			t.Fatalf("Get should fail for an undefined CID")
		}
	})

	t.Run("ResourceStoreRoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		res := manifest.ResourceStore{
			"xmp:iid:7/thumbnail": []byte("thumbnail bytes"),
			"icc-profile":         []byte("profile bytes"),
		}

		index, err := storage.PutResources(cas, res)
		if err != nil {
			t.Fatalf("PutResources failed: %v", err)
		}
		if len(index) != len(res) {
			t.Fatalf("index size: got %d want %d", len(index), len(res))
		}

		back, err := storage.GetResources(cas, index)
		if err != nil {
			t.Fatalf("GetResources failed: %v", err)
		}
		for id, b := range res {
			if !bytes.Equal(back[id], b) {
				t.Fatalf("resource %q did not survive the round trip", id)
			}
		}
	})
}
