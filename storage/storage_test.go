package storage_test

import (
	"bytes"
	"testing"

	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/manifest"
	"contentauth.dev/c2pa/storage"
	"contentauth.dev/c2pa/storage/testkit"
)

func TestMemoryConformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.NewMemory()
	})
}

func TestMultiCAS_OrderedFallback(t *testing.T) {
	a := storage.NewMemory()
	b := storage.NewMemory()
	blob := []byte("only in b")
	id, err := b.Put(blob)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	multi := storage.MultiCAS{Adapters: []storage.CAS{a, b}}
	got, err := multi.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Fatalf("bytes mismatch")
	}
	if !multi.Has(id) {
		t.Fatalf("Has must see the second adapter")
	}

	// Put writes only to the first adapter.
	id2, err := multi.Put([]byte("fresh"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !a.Has(id2) {
		t.Fatalf("first adapter must hold the blob")
	}
	if b.Has(id2) {
		t.Fatalf("second adapter must not be written")
	}
}

func TestReplicatingCAS_PutAll(t *testing.T) {
	a := storage.NewMemory()
	b := storage.NewMemory()
	rep := storage.ReplicatingCAS{Backends: []storage.NamedCAS{
		{Name: "a", CAS: a},
		{Name: "b", CAS: b},
	}}

	blob := []byte("replicated")
	id, perBackend, err := rep.PutAll(blob)
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if !a.Has(id) || !b.Has(id) {
		t.Fatalf("both backends must hold the blob")
	}
	if perBackend["a"] != id || perBackend["b"] != id {
		t.Fatalf("per-backend CIDs must match canonical: %v", perBackend)
	}
}

func TestPutGetResources_RoundTrip(t *testing.T) {
	cas := storage.NewMemory()
	res := manifest.ResourceStore{
		"xmp:iid:1/thumbnail": []byte("thumb"),
		"icc-profile":         []byte("profile"),
	}

	index, err := storage.PutResources(cas, res)
	if err != nil {
		t.Fatalf("PutResources: %v", err)
	}
	if len(index) != 2 {
		t.Fatalf("index size: got %d", len(index))
	}
	for id, c := range index {
		want, err := hashutil.ContentCID(res[id])
		if err != nil {
			t.Fatalf("ContentCID: %v", err)
		}
		if c != want {
			t.Fatalf("index CID for %q mismatch", id)
		}
	}

	back, err := storage.GetResources(cas, index)
	if err != nil {
		t.Fatalf("GetResources: %v", err)
	}
	for id, b := range res {
		if !bytes.Equal(back[id], b) {
			t.Fatalf("resource %q mismatch", id)
		}
	}
}
