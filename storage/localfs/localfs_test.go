package localfs

import (
	"errors"
	"os"
	"testing"

	"contentauth.dev/c2pa/storage"
	"contentauth.dev/c2pa/storage/testkit"
)

func TestLocalFSConformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		cas, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return cas
	})
}

func TestNew_RequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestGet_TamperedBlob(t *testing.T) {
	cas, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id, err := cas.Put([]byte("thumbnail bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Rewrite the blob file in place; its bytes no longer hash to the CID
	// it is filed under.
	path := cas.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("swapped bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := cas.Get(id); !errors.Is(err, storage.ErrCIDMismatch) {
		t.Fatalf("Get tampered blob: got %v want ErrCIDMismatch", err)
	}
}

func TestPut_ImmutabilityViolation(t *testing.T) {
	cas, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []byte("original resource")
	id, err := cas.Put(want)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := cas.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("different bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// The CID's slot now holds foreign bytes; re-putting the original must
	// refuse to overwrite them.
	if _, err := cas.Put(want); !errors.Is(err, storage.ErrImmutable) {
		t.Fatalf("Put over foreign bytes: got %v want ErrImmutable", err)
	}
}
