package hashutil

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLabeledHash_SHA256(t *testing.T) {
	data := []byte("asset bytes")
	got, err := LabeledHash(data, "sha256")
	if err != nil {
		t.Fatalf("LabeledHash: %v", err)
	}
	sum := sha256.Sum256(data)
	want := "sha256:" + base64.StdEncoding.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestLabeledHash_AlgorithmLabels(t *testing.T) {
	for _, alg := range []string{"sha256", "sha512", "sha3-256", "blake3"} {
		t.Run(alg, func(t *testing.T) {
			got, err := LabeledHash([]byte("x"), alg)
			if err != nil {
				t.Fatalf("LabeledHash(%s): %v", alg, err)
			}
			if !strings.HasPrefix(got, alg+":") {
				t.Fatalf("missing label prefix: %q", got)
			}
		})
	}
}

func TestLabeledHash_UnsupportedAlgorithm(t *testing.T) {
	if _, err := LabeledHash([]byte("x"), "md5"); err == nil {
		t.Fatalf("expected error for unsupported algorithm")
	}
}

func TestLabeledHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asset.bin")
	data := []byte{0, 1, 2, 3}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fromFile, err := LabeledHashFile(path, "sha256")
	if err != nil {
		t.Fatalf("LabeledHashFile: %v", err)
	}
	fromBytes, err := LabeledHash(data, "sha256")
	if err != nil {
		t.Fatalf("LabeledHash: %v", err)
	}
	if fromFile != fromBytes {
		t.Fatalf("file and buffer hashes differ: %q vs %q", fromFile, fromBytes)
	}
}

func TestContentID_Stable(t *testing.T) {
	a := ContentID([]byte("resource"))
	b := ContentID([]byte("resource"))
	if a == "" || a != b {
		t.Fatalf("ContentID must be non-empty and stable: %q vs %q", a, b)
	}
	if ContentID([]byte("other")) == a {
		t.Fatalf("distinct content must not collide")
	}
}

func TestContentCID_MatchesContentID(t *testing.T) {
	data := []byte("blob")
	id, err := ContentCID(data)
	if err != nil {
		t.Fatalf("ContentCID: %v", err)
	}
	if id.String() != ContentID(data) {
		t.Fatalf("CID mismatch: %s vs %s", id, ContentID(data))
	}
}
