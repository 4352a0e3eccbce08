package storage

import "errors"

// Sentinel failures shared by every resource blob backend. Backends
// translate their own failure modes into these so callers can branch
// without knowing which backend holds a resource.
var (
	// ErrNotFound reports that no blob is stored under the requested CID.
	ErrNotFound = errors.New("storage: not found")

	// ErrInvalidCID reports a CID that is undefined or not the CIDv1 raw
	// sha2-256 shape this module derives from blob bytes.
	ErrInvalidCID = errors.New("storage: invalid cid")

	// ErrCIDMismatch reports blob bytes whose recomputed CID differs from
	// the CID they were stored or requested under.
	ErrCIDMismatch = errors.New("storage: cid mismatch")

	// ErrImmutable reports an attempt to store different bytes under a CID
	// that already holds a blob.
	ErrImmutable = errors.New("storage: immutable object mismatch")
)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
