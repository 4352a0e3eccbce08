package engine

import "errors"

// The two recoverable read conditions. Both mean "this asset has no
// provenance", which reads surface as a nil result rather than a failure.
// Every other engine error propagates unchanged.
var (
	// ErrNoProvenance reports that the asset carries no provenance data.
	ErrNoProvenance = errors.New("engine: no provenance data found")

	// ErrManifestBoxNotFound reports that the asset's container format has
	// no manifest box to read.
	ErrManifestBoxNotFound = errors.New("engine: manifest box not found")
)

// IsNoProvenance reports whether err is (or wraps) one of the two
// recoverable "no provenance present" conditions.
func IsNoProvenance(err error) bool {
	return errors.Is(err, ErrNoProvenance) || errors.Is(err, ErrManifestBoxNotFound)
}
