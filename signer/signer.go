// Package signer provides claim signers: the callbacks that produce the
// COSE signature envelope embedded in a manifest's claim signature box.
//
// Signing of the asset itself (container rewriting, manifest embedding) is
// the engine's job; signers only ever see raw claim bytes.
package signer

// Signer signs claim bytes and describes its signature envelope.
//
// Implementations must be safe for concurrent use: orchestrators treat a
// configured signer as read-only for the lifetime of their options.
type Signer interface {
	// Sign returns the signature envelope over the claim bytes.
	Sign(claim []byte) ([]byte, error)

	// Alg returns the signing algorithm label, e.g. "ed25519".
	Alg() string

	// Reserve returns the number of bytes the engine should reserve in the
	// asset for the signature envelope.
	Reserve() int
}
