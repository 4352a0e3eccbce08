package signer

import (
	"github.com/fxamacker/cbor/v2"
)

// COSE algorithm identifiers. EdDSA is registered (RFC 8152); Dilithium3
// has no registry entry, so it uses a value from the private-use range
// (below -65536).
const (
	coseAlgEdDSA      = -8
	coseAlgDilithium3 = -65537
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same claim always produces identical
// envelope bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("signer: CBOR encoder initialization failed: " + err.Error())
	}
}

// sigStructure builds the deterministic COSE Sig_structure for a detached
// claim payload: ["Signature1", protected, external_aad, payload].
func sigStructure(protected []byte, claim []byte) ([]byte, error) {
	return encMode.Marshal([]interface{}{
		"Signature1",
		protected,
		[]byte{},
		claim,
	})
}

func protectedHeader(alg int) ([]byte, error) {
	return encMode.Marshal(map[int]interface{}{1: alg})
}

// envelope assembles a COSE_Sign1 with a detached payload:
// [protected, unprotected, nil, signature].
func envelope(protected []byte, signature []byte) ([]byte, error) {
	return encMode.Marshal([]interface{}{
		protected,
		map[int]interface{}{},
		nil,
		signature,
	})
}
