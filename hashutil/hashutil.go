// Package hashutil computes labeled content hashes and content IDs for
// assets and provenance resources.
package hashutil

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is used when a caller does not configure one.
const DefaultAlgorithm = "sha256"

func digestFor(alg string, data []byte) ([]byte, error) {
	switch alg {
	case "sha256":
		s := sha256.Sum256(data)
		return s[:], nil
	case "sha512":
		s := sha512.Sum512(data)
		return s[:], nil
	case "sha3-256":
		s := sha3.Sum256(data)
		return s[:], nil
	case "blake3":
		s := blake3.Sum256(data)
		return s[:], nil
	default:
		return nil, fmt.Errorf("hashutil: unsupported hash algorithm: %q", alg)
	}
}

// LabeledHash returns "<alg>:<base64 digest>" over data.
// Supported algorithms: sha256, sha512, sha3-256, blake3.
func LabeledHash(data []byte, alg string) (string, error) {
	digest, err := digestFor(alg, data)
	if err != nil {
		return "", err
	}
	return alg + ":" + base64.StdEncoding.EncodeToString(digest), nil
}

// LabeledHashFile returns the labeled hash of the file at path.
func LabeledHashFile(path string, alg string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return LabeledHash(b, alg)
}

// ContentID returns a CIDv1 string (raw multicodec, sha2-256 multihash)
// derived from data, used to content-address resource blobs in storage.
func ContentID(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and
		// -1 length this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// ContentCID returns a CIDv1 (raw + sha2-256) derived from data.
func ContentCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
