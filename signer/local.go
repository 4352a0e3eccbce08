package signer

import (
	"crypto/ed25519"
	"errors"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// Default reserve sizes, sized to hold the COSE envelope for each
// algorithm with room for timestamps and certificate data.
const (
	defaultReserveEd25519    = 2048
	defaultReserveDilithium3 = 8192
)

// Ed25519 signs claims with an Ed25519 private key.
type Ed25519 struct {
	key ed25519.PrivateKey

	// ReserveSize overrides the default reserve size when positive.
	ReserveSize int
}

// NewEd25519 wraps an Ed25519 private key as a claim signer.
func NewEd25519(key ed25519.PrivateKey) (*Ed25519, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("signer: invalid ed25519 private key length")
	}
	return &Ed25519{key: key}, nil
}

func (s *Ed25519) Alg() string { return "ed25519" }

func (s *Ed25519) Reserve() int {
	if s.ReserveSize > 0 {
		return s.ReserveSize
	}
	return defaultReserveEd25519
}

// Sign returns a COSE_Sign1 envelope with an EdDSA signature over the
// Sig_structure of the detached claim.
func (s *Ed25519) Sign(claim []byte) ([]byte, error) {
	protected, err := protectedHeader(coseAlgEdDSA)
	if err != nil {
		return nil, err
	}
	msg, err := sigStructure(protected, claim)
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(s.key, msg)
	return envelope(protected, sig)
}

// Dilithium3 signs claims with a Dilithium mode3 private key over a
// sha3-256 digest of the Sig_structure.
type Dilithium3 struct {
	key *mode3.PrivateKey

	// ReserveSize overrides the default reserve size when positive.
	ReserveSize int
}

// NewDilithium3 wraps a Dilithium3 private key as a claim signer.
func NewDilithium3(key *mode3.PrivateKey) (*Dilithium3, error) {
	if key == nil {
		return nil, errors.New("signer: missing dilithium3 private key")
	}
	return &Dilithium3{key: key}, nil
}

// GenerateDilithium3 returns a claim signer backed by a fresh Dilithium3
// keypair read from rand.
func GenerateDilithium3(rand io.Reader) (*Dilithium3, *mode3.PublicKey, error) {
	pub, priv, err := mode3.GenerateKey(rand)
	if err != nil {
		return nil, nil, err
	}
	return &Dilithium3{key: priv}, pub, nil
}

func (s *Dilithium3) Alg() string { return "dilithium3" }

func (s *Dilithium3) Reserve() int {
	if s.ReserveSize > 0 {
		return s.ReserveSize
	}
	return defaultReserveDilithium3
}

func (s *Dilithium3) Sign(claim []byte) ([]byte, error) {
	protected, err := protectedHeader(coseAlgDilithium3)
	if err != nil {
		return nil, err
	}
	msg, err := sigStructure(protected, claim)
	if err != nil {
		return nil, err
	}
	digest := sha3.Sum256(msg)
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.key, digest[:], sig)
	return envelope(protected, sig)
}
