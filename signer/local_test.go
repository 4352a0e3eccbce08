package signer

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"
)

func decodeEnvelope(t *testing.T, env []byte) (protected []byte, sig []byte) {
	t.Helper()
	var parts []interface{}
	if err := cbor.Unmarshal(env, &parts); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(parts) != 4 {
		t.Fatalf("envelope arity: got %d want 4", len(parts))
	}
	protected, ok := parts[0].([]byte)
	if !ok {
		t.Fatalf("protected header is %T, want bytes", parts[0])
	}
	if parts[2] != nil {
		t.Fatalf("payload must be detached (nil), got %v", parts[2])
	}
	sig, ok = parts[3].([]byte)
	if !ok {
		t.Fatalf("signature is %T, want bytes", parts[3])
	}
	return protected, sig
}

func TestEd25519_SignVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := NewEd25519(priv)
	if err != nil {
		t.Fatalf("NewEd25519: %v", err)
	}

	claim := []byte("claim bytes")
	env, err := s.Sign(claim)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	protected, sig := decodeEnvelope(t, env)
	msg, err := sigStructure(protected, claim)
	if err != nil {
		t.Fatalf("sigStructure: %v", err)
	}
	if !ed25519.Verify(pub, msg, sig) {
		t.Fatalf("signature did not verify over the Sig_structure")
	}
}

func TestEd25519_Deterministic(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := NewEd25519(priv)
	if err != nil {
		t.Fatalf("NewEd25519: %v", err)
	}

	claim := []byte("same claim")
	a, err := s.Sign(claim)
	if err != nil {
		t.Fatalf("Sign(1): %v", err)
	}
	b, err := s.Sign(claim)
	if err != nil {
		t.Fatalf("Sign(2): %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("envelope bytes must be deterministic for the same claim")
	}
}

func TestEd25519_InvalidKey(t *testing.T) {
	if _, err := NewEd25519(make([]byte, 7)); err == nil {
		t.Fatalf("expected error for truncated key")
	}
}

func TestDilithium3_SignVerify(t *testing.T) {
	pub, priv, err := mode3.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := NewDilithium3(priv)
	if err != nil {
		t.Fatalf("NewDilithium3: %v", err)
	}

	claim := []byte("pq claim")
	env, err := s.Sign(claim)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	protected, sig := decodeEnvelope(t, env)
	msg, err := sigStructure(protected, claim)
	if err != nil {
		t.Fatalf("sigStructure: %v", err)
	}
	digest := sha3.Sum256(msg)
	if !mode3.Verify(pub, digest[:], sig) {
		t.Fatalf("dilithium3 signature did not verify")
	}
}

func TestReserveDefaults(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := NewEd25519(priv)
	if err != nil {
		t.Fatalf("NewEd25519: %v", err)
	}
	if s.Reserve() != defaultReserveEd25519 {
		t.Fatalf("default reserve: got %d", s.Reserve())
	}
	s.ReserveSize = 512
	if s.Reserve() != 512 {
		t.Fatalf("override reserve: got %d", s.Reserve())
	}
}
