package c2pa

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"contentauth.dev/c2pa/engine/enginetest"
)

func TestSignClaim_UsesConfiguredSigner(t *testing.T) {
	fake := &enginetest.Engine{ClaimSignature: []byte("cose envelope")}
	c, _ := New(fake, Options{Signer: newTestSigner()})

	got, err := c.SignClaim(context.Background(), []byte("claim"), 0)
	if err != nil {
		t.Fatalf("SignClaim: %v", err)
	}
	if !bytes.Equal(got, []byte("cose envelope")) {
		t.Fatalf("signature bytes mismatch")
	}
	if fake.LastReserveSize != newTestSigner().Reserve() {
		t.Fatalf("reserve must default to the signer's own, got %d", fake.LastReserveSize)
	}
}

func TestSignClaim_ExplicitReserveWins(t *testing.T) {
	fake := &enginetest.Engine{ClaimSignature: []byte("s")}
	c, _ := New(fake, Options{Signer: newTestSigner()})

	if _, err := c.SignClaim(context.Background(), []byte("claim"), 8192); err != nil {
		t.Fatalf("SignClaim: %v", err)
	}
	if fake.LastReserveSize != 8192 {
		t.Fatalf("explicit reserve must reach the engine, got %d", fake.LastReserveSize)
	}
}

func TestSignClaim_MissingSigner(t *testing.T) {
	fake := &enginetest.Engine{}
	c, _ := New(fake, Options{})

	_, err := c.SignClaim(context.Background(), []byte("claim"), 0)
	if !IsKind(err, KindMissingSigner) {
		t.Fatalf("got %v want KindMissingSigner", err)
	}
	if fake.ClaimCalls != 0 {
		t.Fatalf("engine must not be invoked without a signer")
	}
}

func TestSignClaim_EngineFailureWrapped(t *testing.T) {
	cause := errors.New("reserve too small")
	fake := &enginetest.Engine{ClaimErr: cause}
	c, _ := New(fake, Options{Signer: newTestSigner()})

	_, err := c.SignClaim(context.Background(), []byte("claim"), 0)
	if !IsKind(err, KindClaim) || !errors.Is(err, cause) {
		t.Fatalf("claim failure must wrap as KindClaim with cause, got %v", err)
	}
}
