// Package enginetest provides a scripted in-memory Engine for tests.
package enginetest

import (
	"context"
	"sync"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/signer"
)

// Engine is a scripted engine.Engine. Each call returns the configured
// result or error and records that it was invoked. The zero value fails
// every call with engine.ErrNoProvenance on Read and nil results elsewhere.
type Engine struct {
	mu sync.Mutex

	ReadResult       *engine.ReadResult
	ReadErr          error
	SignResult       *engine.SignResult
	SignErr          error
	IngredientResult *engine.IngredientResult
	IngredientErr    error
	ClaimSignature   []byte
	ClaimErr         error

	ReadCalls       int
	SignCalls       int
	IngredientCalls int
	ClaimCalls      int

	LastReadAsset       engine.Asset
	LastSignRequest     engine.SignRequest
	LastIngredientAsset engine.Asset
	LastClaim           []byte
	LastReserveSize     int
	LastClaimSigner     signer.Signer
}

var _ engine.Engine = (*Engine)(nil)

func (e *Engine) Read(ctx context.Context, asset engine.Asset) (*engine.ReadResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ReadCalls++
	e.LastReadAsset = asset
	if e.ReadErr != nil {
		return nil, e.ReadErr
	}
	if e.ReadResult == nil {
		return nil, engine.ErrNoProvenance
	}
	return e.ReadResult, nil
}

func (e *Engine) Sign(ctx context.Context, req engine.SignRequest) (*engine.SignResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.SignCalls++
	e.LastSignRequest = req
	if e.SignErr != nil {
		return nil, e.SignErr
	}
	return e.SignResult, nil
}

func (e *Engine) CreateIngredient(ctx context.Context, asset engine.Asset) (*engine.IngredientResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.IngredientCalls++
	e.LastIngredientAsset = asset
	if e.IngredientErr != nil {
		return nil, e.IngredientErr
	}
	return e.IngredientResult, nil
}

func (e *Engine) SignClaim(ctx context.Context, claim []byte, reserveSize int, s signer.Signer) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ClaimCalls++
	e.LastClaim = append([]byte(nil), claim...)
	e.LastReserveSize = reserveSize
	e.LastClaimSigner = s
	if e.ClaimErr != nil {
		return nil, e.ClaimErr
	}
	if e.ClaimSignature != nil {
		return e.ClaimSignature, nil
	}
	if s != nil {
		return s.Sign(claim)
	}
	return nil, nil
}
