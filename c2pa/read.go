package c2pa

import (
	"context"
	"fmt"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/manifest"
	"contentauth.dev/c2pa/resolver"
)

// Read extracts and resolves the asset's manifest store into a fully
// dereferenced tree.
//
// It returns (nil, nil) when the asset carries no provenance — the two
// recoverable engine conditions are a legitimate absence, not a failure.
// Any other engine error propagates unchanged so callers can branch on the
// engine's own error identity.
func Read(ctx context.Context, e engine.Engine, asset engine.Asset) (*resolver.ResolvedStore, error) {
	out, err := e.Read(ctx, asset)
	if err != nil {
		if engine.IsNoProvenance(err) {
			return nil, nil
		}
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("c2pa: engine returned no read result")
	}

	store, err := manifest.ParseStore(out.ManifestStore)
	if err != nil {
		return nil, fmt.Errorf("c2pa: decode manifest store: %w", err)
	}
	return resolver.ResolveStore(store, out.Resources), nil
}

// Read resolves the asset's manifest store through the client's engine.
func (c *Client) Read(ctx context.Context, asset engine.Asset) (*resolver.ResolvedStore, error) {
	return Read(ctx, c.engine, asset)
}
