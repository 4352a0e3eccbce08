// Package c2pa orchestrates manifest reads, signing, and ingredient
// creation against a provenance engine, turning the engine's flat,
// reference-based output into fully dereferenced trees and validating
// signing preconditions before any engine call.
package c2pa

import (
	"fmt"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/hashutil"
)

// Client binds an engine to an immutable options snapshot. A Client holds
// no mutable state between calls and is safe for concurrent use.
//
// Cancellation is not supported below this layer: an in-flight engine call
// cannot be aborted, so a caller racing the returned result against its own
// timeout must accept that the underlying operation may still complete.
type Client struct {
	engine engine.Engine
	opts   Options
}

// New constructs a Client over an engine. The options are copied; later
// mutation of the caller's value has no effect.
func New(e engine.Engine, opts Options) (*Client, error) {
	if e == nil {
		return nil, newError(KindInvalidInput, "c2pa: missing engine")
	}
	return &Client{engine: e, opts: opts.withDefaults()}, nil
}

func (c *Client) hashAsset(asset engine.Asset) (string, error) {
	switch a := asset.(type) {
	case engine.BufferAsset:
		return hashutil.LabeledHash(a.Data, c.opts.HashAlgorithm)
	case engine.FileAsset:
		return hashutil.LabeledHashFile(a.Path, c.opts.HashAlgorithm)
	default:
		return "", fmt.Errorf("c2pa: unsupported asset variant %T", asset)
	}
}

// resolveThumbnail applies the per-call attachment precedence: an explicit
// asset wins, automatic generation applies only when globally enabled, and
// Disabled suppresses both even when generation is globally enabled.
func (c *Client) resolveThumbnail(asset engine.Asset, opt ThumbnailOption) (*engine.BufferAsset, error) {
	if opt.Disabled {
		return nil, nil
	}
	if opt.Asset != nil {
		return opt.Asset, nil
	}
	if !c.opts.Thumbnail.Enabled || c.opts.ThumbnailGenerator == nil {
		return nil, nil
	}
	return c.opts.ThumbnailGenerator.Generate(asset, c.opts.Thumbnail)
}
