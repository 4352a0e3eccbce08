package c2pa

import (
	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/signer"
	"contentauth.dev/c2pa/thumbnail"
)

// Options is the configuration snapshot for a Client. It is copied at
// construction and treated as immutable afterward; there is no ambient or
// process-global state.
type Options struct {
	// Signer is the claim signer applied when a call does not supply its
	// own.
	Signer signer.Signer

	// HashAlgorithm labels ingredient content hashes. Defaults to
	// hashutil.DefaultAlgorithm.
	HashAlgorithm string

	// Thumbnail controls automatic thumbnail generation.
	Thumbnail thumbnail.Config

	// ThumbnailGenerator produces thumbnails when Thumbnail.Enabled is set.
	// Generation never happens without both the config flag and a
	// generator.
	ThumbnailGenerator thumbnail.Generator
}

func (o Options) withDefaults() Options {
	if o.HashAlgorithm == "" {
		o.HashAlgorithm = hashutil.DefaultAlgorithm
	}
	return o
}

// DefaultSignFormat is the format assumed for file-path signing when the
// caller does not name one.
const DefaultSignFormat = "application/octet-stream"

// SignOptions are per-call signing options, merged over documented
// defaults: format DefaultSignFormat, embed true.
type SignOptions struct {
	// Format is the asset MIME type for the engine call. For in-memory
	// assets the asset's own MIME type always wins.
	Format string

	// Embed controls embedding the manifest into the signed asset.
	// Nil means true.
	Embed *bool

	// RemoteManifestURL publishes the manifest at a remote location
	// instead of, or in addition to, embedding.
	RemoteManifestURL string

	// ReserveSize overrides the signer's reserve size when positive.
	ReserveSize int
}

type resolvedSignOptions struct {
	format            string
	embed             bool
	remoteManifestURL string
	reserveSize       int
}

func (o SignOptions) withDefaults() resolvedSignOptions {
	out := resolvedSignOptions{
		format:            o.Format,
		embed:             true,
		remoteManifestURL: o.RemoteManifestURL,
		reserveSize:       o.ReserveSize,
	}
	if out.format == "" {
		out.format = DefaultSignFormat
	}
	if o.Embed != nil {
		out.embed = *o.Embed
	}
	return out
}

// ThumbnailOption selects a thumbnail source for one call.
//
// Precedence: an explicit Asset wins; otherwise automatic generation
// applies only when it is enabled on the client; Disabled suppresses both,
// including automatic generation that is globally enabled.
type ThumbnailOption struct {
	Asset    *engine.BufferAsset
	Disabled bool
}
