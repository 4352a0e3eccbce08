package c2pa

import (
	"context"
	"fmt"
	"strings"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/signer"
)

// bufferSignFormats is the allow-list for in-memory signing. File-path
// signing carries no such restriction.
var bufferSignFormats = []string{"image/jpeg", "image/png"}

func bufferSignFormatAllowed(mimeType string) bool {
	for _, f := range bufferSignFormats {
		if f == mimeType {
			return true
		}
	}
	return false
}

// SignProps describes one signing call.
type SignProps struct {
	// Manifest is the definition to embed and sign.
	Manifest *ManifestBuilder

	// Asset is the input, as a buffer or a file path.
	Asset engine.Asset

	// OutputPath is the signed-asset destination for file-path signing.
	OutputPath string

	// Signer overrides the client's configured signer for this call.
	Signer signer.Signer

	// Thumbnail selects the thumbnail source for this call.
	Thumbnail ThumbnailOption

	Options SignOptions
}

// SignResult is the normalized signing output. Buffer signing fills Asset
// (and Manifest when the engine produced detached manifest bytes); file
// signing fills OutputPath.
type SignResult struct {
	Asset      []byte
	OutputPath string
	Manifest   []byte
}

// Sign validates signing preconditions, optionally attaches a thumbnail to
// the manifest definition, and dispatches to the engine entry point
// matching the asset variant.
//
// Validation failures carry their own kinds (KindMissingSigner,
// KindStorageOptions, KindFormat, KindInvalidInput) and never reach the
// engine. An engine failure at the dispatch step is wrapped once as
// KindSigning with the original cause retained.
func (c *Client) Sign(ctx context.Context, props SignProps) (*SignResult, error) {
	opts := props.Options.withDefaults()

	effective := props.Signer
	if effective == nil {
		effective = c.opts.Signer
	}
	if effective == nil {
		return nil, newError(KindMissingSigner, "c2pa: no signer supplied for this call and none configured")
	}

	if !opts.embed && opts.remoteManifestURL == "" {
		return nil, newError(KindStorageOptions, "c2pa: signing requires embedding or a remote manifest URL")
	}

	if props.Manifest == nil {
		return nil, newError(KindInvalidInput, "c2pa: missing manifest builder")
	}

	switch asset := props.Asset.(type) {
	case engine.BufferAsset:
		if !bufferSignFormatAllowed(asset.MimeType) {
			return nil, newError(KindFormat, fmt.Sprintf(
				"c2pa: in-memory signing supports %s; got %q",
				strings.Join(bufferSignFormats, ", "), asset.MimeType))
		}
		// The asset's own MIME type wins over any caller-supplied format.
		opts.format = asset.MimeType
	case engine.FileAsset:
		if props.OutputPath == "" {
			return nil, newError(KindInvalidInput, "c2pa: file signing requires an output path")
		}
	default:
		return nil, newError(KindInvalidInput, fmt.Sprintf("c2pa: unsupported asset variant %T", props.Asset))
	}

	if err := c.attachThumbnail(props.Manifest, props.Asset, props.Thumbnail); err != nil {
		return nil, wrapError(KindSigning, "c2pa: thumbnail generation failed", err)
	}

	snapshot, err := props.Manifest.AsSendable()
	if err != nil {
		return nil, wrapError(KindSigning, "c2pa: serialize manifest definition", err)
	}

	reserve := opts.reserveSize
	if reserve <= 0 {
		reserve = effective.Reserve()
	}

	out, err := c.engine.Sign(ctx, engine.SignRequest{
		Manifest:   snapshot,
		Asset:      props.Asset,
		OutputPath: props.OutputPath,
		Signer:     effective,
		Options: engine.SignOptions{
			Format:            opts.format,
			Embed:             opts.embed,
			RemoteManifestURL: opts.remoteManifestURL,
			ReserveSize:       reserve,
		},
	})
	if err != nil {
		return nil, wrapError(KindSigning, "c2pa: engine signing failed", err)
	}
	if out == nil {
		return nil, newError(KindSigning, "c2pa: engine returned no signing result")
	}

	switch props.Asset.(type) {
	case engine.BufferAsset:
		return &SignResult{Asset: out.Asset, Manifest: out.Manifest}, nil
	default:
		path := out.OutputPath
		if path == "" {
			path = props.OutputPath
		}
		return &SignResult{OutputPath: path}, nil
	}
}

// attachThumbnail applies the thumbnail tiers to the manifest builder,
// only when the definition does not already declare a thumbnail.
func (c *Client) attachThumbnail(b *ManifestBuilder, asset engine.Asset, opt ThumbnailOption) error {
	if b.Definition().Thumbnail != nil {
		return nil
	}
	tb, err := c.resolveThumbnail(asset, opt)
	if err != nil {
		return err
	}
	if tb != nil {
		b.AddThumbnail(*tb)
	}
	return nil
}
