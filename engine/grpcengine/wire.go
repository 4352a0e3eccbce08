package grpcengine

import (
	"fmt"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/manifest"
)

// wireAsset is the JSON shape of an engine.Asset. Exactly one of the buffer
// and file fields is populated, selected by Kind.
type wireAsset struct {
	Kind   string `json:"kind"` // "buffer" or "file"
	Format string `json:"format,omitempty"`
	Data   []byte `json:"data,omitempty"`
	Path   string `json:"path,omitempty"`
}

const (
	assetKindBuffer = "buffer"
	assetKindFile   = "file"
)

func encodeAsset(a engine.Asset) (wireAsset, error) {
	switch v := a.(type) {
	case engine.BufferAsset:
		return wireAsset{Kind: assetKindBuffer, Format: v.MimeType, Data: v.Data}, nil
	case engine.FileAsset:
		return wireAsset{Kind: assetKindFile, Path: v.Path}, nil
	default:
		return wireAsset{}, fmt.Errorf("grpcengine: unsupported asset type %T", a)
	}
}

func decodeAsset(w wireAsset) (engine.Asset, error) {
	switch w.Kind {
	case assetKindBuffer:
		return engine.BufferAsset{MimeType: w.Format, Data: w.Data}, nil
	case assetKindFile:
		return engine.FileAsset{Path: w.Path}, nil
	default:
		return nil, fmt.Errorf("grpcengine: unsupported asset kind %q", w.Kind)
	}
}

type readRequest struct {
	Asset wireAsset `json:"asset"`
}

type readResponse struct {
	ManifestStore []byte                            `json:"manifest_store"`
	Resources     map[string]manifest.ResourceStore `json:"resources,omitempty"`
}

// signRequest flattens engine.SignOptions onto the envelope. The caller's
// signer never crosses the wire; the serving process signs with its own
// identity.
type signRequest struct {
	Manifest          []byte    `json:"manifest"`
	Asset             wireAsset `json:"asset"`
	OutputPath        string    `json:"output_path,omitempty"`
	Format            string    `json:"format,omitempty"`
	Embed             bool      `json:"embed"`
	RemoteManifestURL string    `json:"remote_manifest_url,omitempty"`
	ReserveSize       int       `json:"reserve_size,omitempty"`
}

type signResponse struct {
	Asset      []byte `json:"asset,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Manifest   []byte `json:"manifest,omitempty"`
}

type ingredientRequest struct {
	Asset wireAsset `json:"asset"`
}

type ingredientResponse struct {
	Ingredient []byte                 `json:"ingredient"`
	Resources  manifest.ResourceStore `json:"resources,omitempty"`
}

type claimRequest struct {
	Claim       []byte `json:"claim"`
	ReserveSize int    `json:"reserve_size,omitempty"`
}

type claimResponse struct {
	Signature []byte `json:"signature"`
}
