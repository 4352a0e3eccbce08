// Package engine defines the contract presented by the native provenance
// engine. Box-format parsing, JUMBF embedding, signature computation, and
// asset I/O all live behind the Engine interface; this module assumes
// nothing about an implementation beyond the call and response shapes
// defined here and the two recoverable error conditions in errors.go.
package engine

import (
	"context"

	"contentauth.dev/c2pa/manifest"
	"contentauth.dev/c2pa/signer"
)

// Asset identifies an operation's input as exactly one of an in-memory
// buffer or a file path. The two modes dispatch to different engine entry
// points and are never combined.
type Asset interface {
	isAsset()
}

// BufferAsset is an in-memory asset: raw bytes plus their MIME type.
type BufferAsset struct {
	MimeType string `json:"format"`
	Data     []byte `json:"data"`
}

func (BufferAsset) isAsset() {}

// FileAsset is an asset addressed by filesystem path.
type FileAsset struct {
	Path string `json:"path"`
}

func (FileAsset) isAsset() {}

// ReadResult is the raw output of a read: the JSON-encoded manifest store
// plus each manifest's resource store, keyed by manifest label.
type ReadResult struct {
	ManifestStore []byte
	Resources     map[string]manifest.ResourceStore
}

// SignOptions are the effective options for one signing call.
type SignOptions struct {
	// Format is the asset MIME type the engine should assume.
	Format string
	// Embed controls embedding the manifest into the signed asset.
	Embed bool
	// RemoteManifestURL publishes the manifest at a remote location.
	RemoteManifestURL string
	// ReserveSize is the number of bytes reserved in the asset for the
	// claim signature envelope.
	ReserveSize int
}

// SignRequest carries one signing dispatch. For buffer assets the engine
// returns the signed bytes; for file assets it writes OutputPath.
type SignRequest struct {
	// Manifest is the serialized manifest definition snapshot.
	Manifest []byte
	Asset    Asset
	// OutputPath is the destination for file-mode signing.
	OutputPath string
	Options    SignOptions
	// Signer produces the claim signature. Remote engine transports may
	// substitute the serving process's own signing identity.
	Signer signer.Signer
}

// SignResult is the normalized result of a signing dispatch.
type SignResult struct {
	// Asset holds the signed asset bytes in buffer mode.
	Asset []byte
	// OutputPath locates the signed asset in file mode.
	OutputPath string
	// Manifest holds the detached manifest bytes when the engine produced
	// them (remote-manifest signing).
	Manifest []byte
}

// IngredientResult is the raw output of ingredient extraction: the
// JSON-encoded ingredient description plus its referenced resources.
type IngredientResult struct {
	Ingredient []byte
	Resources  manifest.ResourceStore
}

// Engine is the narrow asynchronous interface to the native provenance
// engine. All calls block until the single underlying engine invocation
// completes; no call fans out internally. Implementations must be safe for
// concurrent use by multiple callers.
type Engine interface {
	// Read extracts the asset's manifest store. It fails with one of the
	// recoverable conditions in errors.go when the asset carries no
	// provenance.
	Read(ctx context.Context, asset Asset) (*ReadResult, error)

	// Sign embeds and signs the manifest described by req.
	Sign(ctx context.Context, req SignRequest) (*SignResult, error)

	// CreateIngredient extracts an ingredient description and its
	// resources from the asset.
	CreateIngredient(ctx context.Context, asset Asset) (*IngredientResult, error)

	// SignClaim signs raw claim bytes, reserving reserveSize bytes for the
	// signature envelope.
	SignClaim(ctx context.Context, claim []byte, reserveSize int, s signer.Signer) ([]byte, error)
}
