// Package thumbnail defines the thumbnail generation contract consumed by
// the signing and ingredient orchestrators. Image rendering itself is an
// external collaborator: orchestrators only ever call Generate and attach
// whatever comes back.
package thumbnail

import "contentauth.dev/c2pa/engine"

// Config controls automatic thumbnail generation for an orchestrator.
type Config struct {
	// Enabled turns automatic generation on. Individual calls can still
	// suppress it.
	Enabled bool

	// MaxSize is the longest edge of the generated image, in pixels.
	MaxSize int

	// Format is the output MIME type, e.g. "image/jpeg".
	Format string

	// Quality is the encoder quality for lossy formats (1-100).
	Quality int
}

// Generator produces a thumbnail for an asset. A nil result with a nil
// error means the generator declined the input (unsupported format); the
// orchestrator then attaches nothing.
type Generator interface {
	Generate(asset engine.Asset, cfg Config) (*engine.BufferAsset, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(asset engine.Asset, cfg Config) (*engine.BufferAsset, error)

func (f GeneratorFunc) Generate(asset engine.Asset, cfg Config) (*engine.BufferAsset, error) {
	return f(asset, cfg)
}
