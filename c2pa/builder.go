package c2pa

import (
	"encoding/json"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/manifest"
)

// Assertion is one labeled assertion in a manifest definition.
type Assertion struct {
	Label string          `json:"label"`
	Data  json.RawMessage `json:"data"`
}

// Definition is the engine-facing manifest definition snapshot.
type Definition struct {
	ClaimGenerator string                `json:"claim_generator,omitempty"`
	Title          string                `json:"title,omitempty"`
	Format         string                `json:"format,omitempty"`
	Vendor         string                `json:"vendor,omitempty"`
	Thumbnail      *engine.BufferAsset   `json:"thumbnail,omitempty"`
	Ingredients    []manifest.Ingredient `json:"ingredients,omitempty"`
	Assertions     []Assertion           `json:"assertions,omitempty"`
}

// ManifestBuilder accumulates a manifest definition for signing.
//
// Builders are not safe for concurrent mutation; build the definition, then
// hand the builder to one Sign call.
type ManifestBuilder struct {
	def Definition
}

// NewManifestBuilder starts a builder from an initial definition.
func NewManifestBuilder(def Definition) *ManifestBuilder {
	def.Ingredients = append([]manifest.Ingredient(nil), def.Ingredients...)
	def.Assertions = append([]Assertion(nil), def.Assertions...)
	return &ManifestBuilder{def: def}
}

// Definition returns a read-only snapshot of the accumulated definition.
func (b *ManifestBuilder) Definition() Definition {
	def := b.def
	def.Ingredients = append([]manifest.Ingredient(nil), b.def.Ingredients...)
	def.Assertions = append([]Assertion(nil), b.def.Assertions...)
	return def
}

// AddAssertion appends a labeled assertion.
func (b *ManifestBuilder) AddAssertion(label string, data json.RawMessage) {
	b.def.Assertions = append(b.def.Assertions, Assertion{Label: label, Data: data})
}

// AddIngredient appends an ingredient record to the definition.
func (b *ManifestBuilder) AddIngredient(ing manifest.Ingredient) {
	b.def.Ingredients = append(b.def.Ingredients, ing)
}

// AddThumbnail attaches a thumbnail asset to the definition, replacing any
// previous one.
func (b *ManifestBuilder) AddThumbnail(t engine.BufferAsset) {
	b.def.Thumbnail = &t
}

// AsSendable serializes the definition into the engine-compatible snapshot.
func (b *ManifestBuilder) AsSendable() ([]byte, error) {
	return json.Marshal(b.def)
}
