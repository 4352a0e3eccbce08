// Package manifest defines the flat, reference-based manifest store model
// produced by the provenance engine: manifests keyed by label, resources
// keyed by content identifier, ingredients referencing both by string key.
//
// Types here are wire-shaped (C2PA snake_case JSON). The dereferenced view
// lives in the resolver package.
package manifest

import "encoding/json"

// ResourceStore maps content identifiers to raw resource bytes.
//
// Identifiers are unique within a store and are never reused for different
// content within one resolution pass. Resources may be shared across
// multiple references in the same manifest store.
type ResourceStore map[string][]byte

// ResourceRef points into a ResourceStore by identifier. It never owns data;
// dereferencing an identifier that is absent from the accompanying store is
// a valid "not embedded" state, not an error.
type ResourceRef struct {
	Format     string `json:"format"`
	Identifier string `json:"identifier"`
}

// SignatureInfo describes the signature on a manifest's claim. Time is the
// serialized signing time exactly as the engine reported it.
type SignatureInfo struct {
	Alg              string `json:"alg,omitempty"`
	Issuer           string `json:"issuer,omitempty"`
	CertSerialNumber string `json:"cert_serial_number,omitempty"`
	Time             string `json:"time,omitempty"`
}

// ValidationStatus is one validation finding reported by the engine.
type ValidationStatus struct {
	Code        string `json:"code"`
	URL         string `json:"url,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Ingredient references another asset or a prior manifest state from within
// a Manifest.
//
// ActiveManifest is a label pointing into the same Store the ingredient was
// read from; a dangling label means the referenced manifest is not embedded.
type Ingredient struct {
	Title            string             `json:"title"`
	Format           string             `json:"format,omitempty"`
	DocumentID       string             `json:"document_id,omitempty"`
	InstanceID       string             `json:"instance_id,omitempty"`
	Relationship     string             `json:"relationship,omitempty"`
	Hash             string             `json:"hash,omitempty"`
	ActiveManifest   string             `json:"active_manifest,omitempty"`
	Thumbnail        *ResourceRef       `json:"thumbnail,omitempty"`
	ValidationStatus []ValidationStatus `json:"validation_status,omitempty"`

	// Resources holds resource bytes some engines inline into the
	// ingredient description. Storable output tracks resources separately
	// and always clears this field.
	Resources ResourceStore `json:"resources,omitempty"`
}

// Manifest is the provenance record for one authoring or editing event.
// It is label-addressed within its owning Store and never exists outside one.
type Manifest struct {
	ClaimGenerator string         `json:"claim_generator,omitempty"`
	Title          string         `json:"title,omitempty"`
	Format         string         `json:"format,omitempty"`
	InstanceID     string         `json:"instance_id,omitempty"`
	Thumbnail      *ResourceRef   `json:"thumbnail,omitempty"`
	Ingredients    []Ingredient   `json:"ingredients,omitempty"`
	SignatureInfo  *SignatureInfo `json:"signature_info,omitempty"`
}

// Store is the full collection of manifests associated with one asset.
// It is constructed atomically from a single engine read and never mutated;
// resolution always produces new objects.
type Store struct {
	ActiveManifest   string              `json:"active_manifest,omitempty"`
	Manifests        map[string]Manifest `json:"manifests"`
	ValidationStatus []ValidationStatus  `json:"validation_status,omitempty"`
}

// ParseStore decodes the engine's JSON-encoded manifest store payload.
func ParseStore(data []byte) (*Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Manifests == nil {
		s.Manifests = map[string]Manifest{}
	}
	return &s, nil
}
