package c2pa

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/manifest"
)

// IngredientProps describes one ingredient-creation call.
type IngredientProps struct {
	// Asset is the component asset, as a buffer or a file path.
	Asset engine.Asset

	// Title names the ingredient in the resulting record; it overrides
	// whatever the engine extracted.
	Title string

	// Thumbnail selects the thumbnail source when the engine did not
	// already supply a thumbnail reference.
	Thumbnail ThumbnailOption
}

// StorableIngredient is the caller-owned, storage-ready bundle produced by
// ingredient creation: the ingredient record (inline resources cleared)
// plus every resource it references, keyed by identifier.
//
// This library holds no reference to the bundle after returning it.
type StorableIngredient struct {
	Ingredient manifest.Ingredient    `json:"ingredient"`
	Resources  manifest.ResourceStore `json:"resources"`
}

// CreateIngredient computes the asset's content hash, extracts an
// ingredient description through the engine, and assembles a self-contained
// bundle. Every identifier referenced by the returned ingredient has a
// matching entry in Resources.
//
// The content hash is computed before the engine call and always overrides
// the engine's own hash. Any failure is wrapped as KindIngredient with the
// original cause retained.
func (c *Client) CreateIngredient(ctx context.Context, props IngredientProps) (*StorableIngredient, error) {
	hash, err := c.hashAsset(props.Asset)
	if err != nil {
		return nil, wrapError(KindIngredient, "c2pa: hash asset", err)
	}

	out, err := c.engine.CreateIngredient(ctx, props.Asset)
	if err != nil {
		return nil, wrapError(KindIngredient, "c2pa: engine ingredient extraction failed", err)
	}
	if out == nil {
		return nil, newError(KindIngredient, "c2pa: engine returned no ingredient result")
	}

	var ing manifest.Ingredient
	if err := json.Unmarshal(out.Ingredient, &ing); err != nil {
		return nil, wrapError(KindIngredient, "c2pa: decode ingredient description", err)
	}

	// Resources are tracked in the bundle, never duplicated inline.
	ing.Resources = nil
	ing.Title = props.Title
	ing.Hash = hash

	resources := make(manifest.ResourceStore, len(out.Resources)+1)
	for id, b := range out.Resources {
		resources[id] = append([]byte(nil), b...)
	}

	if ing.Thumbnail == nil {
		tb, err := c.resolveThumbnail(props.Asset, props.Thumbnail)
		if err != nil {
			return nil, wrapError(KindIngredient, "c2pa: thumbnail generation failed", err)
		}
		if tb != nil {
			id := thumbnailIdentifier(&ing)
			ing.Thumbnail = &manifest.ResourceRef{Format: tb.MimeType, Identifier: id}
			resources[id] = append([]byte(nil), tb.Data...)
		}
	}

	return &StorableIngredient{Ingredient: ing, Resources: resources}, nil
}

// thumbnailIdentifier derives a fresh resource identifier from the
// ingredient's instance ID, minting one when the engine supplied none.
func thumbnailIdentifier(ing *manifest.Ingredient) string {
	if ing.InstanceID == "" {
		ing.InstanceID = "xmp:iid:" + uuid.NewString()
	}
	return ing.InstanceID + "/thumbnail"
}
