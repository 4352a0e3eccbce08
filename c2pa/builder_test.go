package c2pa

import (
	"encoding/json"
	"testing"

	"contentauth.dev/c2pa/engine"
	"contentauth.dev/c2pa/manifest"
)

func TestManifestBuilder_SnapshotIsolation(t *testing.T) {
	b := NewManifestBuilder(Definition{Title: "t"})
	snap := b.Definition()
	snap.Title = "mutated"
	snap.Ingredients = append(snap.Ingredients, manifest.Ingredient{Title: "sneaky"})

	if got := b.Definition(); got.Title != "t" || len(got.Ingredients) != 0 {
		t.Fatalf("mutating a snapshot must not affect the builder: %+v", got)
	}
}

func TestManifestBuilder_AsSendable(t *testing.T) {
	b := NewManifestBuilder(Definition{
		ClaimGenerator: "app/1.0",
		Title:          "photo",
		Format:         "image/jpeg",
	})
	b.AddAssertion("c2pa.actions", json.RawMessage(`{"actions":[{"action":"c2pa.created"}]}`))
	b.AddIngredient(manifest.Ingredient{Title: "source", InstanceID: "xmp:iid:1"})
	b.AddThumbnail(engine.BufferAsset{MimeType: "image/jpeg", Data: []byte{0xff}})

	raw, err := b.AsSendable()
	if err != nil {
		t.Fatalf("AsSendable: %v", err)
	}

	var got Definition
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got.Title != "photo" || got.ClaimGenerator != "app/1.0" {
		t.Fatalf("definition fields lost: %+v", got)
	}
	if len(got.Assertions) != 1 || got.Assertions[0].Label != "c2pa.actions" {
		t.Fatalf("assertion lost: %+v", got.Assertions)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].InstanceID != "xmp:iid:1" {
		t.Fatalf("ingredient lost: %+v", got.Ingredients)
	}
	if got.Thumbnail == nil || got.Thumbnail.MimeType != "image/jpeg" {
		t.Fatalf("thumbnail lost: %+v", got.Thumbnail)
	}
}
