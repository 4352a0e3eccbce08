package resolver

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"contentauth.dev/c2pa/manifest"
)

func TestResolveResource_NilRef(t *testing.T) {
	store := manifest.ResourceStore{"a": []byte{1}}
	if got := ResolveResource(nil, store); got != nil {
		t.Fatalf("nil ref: got %v want nil", got)
	}
}

func TestResolveResource_AbsentIdentifier(t *testing.T) {
	store := manifest.ResourceStore{"a": []byte{1}}
	ref := &manifest.ResourceRef{Format: "image/jpeg", Identifier: "missing"}
	if got := ResolveResource(ref, store); got != nil {
		t.Fatalf("absent identifier: got %v want nil", got)
	}
}

func TestResolveResource_RoundTrip(t *testing.T) {
	want := []byte{0xff, 0xd8, 0xff, 0xe0}
	store := manifest.ResourceStore{"thumb1": want}
	ref := &manifest.ResourceRef{Format: "image/jpeg", Identifier: "thumb1"}

	got := ResolveResource(ref, store)
	if got == nil {
		t.Fatalf("expected resolved resource")
	}
	if got.Format != "image/jpeg" {
		t.Fatalf("format: got %q", got.Format)
	}
	if !bytes.Equal(got.Data, want) {
		t.Fatalf("data mismatch")
	}
}

func TestResolveResource_DefensiveCopy(t *testing.T) {
	store := manifest.ResourceStore{"r": []byte{1, 2, 3}}
	ref := &manifest.ResourceRef{Identifier: "r"}

	got := ResolveResource(ref, store)
	store["r"][0] = 9
	if got.Data[0] != 1 {
		t.Fatalf("resolved bytes aliased the store")
	}
}

func TestResolveIngredient_NoActiveManifest(t *testing.T) {
	store := &manifest.Store{Manifests: map[string]manifest.Manifest{
		"m1": {Title: "anything"},
	}}
	ing := manifest.Ingredient{Title: "component"}

	got := ResolveIngredient(ing, store, nil, nil)
	if got.Manifest != nil {
		t.Fatalf("unset active_manifest must resolve to nil manifest")
	}
}

func TestResolveIngredient_DanglingLabel(t *testing.T) {
	store := &manifest.Store{Manifests: map[string]manifest.Manifest{}}
	ing := manifest.Ingredient{Title: "component", ActiveManifest: "gone"}

	got := ResolveIngredient(ing, store, nil, nil)
	if got.Manifest != nil {
		t.Fatalf("dangling label must resolve to nil manifest, not error")
	}
	if got.ActiveManifest != "gone" {
		t.Fatalf("label must be preserved: got %q", got.ActiveManifest)
	}
}

func TestResolveManifest_EmptyIngredients(t *testing.T) {
	store := &manifest.Store{Manifests: map[string]manifest.Manifest{
		"m1": {Title: "no ingredients"},
	}}
	got := ResolveManifest(store, "m1", nil)
	if got == nil {
		t.Fatalf("expected resolved manifest")
	}
	if got.Ingredients == nil || len(got.Ingredients) != 0 {
		t.Fatalf("absent ingredients must resolve to an empty sequence, got %v", got.Ingredients)
	}
}

func TestResolveManifest_SignatureTime(t *testing.T) {
	store := &manifest.Store{Manifests: map[string]manifest.Manifest{
		"ok":  {SignatureInfo: &manifest.SignatureInfo{Issuer: "CA", Time: "2024-03-01T10:00:00Z"}},
		"bad": {SignatureInfo: &manifest.SignatureInfo{Issuer: "CA", Time: "not-a-time"}},
	}}

	ok := ResolveManifest(store, "ok", nil)
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if ok.SignatureInfo.SignedAt == nil || !ok.SignatureInfo.SignedAt.Equal(want) {
		t.Fatalf("SignedAt: got %v want %v", ok.SignatureInfo.SignedAt, want)
	}
	if ok.SignatureInfo.Raw != "2024-03-01T10:00:00Z" {
		t.Fatalf("Raw must be preserved: got %q", ok.SignatureInfo.Raw)
	}

	// An unparseable time is surfaced as-is, not dropped.
	bad := ResolveManifest(store, "bad", nil)
	if bad.SignatureInfo == nil {
		t.Fatalf("signature info must survive an unparseable time")
	}
	if bad.SignatureInfo.SignedAt != nil {
		t.Fatalf("unparseable time must leave SignedAt unset, got %v", bad.SignatureInfo.SignedAt)
	}
	if bad.SignatureInfo.Raw != "not-a-time" {
		t.Fatalf("Raw must carry the original value: got %q", bad.SignatureInfo.Raw)
	}

	// Serialization reflects the same split: the raw value survives, the
	// parsed field is omitted rather than emitted as a zero date.
	b, err := json.Marshal(bad.SignatureInfo)
	if err != nil {
		t.Fatalf("marshal signature info: %v", err)
	}
	if strings.Contains(string(b), "signed_at") {
		t.Fatalf("unparsed time must not serialize a signed_at field: %s", b)
	}
	if !strings.Contains(string(b), `"time":"not-a-time"`) {
		t.Fatalf("raw time must serialize verbatim: %s", b)
	}
}

func TestResolveStore_KeySetPreserved(t *testing.T) {
	store := &manifest.Store{
		ActiveManifest: "m2",
		Manifests: map[string]manifest.Manifest{
			"m1": {Title: "one"},
			"m2": {Title: "two"},
			"m3": {Title: "three"},
		},
	}
	got := ResolveStore(store, nil)

	if len(got.Manifests) != len(store.Manifests) {
		t.Fatalf("key count: got %d want %d", len(got.Manifests), len(store.Manifests))
	}
	for label := range store.Manifests {
		if _, ok := got.Manifests[label]; !ok {
			t.Fatalf("missing key %q", label)
		}
	}
	if got.ActiveManifest != got.Manifests["m2"] {
		t.Fatalf("active manifest must be the mapping's own entry")
	}
}

func TestResolveStore_AbsentActiveLabel(t *testing.T) {
	store := &manifest.Store{
		ActiveManifest: "missing",
		Manifests:      map[string]manifest.Manifest{"m1": {}},
	}
	got := ResolveStore(store, nil)
	if got.ActiveManifest != nil {
		t.Fatalf("absent active label must resolve to nil")
	}
	if got.ActiveLabel != "missing" {
		t.Fatalf("active label must be preserved")
	}
}

func TestResolveStore_SelfReferencingIngredient(t *testing.T) {
	thumb := []byte("jpeg bytes")
	store := &manifest.Store{
		ActiveManifest: "m1",
		Manifests: map[string]manifest.Manifest{
			"m1": {
				Title: "self",
				Ingredients: []manifest.Ingredient{{
					Title:          "prior state",
					ActiveManifest: "m1",
					Thumbnail:      &manifest.ResourceRef{Format: "image/jpeg", Identifier: "thumb1"},
				}},
			},
		},
	}
	resources := map[string]manifest.ResourceStore{
		"m1": {"thumb1": thumb},
	}

	got := ResolveStore(store, resources)
	m1 := got.Manifests["m1"]
	if m1 == nil {
		t.Fatalf("m1 missing")
	}
	if len(m1.Ingredients) != 1 {
		t.Fatalf("ingredients: got %d want 1", len(m1.Ingredients))
	}
	if m1.Ingredients[0].Manifest != m1 {
		t.Fatalf("self-referencing ingredient must point at the identical resolved manifest")
	}
	if m1.Ingredients[0].Thumbnail == nil || !bytes.Equal(m1.Ingredients[0].Thumbnail.Data, thumb) {
		t.Fatalf("ingredient thumbnail bytes mismatch")
	}
}

func TestResolveStore_SharedLabelResolvedOnce(t *testing.T) {
	store := &manifest.Store{
		Manifests: map[string]manifest.Manifest{
			"base": {Title: "base"},
			"a":    {Ingredients: []manifest.Ingredient{{Title: "x", ActiveManifest: "base"}}},
			"b":    {Ingredients: []manifest.Ingredient{{Title: "y", ActiveManifest: "base"}}},
		},
	}
	got := ResolveStore(store, nil)

	base := got.Manifests["base"]
	if got.Manifests["a"].Ingredients[0].Manifest != base {
		t.Fatalf("a must share the resolved base manifest")
	}
	if got.Manifests["b"].Ingredients[0].Manifest != base {
		t.Fatalf("b must share the resolved base manifest")
	}
}

func TestResolveStore_Idempotent(t *testing.T) {
	store := &manifest.Store{
		ActiveManifest: "m1",
		Manifests: map[string]manifest.Manifest{
			"m1": {
				Title:         "root",
				Thumbnail:     &manifest.ResourceRef{Format: "image/png", Identifier: "t"},
				SignatureInfo: &manifest.SignatureInfo{Issuer: "CA", Time: "2024-01-01T00:00:00Z"},
				Ingredients: []manifest.Ingredient{
					{Title: "i1", ActiveManifest: "m2"},
					{Title: "i2"},
				},
			},
			"m2": {Title: "leaf"},
		},
		ValidationStatus: []manifest.ValidationStatus{{Code: "claimSignature.validated"}},
	}
	resources := map[string]manifest.ResourceStore{
		"m1": {"t": []byte{1, 2}},
	}

	a := ResolveStore(store, resources)
	b := ResolveStore(store, resources)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("resolving twice with unchanged inputs must be structurally equal")
	}
}

func TestResolveStore_ValidationStatusDefaultsEmpty(t *testing.T) {
	got := ResolveStore(&manifest.Store{Manifests: map[string]manifest.Manifest{}}, nil)
	if got.ValidationStatus == nil || len(got.ValidationStatus) != 0 {
		t.Fatalf("validation status must default to an empty sequence")
	}
}
