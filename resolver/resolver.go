// Package resolver transforms a flat manifest store into a fully
// dereferenced tree: every resource reference replaced by resolved
// {format, data} pairs and every manifest-label reference replaced by the
// resolved manifest object itself.
//
// Resolution never fails. Any unresolvable reference degrades to nil, which
// is a legitimate "not embedded" state. All routines are pure and
// synchronous; resolved structures share no bytes with the input stores.
package resolver

import (
	"sort"
	"time"

	"contentauth.dev/c2pa/manifest"
)

// Resource is a dereferenced resource: format plus a private copy of the
// referenced bytes.
type Resource struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

// SignatureInfo is the resolved view of a manifest's signature metadata.
//
// Raw always preserves the serialized time exactly as the engine reported
// it. SignedAt is the parsed value and stays nil when Raw does not parse,
// so serialization omits it instead of emitting a zero date; an unparseable
// time is surfaced through Raw, never dropped.
type SignatureInfo struct {
	Alg              string     `json:"alg,omitempty"`
	Issuer           string     `json:"issuer,omitempty"`
	CertSerialNumber string     `json:"cert_serial_number,omitempty"`
	SignedAt         *time.Time `json:"signed_at,omitempty"`
	Raw              string     `json:"time,omitempty"`
}

// ResolvedIngredient is an ingredient with its thumbnail dereferenced and
// its manifest label replaced by the resolved manifest object.
type ResolvedIngredient struct {
	Title            string                      `json:"title"`
	Format           string                      `json:"format,omitempty"`
	DocumentID       string                      `json:"document_id,omitempty"`
	InstanceID       string                      `json:"instance_id,omitempty"`
	Relationship     string                      `json:"relationship,omitempty"`
	Hash             string                      `json:"hash,omitempty"`
	ValidationStatus []manifest.ValidationStatus `json:"validation_status,omitempty"`

	// ActiveManifest is the original label, preserved for serialization.
	ActiveManifest string `json:"active_manifest,omitempty"`

	// Manifest is the resolved manifest the label points to, or nil when the
	// label is unset or not embedded in the store. Resolved manifests are
	// shared: an ingredient referencing its own store entry points at the
	// identical object. Excluded from JSON since the graph may be cyclic;
	// serialize the owning store and follow labels instead.
	Manifest *ResolvedManifest `json:"-"`

	Thumbnail *Resource `json:"thumbnail,omitempty"`
}

// ResolvedManifest is a manifest with every reference dereferenced.
type ResolvedManifest struct {
	Label          string               `json:"label,omitempty"`
	ClaimGenerator string               `json:"claim_generator,omitempty"`
	Title          string               `json:"title,omitempty"`
	Format         string               `json:"format,omitempty"`
	InstanceID     string               `json:"instance_id,omitempty"`
	Thumbnail      *Resource            `json:"thumbnail,omitempty"`
	Ingredients    []ResolvedIngredient `json:"ingredients"`
	SignatureInfo  *SignatureInfo       `json:"signature_info,omitempty"`
}

// ResolvedStore is the externally visible output of a read: a tree the
// caller can traverse without further lookups. No field is a dangling
// reference; unresolved references are explicit nils.
type ResolvedStore struct {
	// ActiveManifest points at the entry of Manifests named by the store's
	// active label, or nil when the label is unset or absent.
	ActiveManifest *ResolvedManifest `json:"-"`

	// ActiveLabel is the store's active label, preserved for serialization.
	ActiveLabel string `json:"active_manifest,omitempty"`

	Manifests        map[string]*ResolvedManifest `json:"manifests"`
	ValidationStatus []manifest.ValidationStatus  `json:"validation_status"`
}

// ResolveResource dereferences ref against store. A nil ref or an absent
// identifier resolves to nil, never an error. The returned bytes are a
// defensive copy; later mutation of the store cannot corrupt them.
func ResolveResource(ref *manifest.ResourceRef, store manifest.ResourceStore) *Resource {
	if ref == nil {
		return nil
	}
	data, ok := store[ref.Identifier]
	if !ok {
		return nil
	}
	return &Resource{
		Format: ref.Format,
		Data:   append([]byte(nil), data...),
	}
}

// ResolveIngredient resolves one flat ingredient record against its owning
// store. resources is the resource store of the manifest that carries the
// ingredient. A dangling ActiveManifest label yields a nil Manifest field.
func ResolveIngredient(ing manifest.Ingredient, store *manifest.Store, storeResources map[string]manifest.ResourceStore, resources manifest.ResourceStore) ResolvedIngredient {
	r := newStoreResolver(store, storeResources)
	return r.ingredient(ing, resources)
}

// ResolveManifest resolves the manifest named by label, or returns nil when
// the label is absent from the store.
func ResolveManifest(store *manifest.Store, label string, storeResources map[string]manifest.ResourceStore) *ResolvedManifest {
	return newStoreResolver(store, storeResources).manifest(label)
}

// ResolveStore resolves every manifest in the store. The key set of the
// resolved mapping equals the key set of store.Manifests exactly. Each label
// is resolved at most once; a manifest reachable through several ingredient
// paths is shared by pointer rather than re-resolved.
func ResolveStore(store *manifest.Store, storeResources map[string]manifest.ResourceStore) *ResolvedStore {
	r := newStoreResolver(store, storeResources)

	labels := make([]string, 0, len(store.Manifests))
	for label := range store.Manifests {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := &ResolvedStore{
		ActiveLabel:      store.ActiveManifest,
		Manifests:        make(map[string]*ResolvedManifest, len(labels)),
		ValidationStatus: append([]manifest.ValidationStatus{}, store.ValidationStatus...),
	}
	for _, label := range labels {
		out.Manifests[label] = r.manifest(label)
	}
	if store.ActiveManifest != "" {
		out.ActiveManifest = out.Manifests[store.ActiveManifest]
	}
	return out
}

// storeResolver memoizes per-label resolution within one pass. The shell of
// a resolved manifest enters the memo before its ingredients are resolved,
// so reference cycles (including self-references) terminate and resolve to
// the already-allocated object.
type storeResolver struct {
	store     *manifest.Store
	resources map[string]manifest.ResourceStore
	resolved  map[string]*ResolvedManifest
}

func newStoreResolver(store *manifest.Store, resources map[string]manifest.ResourceStore) *storeResolver {
	return &storeResolver{
		store:     store,
		resources: resources,
		resolved:  make(map[string]*ResolvedManifest, len(store.Manifests)),
	}
}

func (r *storeResolver) manifest(label string) *ResolvedManifest {
	if m, ok := r.resolved[label]; ok {
		return m
	}
	src, ok := r.store.Manifests[label]
	if !ok {
		return nil
	}

	out := &ResolvedManifest{Label: label}
	r.resolved[label] = out

	resources := r.resources[label]
	out.ClaimGenerator = src.ClaimGenerator
	out.Title = src.Title
	out.Format = src.Format
	out.InstanceID = src.InstanceID
	out.SignatureInfo = resolveSignatureInfo(src.SignatureInfo)
	out.Thumbnail = ResolveResource(src.Thumbnail, resources)
	out.Ingredients = make([]ResolvedIngredient, 0, len(src.Ingredients))
	for _, ing := range src.Ingredients {
		out.Ingredients = append(out.Ingredients, r.ingredient(ing, resources))
	}
	return out
}

func (r *storeResolver) ingredient(ing manifest.Ingredient, resources manifest.ResourceStore) ResolvedIngredient {
	out := ResolvedIngredient{
		Title:            ing.Title,
		Format:           ing.Format,
		DocumentID:       ing.DocumentID,
		InstanceID:       ing.InstanceID,
		Relationship:     ing.Relationship,
		Hash:             ing.Hash,
		ActiveManifest:   ing.ActiveManifest,
		ValidationStatus: append([]manifest.ValidationStatus(nil), ing.ValidationStatus...),
		Thumbnail:        ResolveResource(ing.Thumbnail, resources),
	}
	if ing.ActiveManifest != "" {
		out.Manifest = r.manifest(ing.ActiveManifest)
	}
	return out
}

func resolveSignatureInfo(si *manifest.SignatureInfo) *SignatureInfo {
	if si == nil {
		return nil
	}
	out := &SignatureInfo{
		Alg:              si.Alg,
		Issuer:           si.Issuer,
		CertSerialNumber: si.CertSerialNumber,
		Raw:              si.Time,
	}
	if si.Time != "" {
		if t, err := time.Parse(time.RFC3339, si.Time); err == nil {
			out.SignedAt = &t
		}
	}
	return out
}
