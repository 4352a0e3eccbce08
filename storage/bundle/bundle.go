// Package bundle serializes a storable ingredient to a deterministic TAR
// archive: the ingredient record plus every resource it references, each
// resource bound to a content ID so imports are verifiable.
package bundle

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"contentauth.dev/c2pa/c2pa"
	"contentauth.dev/c2pa/hashutil"
	"contentauth.dev/c2pa/manifest"
	"contentauth.dev/c2pa/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

const (
	ingredientEntry = "ingredient.json"
	indexEntry      = "index.json"
	resourcePrefix  = "resources/"
)

type indexResource struct {
	Identifier string `json:"identifier"`
	CID        string `json:"cid"`
	Size       int    `json:"size"`
}

type indexJSON struct {
	Version   int             `json:"version"`
	Multihash string          `json:"multihash"`
	Resources []indexResource `json:"resources"`
}

// Export writes a deterministic TAR bundle for the ingredient: entry order
// is fixed (ingredient, index, then resources in lexicographic identifier
// order) and TAR headers are normalized, so the same bundle always
// produces identical bytes.
func Export(w io.Writer, ing *c2pa.StorableIngredient) error {
	if ing == nil {
		return fmt.Errorf("bundle: nil ingredient")
	}
	if ref := ing.Ingredient.Thumbnail; ref != nil {
		if _, ok := ing.Resources[ref.Identifier]; !ok {
			return fmt.Errorf("bundle: thumbnail identifier %q has no resource entry", ref.Identifier)
		}
	}

	ids := make([]string, 0, len(ing.Resources))
	for id := range ing.Resources {
		if id == "" {
			return fmt.Errorf("bundle: empty resource identifier")
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	idx := indexJSON{Version: FormatVersion, Multihash: "sha2-256"}
	for _, id := range ids {
		b := ing.Resources[id]
		idx.Resources = append(idx.Resources, indexResource{
			Identifier: id,
			CID:        hashutil.ContentID(b),
			Size:       len(b),
		})
	}

	ingBytes, err := json.Marshal(ing.Ingredient)
	if err != nil {
		return fmt.Errorf("bundle: encode ingredient: %w", err)
	}
	idxBytes, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("bundle: encode index: %w", err)
	}

	tw := tar.NewWriter(w)
	if err := writeFile(tw, ingredientEntry, ingBytes); err != nil {
		_ = tw.Close()
		return err
	}
	if err := writeFile(tw, indexEntry, idxBytes); err != nil {
		_ = tw.Close()
		return err
	}
	for _, id := range ids {
		if err := writeFile(tw, resourcePrefix+id, ing.Resources[id]); err != nil {
			_ = tw.Close()
			return err
		}
	}
	return tw.Close()
}

// Import reads a bundle and reconstructs the storable ingredient. Every
// resource is validated against the index's content ID; unknown entries
// cause an error (fail-closed).
func Import(r io.Reader) (*c2pa.StorableIngredient, error) {
	tr := tar.NewReader(r)

	var ingBytes, idxBytes []byte
	resources := manifest.ResourceStore{}

	for {
		h, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return nil, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			return nil, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return nil, err
		}

		switch {
		case name == ingredientEntry:
			ingBytes = payload
		case name == indexEntry:
			idxBytes = payload
		case strings.HasPrefix(name, resourcePrefix):
			resources[strings.TrimPrefix(name, resourcePrefix)] = payload
		default:
			return nil, fmt.Errorf("bundle: unknown entry: %s", name)
		}
	}

	if ingBytes == nil {
		return nil, fmt.Errorf("bundle: missing %s", ingredientEntry)
	}
	if idxBytes == nil {
		return nil, fmt.Errorf("bundle: missing %s", indexEntry)
	}

	var idx indexJSON
	if err := json.Unmarshal(idxBytes, &idx); err != nil {
		return nil, fmt.Errorf("bundle: decode index: %w", err)
	}
	if idx.Version != FormatVersion {
		return nil, fmt.Errorf("bundle: unsupported format version %d", idx.Version)
	}
	if len(idx.Resources) != len(resources) {
		return nil, fmt.Errorf("bundle: index lists %d resources, archive has %d", len(idx.Resources), len(resources))
	}
	for _, res := range idx.Resources {
		b, ok := resources[res.Identifier]
		if !ok {
			return nil, fmt.Errorf("bundle: indexed resource %q missing from archive", res.Identifier)
		}
		if got := hashutil.ContentID(b); got != res.CID {
			return nil, storage.ErrCIDMismatch
		}
	}

	var ing manifest.Ingredient
	if err := json.Unmarshal(ingBytes, &ing); err != nil {
		return nil, fmt.Errorf("bundle: decode ingredient: %w", err)
	}
	if ref := ing.Thumbnail; ref != nil {
		if _, ok := resources[ref.Identifier]; !ok {
			return nil, fmt.Errorf("bundle: thumbnail identifier %q has no resource entry", ref.Identifier)
		}
	}

	return &c2pa.StorableIngredient{Ingredient: ing, Resources: resources}, nil
}

func writeFile(tw *tar.Writer, name string, b []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o444,
		Size:     int64(len(b)),
		Typeflag: tar.TypeReg,
		Format:   tar.FormatPAX,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(b)
	return err
}

func cleanTarPath(name string) string {
	cleaned := path.Clean(strings.TrimPrefix(name, "./"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return ""
	}
	return cleaned
}
