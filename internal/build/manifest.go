package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cruciblehq/cmbuild/internal/paths"
	"github.com/opencontainers/go-digest"
	specs "github.com/opencontainers/image-spec/specs-go"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (

	// Artifact type of the manifest describing a staged output tree.
	ArtifactType = "application/vnd.cmb.build.v1+json"

	MediaTypeNativeLibrary = "application/vnd.cmb.native.library"
	MediaTypeNativeSymbols = "application/vnd.cmb.native.symbols"
	MediaTypeStaticArchive = "application/vnd.cmb.wasm.archive"
)

// Writes an OCI artifact manifest describing files (all under output) to the
// output root and returns its path.
//
// Each file becomes a layer descriptor titled with its slash-separated path
// relative to output. Layers are sorted by title and carry no timestamps, so
// identical inputs produce a byte-identical manifest.
func writeManifest(output string, files []string) (string, error) {
	layers := make([]ocispec.Descriptor, 0, len(files))
	for _, f := range files {
		desc, err := describe(output, f)
		if err != nil {
			return "", err
		}
		layers = append(layers, desc)
	}

	slices.SortFunc(layers, func(a, b ocispec.Descriptor) int {
		return strings.Compare(a.Annotations[ocispec.AnnotationTitle], b.Annotations[ocispec.AnnotationTitle])
	})

	m := ocispec.Manifest{
		Versioned:    specs.Versioned{SchemaVersion: 2},
		MediaType:    ocispec.MediaTypeImageManifest,
		ArtifactType: ArtifactType,
		Config:       ocispec.DescriptorEmptyJSON,
		Layers:       layers,
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}

	path := paths.Manifest(output)
	if err := os.WriteFile(path, append(data, '\n'), paths.DefaultFileMode); err != nil {
		return "", err
	}
	return path, nil
}

// Returns the layer descriptor of a staged file.
func describe(output, file string) (ocispec.Descriptor, error) {
	rel, err := filepath.Rel(output, file)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	f, err := os.Open(file)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	dgst, err := digest.Canonical.FromReader(f)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	return ocispec.Descriptor{
		MediaType:   mediaType(file),
		Digest:      dgst,
		Size:        info.Size(),
		Annotations: map[string]string{ocispec.AnnotationTitle: filepath.ToSlash(rel)},
	}, nil
}

// Returns the media type for a staged file based on its extension.
func mediaType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pdb":
		return MediaTypeNativeSymbols
	case ".a":
		return MediaTypeStaticArchive
	default:
		return MediaTypeNativeLibrary
	}
}
