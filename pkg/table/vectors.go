package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hassetower/pkg/poset"
)

// ErrUnsupportedFormat is returned for vector files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported vector file format")

// Vector file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFromPath returns the vector file format implied by the extension of
// path, or "" if it is not recognized.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return ""
}

// LoadVectors reads an entity to vector mapping from a JSON, YAML or TOML
// file, chosen by extension. Entities are returned sorted by name.
func LoadVectors(path string) ([]poset.Entity, error) {
	format := FormatFromPath(path)
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entities, err := DecodeVectors(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entities, nil
}

// DecodeVectors decodes an entity to vector mapping in the given format.
// Negative counts are rejected. An empty document yields no entities.
func DecodeVectors(r io.Reader, format string) ([]poset.Entity, error) {
	m := map[string][]int{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&m)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&m)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	vectors := make(map[string]poset.Vector, len(m))
	for name, v := range m {
		vectors[name] = poset.Vector(v)
	}
	return poset.FromMap(vectors)
}
