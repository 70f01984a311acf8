package source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tably-labs/tably/pkg/frame"
)

// Schema declares column kinds for a dataset, overriding inference.
// Datasets name their sidecar schema "<dataset>.schema.yaml" next to the
// data file.
type Schema struct {
	// Index names the column to install as the frame's index.
	Index string `yaml:"index"`

	// Columns maps column names to kind names: bool, int, float, string.
	Columns map[string]string `yaml:"columns"`
}

// Kind resolves the declared kind for a column; ok is false when the
// schema does not pin the column.
func (s *Schema) Kind(column string) (frame.Kind, bool, error) {
	if s == nil {
		return frame.KindAny, false, nil
	}
	name, ok := s.Columns[column]
	if !ok {
		return frame.KindAny, false, nil
	}
	k, err := parseKind(name)
	if err != nil {
		return frame.KindAny, false, fmt.Errorf("column %q: %w", column, err)
	}
	return k, true, nil
}

func parseKind(name string) (frame.Kind, error) {
	switch strings.ToLower(name) {
	case "bool":
		return frame.KindBool, nil
	case "int", "integer":
		return frame.KindInt, nil
	case "float", "number":
		return frame.KindFloat, nil
	case "string", "text":
		return frame.KindString, nil
	default:
		return frame.KindAny, fmt.Errorf("unknown kind %q (want bool, int, float, or string)", name)
	}
}

// LoadSchema parses a schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	// Validate kinds up front so bad schemas fail at load, not mid-parse.
	for col, kind := range s.Columns {
		if _, err := parseKind(kind); err != nil {
			return nil, fmt.Errorf("schema %s, column %q: %w", path, col, err)
		}
	}
	return &s, nil
}

// sidecarSchema loads "<base>.schema.yaml" next to a data file if it
// exists; a missing sidecar is not an error.
func sidecarSchema(dataPath string) (*Schema, error) {
	base := strings.TrimSuffix(dataPath, ".csv")
	for _, ext := range []string{".schema.yaml", ".schema.yml"} {
		path := base + ext
		if _, err := os.Stat(path); err == nil {
			return LoadSchema(path)
		}
	}
	return nil, nil
}
