package level

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the descriptor syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks a format from the file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromName parses a name produced by Format.String.
func FormatFromName(name string) Format {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Extensions returns the file extensions a level directory scan picks up.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// decodeTree turns raw bytes into a generic value tree.
// Objects become map[string]any and numbers stay in their decoder type.
func decodeTree(data []byte, format Format) (any, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseErr(errors.New("empty document"))
		}
		return nil, parseErr(err)
	}

	// A second value after the object is a syntax error, not trailing junk to ignore.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, parseErr(err)
	}
	return root, nil
}

func decodeYAML(data []byte) (any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, parseErr(fmt.Errorf("yaml: %w", err))
	}
	return root, nil
}
