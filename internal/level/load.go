package level

import (
	"fmt"
	"io"
	"os"
)

// Load reads and validates the descriptor at path.
// The format is picked from the extension; every call re-reads the file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading %s: %w", path, err)
	}
	return ParseFormat(data, FormatFromPath(path))
}

// Parse validates a JSON descriptor.
func Parse(data []byte) (*Spec, error) {
	return ParseFormat(data, FormatJSON)
}

// ParseFormat validates a descriptor in the given format.
func ParseFormat(data []byte, format Format) (*Spec, error) {
	root, err := decodeTree(data, format)
	if err != nil {
		return nil, err
	}
	return build(root)
}

// Decode reads all of r and validates it as a descriptor.
func Decode(r io.Reader, format Format) (*Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("level: reading descriptor: %w", err)
	}
	return ParseFormat(data, format)
}
