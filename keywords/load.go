package keywords

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Decode reads a raw specification from YAML or JSON.
func Decode(data []byte) (Raw, error) {
	var raw Raw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot decode keyword spec: %w", err)
	}
	if raw == nil {
		raw = Raw{}
	}
	return raw, nil
}

// ReadFile decodes a specification file without validating it.
func ReadFile(path string) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read keyword spec %s: %w", path, err)
	}
	raw, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// Load reads and validates a specification file.
func Load(path string) (Spec, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return Spec{}, err
	}
	return Normalize(raw)
}
