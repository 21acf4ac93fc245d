package field

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a field definition from a .yaml, .yml or .json file.
func Load(path string) (*Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("field: decode %s: %w", path, err)
	}
	return f, nil
}

// Decode parses data in the format named by ext (".yaml", ".yml" or ".json")
// and fills in missing defaults.
func Decode(data []byte, ext string) (*Field, error) {
	f := &Field{}
	var err error
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, f)
	case ".json":
		err = json.Unmarshal(data, f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	f.normalize()
	return f, nil
}

// Encode is the inverse of Decode.
func Encode(f *Field, ext string) ([]byte, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".yaml", ".yml":
		return yaml.Marshal(f)
	case ".json":
		return json.MarshalIndent(f, "", "  ")
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
}

// Save writes f to path, choosing the encoding from the extension.
func Save(path string, f *Field) error {
	data, err := Encode(f, filepath.Ext(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize fills defaults left out of hand-written files.
func (f *Field) normalize() {
	for i, w := range f.Wells {
		if w.ID == "" {
			w.ID = fmt.Sprintf("w%d", i+1)
		}
		if w.Name == "" {
			w.Name = w.ID
		}
		if w.Kind == "" {
			w.Kind = Platform
		}
		w.Kind = WellKind(strings.ToLower(string(w.Kind)))
		if s, err := ParseStructure(string(w.Structure)); err == nil {
			w.Structure = s
		}
		for j := range w.Components {
			c := &w.Components[j]
			c.Kind = ComponentKind(strings.ToLower(string(c.Kind)))
			if c.ID == "" {
				c.ID = NewComponentID(c.Kind)
			}
		}
	}
}
