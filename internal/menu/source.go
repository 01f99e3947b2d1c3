package menu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a menu file.
//
//	items:
//	  - id: home
//	    name: Home
//	    href: /
type File struct {
	Items []Item `yaml:"items" toml:"items"`
}

// LoadFile reads an ordered item list from a .yaml, .yml or .toml file.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	return Decode(filepath.Ext(path), data)
}

// Decode parses menu file contents. ext selects the format and includes the
// leading dot.
func Decode(ext string, data []byte) ([]Item, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml menu: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse toml menu: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported menu file extension %q", ext)
	}

	for i := range f.Items {
		f.Items[i].ID = strings.TrimSpace(f.Items[i].ID)
		f.Items[i].Name = strings.TrimSpace(f.Items[i].Name)
		f.Items[i].Href = strings.TrimSpace(f.Items[i].Href)
	}
	if err := ValidateItems(f.Items); err != nil {
		return nil, err
	}
	return f.Items, nil
}
