package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultCatalogYAML = `plans:
  - id: 1
    vegetarian: true
    meals:
      - name: Breakfast
        description: Vegan protein smoothie bowl
        calories: 300
      - name: Lunch
        description: Quinoa and black bean salad
        calories: 400
      - name: Snack
        description: Mixed nuts and dried fruits
        calories: 150
      - name: Dinner
        description: Grilled vegetable skewers with hummus
        calories: 350
    ingredients:
      - Vegan protein powder
      - Berries
      - Quinoa
      - Black beans
      - Mixed nuts
      - Dried fruits
      - Assorted vegetables
      - Hummus
  - id: 2
    vegetarian: false
    meals:
      - name: Breakfast
        description: Greek yogurt with honey and walnuts
        calories: 300
      - name: Lunch
        description: Grilled chicken caesar salad
        calories: 400
      - name: Snack
        description: Apple slices with almond butter
        calories: 150
      - name: Dinner
        description: Baked salmon with roasted vegetables
        calories: 400
    ingredients:
      - Greek yogurt
      - Honey
      - Walnuts
      - Chicken breast
      - Romaine lettuce
      - Caesar dressing
      - Apple
      - Almond butter
      - Salmon fillet
      - Assorted vegetables
`

// Default returns the built-in two-plan catalog.
func Default() Catalog {
	c, err := Parse([]byte(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates a YAML catalog payload.
func Parse(data []byte) (Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Catalog{}, fmt.Errorf("catalog: payload is empty")
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}
	normalized, err := c.Normalized()
	if err != nil {
		return Catalog{}, err
	}
	return normalized, nil
}

// Marshal encodes the catalog in the same YAML layout Parse accepts.
func Marshal(c Catalog) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return data, nil
}

// Load reads a catalog from a single YAML file or from a directory of them.
func Load(path string) (Catalog, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Catalog{}, fmt.Errorf("catalog: path is required")
	}
	info, err := os.Stat(trimmed)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: stat %s: %w", trimmed, err)
	}
	if info.IsDir() {
		return LoadDir(trimmed)
	}
	return LoadFile(trimmed)
}

// LoadFile reads one YAML catalog file from disk.
func LoadFile(path string) (Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Catalog{}, fmt.Errorf("catalog: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// LoadDir merges every *.yaml / *.yml file in dir, in path order. A missing
// directory yields an empty catalog.
func LoadDir(dir string) (Catalog, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return Catalog{}, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", trimmed, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(trimmed, entry.Name()))
	}
	sort.Strings(paths)
	parts := make([]Catalog, 0, len(paths))
	for _, path := range paths {
		part, err := LoadFile(path)
		if err != nil {
			return Catalog{}, err
		}
		parts = append(parts, part)
	}
	merged, err := Merge(parts...)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %s: %w", trimmed, err)
	}
	return merged, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
