package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Entry is one brand and its models in display order.
type Entry struct {
	Brand  string   `yaml:"brand" json:"brand"`
	Models []string `yaml:"models" json:"models"`
}

// File is the on-disk layout of a catalog override.
type File struct {
	Brands []Entry `yaml:"brands"`
}

// Catalog maps brands to ordered model lists.
type Catalog struct {
	brands []string
	models map[string][]string
}

// ErrEmpty is returned when a catalog has no brands.
var ErrEmpty = errors.New("catalog has no brands")

// New builds a catalog from entries, preserving their order.
// Brand and model names are trimmed. Brands must be unique and each brand
// needs at least one model; models must be unique within their brand.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		brands: make([]string, 0, len(entries)),
		models: make(map[string][]string, len(entries)),
	}

	for i, e := range entries {
		brand := strings.TrimSpace(e.Brand)
		if brand == "" {
			return nil, fmt.Errorf("entry %d: brand name is empty", i+1)
		}
		if _, exists := c.models[brand]; exists {
			return nil, fmt.Errorf("brand %q listed more than once", brand)
		}

		models := lo.Map(e.Models, func(m string, _ int) string { return strings.TrimSpace(m) })
		if len(models) == 0 {
			return nil, fmt.Errorf("brand %q has no models", brand)
		}
		if lo.Contains(models, "") {
			return nil, fmt.Errorf("brand %q has an empty model name", brand)
		}
		if dups := lo.FindDuplicates(models); len(dups) > 0 {
			return nil, fmt.Errorf("brand %q lists %q more than once", brand, dups[0])
		}

		c.brands = append(c.brands, brand)
		c.models[brand] = models
	}

	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Brands)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Brands returns the brand names in display order.
func (c *Catalog) Brands() []string {
	return append([]string(nil), c.brands...)
}

// ModelsFor returns the models of brand in display order, or an empty list
// when the brand is unknown or empty. The result is a copy.
func (c *Catalog) ModelsFor(brand string) []string {
	models, ok := c.models[brand]
	if !ok {
		return []string{}
	}
	return append([]string(nil), models...)
}

// HasBrand reports whether brand is in the catalog.
func (c *Catalog) HasBrand(brand string) bool {
	_, ok := c.models[brand]
	return ok
}

// HasModel reports whether model is listed under brand.
func (c *Catalog) HasModel(brand, model string) bool {
	return lo.Contains(c.models[brand], model)
}

// Entries returns the catalog contents in display order.
func (c *Catalog) Entries() []Entry {
	return lo.Map(c.brands, func(b string, _ int) Entry {
		return Entry{Brand: b, Models: c.ModelsFor(b)}
	})
}

// Marshal encodes the catalog in the layout Parse accepts.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(File{Brands: c.Entries()})
}
