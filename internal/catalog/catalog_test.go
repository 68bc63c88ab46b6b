package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c := Default()

	wantBrands := []string{"Apple", "Samsung", "Google Pixel"}
	if diff := cmp.Diff(wantBrands, c.Brands()); diff != "" {
		t.Errorf("Brands() mismatch (-want +got):\n%s", diff)
	}

	apple := c.ModelsFor("Apple")
	if len(apple) != 8 {
		t.Fatalf("expected 8 Apple models, got %d", len(apple))
	}
	if apple[0] != "iPhone 15 Pro Max" || apple[7] != "iPhone SE" {
		t.Errorf("Apple models out of order: %v", apple)
	}
	if n := len(c.ModelsFor("Samsung")); n != 6 {
		t.Errorf("expected 6 Samsung models, got %d", n)
	}
	if n := len(c.ModelsFor("Google Pixel")); n != 5 {
		t.Errorf("expected 5 Google Pixel models, got %d", n)
	}
}

func TestModelsForUnknownBrand(t *testing.T) {
	c := Default()

	for _, brand := range []string{"", "Nokia", "apple"} {
		got := c.ModelsFor(brand)
		if got == nil || len(got) != 0 {
			t.Errorf("ModelsFor(%q) = %#v, want empty non-nil list", brand, got)
		}
	}
}

func TestModelsForReturnsCopy(t *testing.T) {
	c := Default()

	models := c.ModelsFor("Samsung")
	models[0] = "changed"

	if got := c.ModelsFor("Samsung")[0]; got != "Galaxy S24 Ultra" {
		t.Errorf("catalog mutated through returned slice: %q", got)
	}
}

func TestHasModel(t *testing.T) {
	c := Default()

	tests := []struct {
		brand string
		model string
		want  bool
	}{
		{"Apple", "iPhone SE", true},
		{"Samsung", "Galaxy A55", true},
		{"Apple", "Galaxy A55", false},
		{"", "iPhone SE", false},
		{"Google Pixel", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.brand+"/"+tt.model, func(t *testing.T) {
			if got := c.HasModel(tt.brand, tt.model); got != tt.want {
				t.Errorf("HasModel(%q, %q) = %v, want %v", tt.brand, tt.model, got, tt.want)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "no entries",
			entries: nil,
			wantErr: "no brands",
		},
		{
			name:    "blank brand",
			entries: []Entry{{Brand: "  ", Models: []string{"A"}}},
			wantErr: "brand name is empty",
		},
		{
			name: "duplicate brand",
			entries: []Entry{
				{Brand: "Nokia", Models: []string{"3310"}},
				{Brand: " Nokia", Models: []string{"8110"}},
			},
			wantErr: "more than once",
		},
		{
			name:    "no models",
			entries: []Entry{{Brand: "Nokia"}},
			wantErr: "has no models",
		},
		{
			name:    "blank model",
			entries: []Entry{{Brand: "Nokia", Models: []string{"3310", ""}}},
			wantErr: "empty model name",
		},
		{
			name:    "duplicate model",
			entries: []Entry{{Brand: "Nokia", Models: []string{"3310", "3310 "}}},
			wantErr: `"3310" more than once`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	data := `brands:
  - brand: Nokia
    models:
      - "3310"
      - "8110"
  - brand: Fairphone
    models:
      - Fairphone 5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := []Entry{
		{Brand: "Nokia", Models: []string{"3310", "8110"}},
		{Brand: "Fairphone", Models: []string{"Fairphone 5"}},
	}
	if diff := cmp.Diff(want, c.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if !c.HasBrand("Apple") {
		t.Error("expected default catalog")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(Default().Entries(), c.Entries()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
