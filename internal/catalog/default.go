package catalog

var defaultEntries = []Entry{
	{
		Brand: "Apple",
		Models: []string{
			"iPhone 15 Pro Max",
			"iPhone 15 Pro",
			"iPhone 15 Plus",
			"iPhone 15",
			"iPhone 14 Pro Max",
			"iPhone 14 Pro",
			"iPhone 14",
			"iPhone SE",
		},
	},
	{
		Brand: "Samsung",
		Models: []string{
			"Galaxy S24 Ultra",
			"Galaxy S24+",
			"Galaxy S24",
			"Galaxy Z Fold 5",
			"Galaxy Z Flip 5",
			"Galaxy A55",
		},
	},
	{
		Brand: "Google Pixel",
		Models: []string{
			"Pixel 8 Pro",
			"Pixel 8",
			"Pixel 7a",
			"Pixel Fold",
			"Pixel 7 Pro",
		},
	},
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}

// Load returns the catalog at path, or the default catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
