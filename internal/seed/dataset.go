package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/johnwards/foodorder/internal/store"
)

//go:embed data/dataset.json
var defaultDataset []byte

// Dataset is the static seed input. Menu items reference categories and
// customizations by name.
type Dataset struct {
	Categories     []CategorySeed      `json:"categories"`
	Customizations []CustomizationSeed `json:"customizations"`
	Menu           []MenuItemSeed      `json:"menu"`
}

// CategorySeed is one dataset category.
type CategorySeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CustomizationSeed is one dataset customization.
type CustomizationSeed struct {
	Name  string                  `json:"name"`
	Price decimal.Decimal         `json:"price"`
	Type  store.CustomizationType `json:"type"`
}

// MenuItemSeed is one dataset menu item.
type MenuItemSeed struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Price          decimal.Decimal `json:"price"`
	Rating         float64         `json:"rating"`
	Calories       int             `json:"calories"`
	Protein        int             `json:"protein"`
	CategoryName   string          `json:"category_name"`
	Customizations []string        `json:"customizations"`
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// LoadFile reads and validates a dataset from a JSON file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load decodes and validates a JSON dataset.
func Load(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the shape of every entry: names present and unique per
// collection, prices non-negative, customization types known. Cross
// references are left to the run's ReferencePolicy.
func (d *Dataset) Validate() error {
	var errs []error

	seen := map[string]bool{}
	for i, c := range d.Categories {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
		case seen[c.Name]:
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate name %q", i, c.Name))
		}
		seen[c.Name] = true
	}

	seen = map[string]bool{}
	for i, c := range d.Customizations {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("customizations[%d]: name is required", i))
		case seen[c.Name]:
			errs = append(errs, fmt.Errorf("customizations[%d]: duplicate name %q", i, c.Name))
		}
		seen[c.Name] = true
		if c.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("customizations[%d]: price must not be negative", i))
		}
		if !c.Type.Valid() {
			errs = append(errs, fmt.Errorf("customizations[%d]: unknown type %q", i, c.Type))
		}
	}

	seen = map[string]bool{}
	for i, m := range d.Menu {
		switch {
		case m.Name == "":
			errs = append(errs, fmt.Errorf("menu[%d]: name is required", i))
		case seen[m.Name]:
			errs = append(errs, fmt.Errorf("menu[%d]: duplicate name %q", i, m.Name))
		}
		seen[m.Name] = true
		if m.ImageURL == "" {
			errs = append(errs, fmt.Errorf("menu[%d]: image_url is required", i))
		}
		if m.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("menu[%d]: price must not be negative", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid dataset: %w", errors.Join(errs...))
	}
	return nil
}

// CheckReferences returns a ReferentialGapError for the first menu item that
// names a category or customization missing from the dataset.
func (d *Dataset) CheckReferences() error {
	categories := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		categories[c.Name] = true
	}
	customizations := make(map[string]bool, len(d.Customizations))
	for _, c := range d.Customizations {
		customizations[c.Name] = true
	}

	for _, m := range d.Menu {
		if !categories[m.CategoryName] {
			return &ReferentialGapError{Kind: RefCategory, Item: m.Name, Name: m.CategoryName}
		}
		for _, name := range m.Customizations {
			if !customizations[name] {
				return &ReferentialGapError{Kind: RefCustomization, Item: m.Name, Name: name}
			}
		}
	}
	return nil
}
