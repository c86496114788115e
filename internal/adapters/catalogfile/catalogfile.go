// Package catalogfile loads the item catalog and best-in-slot list from YAML.
package catalogfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/lootcouncil/internal/domain/catalog"
	"github.com/okian/lootcouncil/internal/domain/model"
)

// File is the on-disk layout.
type File struct {
	Items     []model.Item            `yaml:"items"`
	Tokens    []model.TokenMapping    `yaml:"tokens"`
	Catalysts []model.CatalystMapping `yaml:"catalysts"`
	Bis       []model.BisEntry        `yaml:"bis"`
}

// Data is a loaded file: the indexed catalog plus the raw BIS entries.
type Data struct {
	Catalog *catalog.Catalog
	Bis     []model.BisEntry
}

// Load reads and parses the file at path.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoadCatalog, path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates YAML catalog data.
func Parse(raw []byte) (*Data, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse catalog yaml: %v", ErrLoadCatalog, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &Data{
		Catalog: catalog.New(f.Items, f.Tokens, f.Catalysts),
		Bis:     f.Bis,
	}, nil
}

func (f *File) validate() error {
	ids := make(map[int]struct{}, len(f.Items))
	for i, it := range f.Items {
		if it.ID <= 0 {
			return fmt.Errorf("%w: item #%d has no id", ErrLoadCatalog, i)
		}
		if !it.Slot.Valid() {
			return fmt.Errorf("%w: item %d has unknown slot %q", ErrLoadCatalog, it.ID, it.Slot)
		}
		ids[it.ID] = struct{}{}
	}
	for _, t := range f.Tokens {
		if _, ok := ids[t.ItemID]; !ok {
			return fmt.Errorf("%w: token %d maps to unknown item %d", ErrLoadCatalog, t.TokenID, t.ItemID)
		}
		if !t.ClassID.Valid() {
			return fmt.Errorf("%w: token %d has class %d", ErrLoadCatalog, t.TokenID, t.ClassID)
		}
	}
	for _, c := range f.Catalysts {
		if _, ok := ids[c.CatalyzedItemID]; !ok {
			return fmt.Errorf("%w: catalyst of %d targets unknown item %d", ErrLoadCatalog, c.ItemID, c.CatalyzedItemID)
		}
	}
	for _, b := range f.Bis {
		if b.ItemID <= 0 {
			return fmt.Errorf("%w: bis entry without item id", ErrLoadCatalog)
		}
	}
	return nil
}
