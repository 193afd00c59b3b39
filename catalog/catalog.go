package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/rightsdesk/core"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// Catalog is a set of rights and template entries loaded from YAML.
type Catalog struct {
	Rights    []*core.RightsEntry   `yaml:"rights"`
	Templates []*core.TemplateEntry `yaml:"templates"`
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return &cat, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return &cat, nil
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	cat, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return cat
}

// AssignIDs gives content-based IDs to entries that have none.
func (c *Catalog) AssignIDs() {
	for _, entry := range c.Rights {
		if entry.Id == 0 {
			entry.Id = core.ContentID(core.KindRights, entry.Title)
		}
	}
	for _, entry := range c.Templates {
		if entry.Id == 0 {
			entry.Id = core.ContentID(core.KindTemplate, entry.Title)
		}
	}
}

// Validate checks every entry and rejects duplicate IDs within a kind.
// Entries without an ID are checked against the ID they would be assigned.
func (c *Catalog) Validate() error {
	seen := make(map[core.ID]bool, len(c.Rights))
	for i, entry := range c.Rights {
		if entry == nil {
			return fmt.Errorf("%w: rights[%d] is empty", ErrInvalidCatalog, i)
		}
		if err := core.ValidateRightsEntry(entry); err != nil {
			return fmt.Errorf("%w: rights[%d]: %w", ErrInvalidCatalog, i, err)
		}
		id := entry.Id
		if id == 0 {
			id = core.ContentID(core.KindRights, entry.Title)
		}
		if seen[id] {
			return fmt.Errorf("%w: %w: rights id %d", ErrInvalidCatalog, ErrDuplicateID, id)
		}
		seen[id] = true
	}

	clear(seen)
	for i, entry := range c.Templates {
		if entry == nil {
			return fmt.Errorf("%w: templates[%d] is empty", ErrInvalidCatalog, i)
		}
		if err := core.ValidateTemplateEntry(entry); err != nil {
			return fmt.Errorf("%w: templates[%d]: %w", ErrInvalidCatalog, i, err)
		}
		id := entry.Id
		if id == 0 {
			id = core.ContentID(core.KindTemplate, entry.Title)
		}
		if seen[id] {
			return fmt.Errorf("%w: %w: template id %d", ErrInvalidCatalog, ErrDuplicateID, id)
		}
		seen[id] = true
	}
	return nil
}
