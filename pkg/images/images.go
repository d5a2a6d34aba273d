// Package images holds the set of image names that course content may reference.
//
// The catalog is loaded once, before any authoring or export work starts, and
// is read-only afterwards.
package images

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// NameColumn is the CSV header that holds image names.
const NameColumn = "image_name"

// Catalog is an immutable set of permitted image names.
type Catalog struct {
	names map[string]struct{}
}

// New builds a catalog from the given names. Blank names are ignored.
func New(names ...string) *Catalog {
	c := &Catalog{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		c.names[n] = struct{}{}
	}
	return c
}

// Load reads an attributions CSV file from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}

// Read parses attributions CSV data. The first row is a header and must
// contain an image_name column; other columns are ignored.
func Read(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty attributions file")
	}
	if err != nil {
		return nil, err
	}
	col := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == NameColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("missing %q column", NameColumn)
	}

	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if col < len(rec) {
			names = append(names, rec[col])
		}
	}
	return New(names...), nil
}

// Contains reports whether name is a permitted image.
func (c *Catalog) Contains(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.names[name]
	return ok
}

// Len returns the number of permitted images.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns the permitted names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.names))
	for n := range c.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
