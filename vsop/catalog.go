package vsop

import (
	"embed"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

//go:embed data/*.vsop
var embedded embed.FS

var (
	embeddedOnce    sync.Once
	embeddedCatalog *Catalog
	embeddedErr     error
)

// Catalog maps body names, case insensitive, to their series.
// It is immutable once built and safe for concurrent use.
type Catalog struct {
	tables map[string]*Table
}

// NewCatalog returns a catalog of the given tables, keyed by their Name.
func NewCatalog(tables ...*Table) *Catalog {
	c := &Catalog{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if !t.Empty() {
			c.tables[strings.ToLower(t.Name)] = t
		}
	}
	return c
}

// LoadCatalog reads the KStars series of the named bodies from dir. A body without
// any file is left out of the catalog; any other error aborts the load. The
// embedded Earth series is used when dir has none.
func LoadCatalog(dir string, names ...string) (*Catalog, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	}
	return loadCatalogFS(fsys, names...)
}

func loadCatalogFS(fsys fs.FS, names ...string) (*Catalog, error) {
	var tables []*Table
	for _, name := range names {
		if fsys == nil {
			break
		}
		t, err := LoadKStarsFS(fsys, name)
		if errors.Cause(err) == ErrNoData {
			continue
		}
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	c := NewCatalog(tables...)
	if _, ok := c.tables["earth"]; !ok {
		emb, err := Embedded()
		if err != nil {
			return nil, err
		}
		c.tables["earth"] = emb.tables["earth"]
	}
	return c, nil
}

// Embedded returns the catalog compiled into the package. It only holds the Earth,
// truncated to the terms of Meeus' Astronomical Algorithms (about 1" over ±2000 years).
// The files are parsed on the first call only.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			embeddedErr = err
			return
		}
		earth, err := LoadKStarsFS(sub, "Earth")
		if err != nil {
			embeddedErr = errors.Wrap(err, "embedded series")
			return
		}
		embeddedCatalog = NewCatalog(earth)
	})
	return embeddedCatalog, embeddedErr
}

// Table returns the series of a body. The error wraps ErrNoData when it is not loaded.
func (c *Catalog) Table(name string) (*Table, error) {
	if c != nil {
		if t, ok := c.tables[strings.ToLower(name)]; ok {
			return t, nil
		}
	}
	return nil, errors.Wrapf(ErrNoData, "no series for %s", name)
}

// Has reports whether the series of a body is loaded.
func (c *Catalog) Has(name string) bool {
	_, err := c.Table(name)
	return err == nil
}

// Names returns the lower case names of the loaded bodies, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
