package services

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/models"

	"gopkg.in/yaml.v3"
)

var ErrUnknownOption = errors.New("unknown option")

// Catalog wraps the static option tables with id lookups. It is immutable
// once loaded and safe for concurrent use.
type Catalog struct {
	data models.Catalog

	lensTypes  map[string]models.Option
	fields     map[string]models.Option
	indices    map[string]models.Option
	treatments map[string]models.Option
	materials  map[string]models.LensMaterial
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the tables embedded in config/catalog.yaml.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		cat, err := LoadCatalog(config.CatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw models.Catalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(raw)
}

func NewCatalog(raw models.Catalog) (*Catalog, error) {
	c := &Catalog{data: raw}

	var err error
	if c.lensTypes, err = indexOptions("lens_types", raw.LensTypes); err != nil {
		return nil, err
	}
	if c.fields, err = indexOptions("vision_fields", raw.VisionFields); err != nil {
		return nil, err
	}
	if c.indices, err = indexOptions("refractive_indices", raw.RefractiveIndices); err != nil {
		return nil, err
	}
	if c.treatments, err = indexOptions("treatments", raw.Treatments); err != nil {
		return nil, err
	}

	for _, idx := range raw.RefractiveIndices {
		if idx.MonofocalPrice == nil {
			return nil, fmt.Errorf("refractive_indices: %q has no monofocal_price", idx.ID)
		}
	}

	if c.materials, err = indexMaterials(raw.LensMaterials); err != nil {
		return nil, err
	}

	return c, nil
}

// indexMaterials accepts an empty table; the simulator then has nothing to
// compare.
func indexMaterials(mats []models.LensMaterial) (map[string]models.LensMaterial, error) {
	m := make(map[string]models.LensMaterial, len(mats))
	for _, mat := range mats {
		n, err := strconv.ParseFloat(mat.Index, 64)
		if err != nil || n <= 1 {
			return nil, fmt.Errorf("lens_materials: invalid index %q", mat.Index)
		}
		if _, dup := m[mat.Index]; dup {
			return nil, fmt.Errorf("lens_materials: duplicate index %q", mat.Index)
		}
		m[mat.Index] = mat
	}
	return m, nil
}

func indexOptions(set string, opts []models.Option) (map[string]models.Option, error) {
	if len(opts) == 0 {
		return nil, fmt.Errorf("%s: empty option set", set)
	}
	m := make(map[string]models.Option, len(opts))
	for _, o := range opts {
		if o.ID == "" {
			return nil, fmt.Errorf("%s: option without id", set)
		}
		if _, dup := m[o.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate id %q", set, o.ID)
		}
		if o.Price < 0 {
			return nil, fmt.Errorf("%s: %q has a negative price", set, o.ID)
		}
		m[o.ID] = o
	}
	return m, nil
}

// Tables returns the option sets in display order.
func (c *Catalog) Tables() models.Catalog {
	return c.data
}

func (c *Catalog) LensType(id string) (models.Option, bool) {
	o, ok := c.lensTypes[id]
	return o, ok
}

func (c *Catalog) VisionField(id string) (models.Option, bool) {
	o, ok := c.fields[id]
	return o, ok
}

func (c *Catalog) RefractiveIndex(id string) (models.Option, bool) {
	o, ok := c.indices[id]
	return o, ok
}

func (c *Catalog) Treatment(id string) (models.Option, bool) {
	o, ok := c.treatments[id]
	return o, ok
}

func (c *Catalog) Material(index string) (models.LensMaterial, bool) {
	m, ok := c.materials[index]
	return m, ok
}

// Materials returns the comparator table in display order.
func (c *Catalog) Materials() []models.LensMaterial {
	return c.data.LensMaterials
}
