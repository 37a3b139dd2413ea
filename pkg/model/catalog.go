package model

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog errors.
var (
	ErrInvalidCatalog  = errors.New("invalid object catalog")
	ErrObjectNotFound  = errors.New("object not found")
	ErrDuplicateObject = errors.New("duplicate object ID")
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is a set of object models indexed by object id.
// A Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	objects map[uint16]*ObjectModel
}

type catalogFile struct {
	Objects []*ObjectModel `yaml:"objects"`
}

// NewCatalog creates a catalog from already built object models.
func NewCatalog(objects ...*ObjectModel) (*Catalog, error) {
	c := &Catalog{objects: make(map[uint16]*ObjectModel)}
	for _, o := range objects {
		if err := c.Add(o); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ParseCatalog parses a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	c := &Catalog{objects: make(map[uint16]*ObjectModel, len(file.Objects))}
	for _, o := range file.Objects {
		if err := o.index(); err != nil {
			return nil, err
		}
		if err := c.Add(o); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog.
// It panics if the embedded document is invalid, which is a build defect.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Add adds an object model to the catalog.
func (c *Catalog) Add(o *ObjectModel) error {
	if o.resources == nil {
		if err := o.index(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.objects[o.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateObject, o.ID)
	}
	c.objects[o.ID] = o
	return nil
}

// Merge adds every object of other that is not yet present.
// Objects already in c take precedence.
func (c *Catalog) Merge(other *Catalog) {
	for _, o := range other.Objects() {
		_ = c.Add(o)
	}
}

// Object returns the model of an object.
func (c *Catalog) Object(id uint16) (*ObjectModel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	o, exists := c.objects[id]
	if !exists {
		return nil, fmt.Errorf("%w: %d", ErrObjectNotFound, id)
	}
	return o, nil
}

// Resource returns the declaration of a resource of an object.
func (c *Catalog) Resource(objectID, resourceID uint16) (*ResourceModel, bool) {
	o, err := c.Object(objectID)
	if err != nil {
		return nil, false
	}
	return o.Resource(resourceID)
}

// Objects returns all object models ordered by id.
func (c *Catalog) Objects() []*ObjectModel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*ObjectModel, 0, len(c.objects))
	for _, o := range c.objects {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
