package model

import (
	"fmt"
	"sort"
)

// Common object IDs served by this module.
const (
	ObjectTemperature       uint16 = 3303
	ObjectHumidity          uint16 = 3304
	ObjectWaterFlowReadings uint16 = 10266
)

// ObjectModel describes an object type and its resources.
type ObjectModel struct {
	// ID is the object identifier.
	ID uint16 `yaml:"id"`

	// Name is the human-readable object name.
	Name string `yaml:"name"`

	// Version is the object definition version.
	Version string `yaml:"version,omitempty"`

	// Multiple indicates the object may have more than one instance.
	Multiple bool `yaml:"multiple,omitempty"`

	// Description is a human-readable description.
	Description string `yaml:"description,omitempty"`

	// ResourceList holds the resources in declaration order.
	ResourceList []ResourceModel `yaml:"resources"`

	resources map[uint16]*ResourceModel
}

// index builds the id lookup table and validates every resource.
func (o *ObjectModel) index() error {
	o.resources = make(map[uint16]*ResourceModel, len(o.ResourceList))
	for i := range o.ResourceList {
		r := &o.ResourceList[i]
		if _, exists := o.resources[r.ID]; exists {
			return fmt.Errorf("%w: object %d declares resource %d twice", ErrInvalidCatalog, o.ID, r.ID)
		}
		if err := r.validate(); err != nil {
			return fmt.Errorf("object %d: %w", o.ID, err)
		}
		o.resources[r.ID] = r
	}
	return nil
}

// NewObjectModel creates an object model from resource declarations.
func NewObjectModel(id uint16, name string, resources ...ResourceModel) (*ObjectModel, error) {
	o := &ObjectModel{ID: id, Name: name, ResourceList: resources}
	if err := o.index(); err != nil {
		return nil, err
	}
	return o, nil
}

// Resource returns the declaration of a resource.
func (o *ObjectModel) Resource(id uint16) (*ResourceModel, bool) {
	r, ok := o.resources[id]
	return r, ok
}

// ResourceIDs returns the declared resource ids in ascending order.
func (o *ObjectModel) ResourceIDs() []uint16 {
	ids := make([]uint16, 0, len(o.resources))
	for id := range o.resources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ReadableIDs returns the ids of readable resources in ascending order.
func (o *ObjectModel) ReadableIDs() []uint16 {
	var ids []uint16
	for _, id := range o.ResourceIDs() {
		if o.resources[id].Operations.IsReadable() {
			ids = append(ids, id)
		}
	}
	return ids
}

// ExecutableIDs returns the ids of executable resources in ascending order.
func (o *ObjectModel) ExecutableIDs() []uint16 {
	var ids []uint16
	for _, id := range o.ResourceIDs() {
		if o.resources[id].Operations.IsExecutable() {
			ids = append(ids, id)
		}
	}
	return ids
}
