package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses an object, an object instance or a resource.
type Path struct {
	ObjectID   uint16
	InstanceID *uint16
	ResourceID *uint16
}

// NewResourcePath returns the path of one resource.
func NewResourcePath(objectID, instanceID, resourceID uint16) Path {
	return Path{ObjectID: objectID, InstanceID: &instanceID, ResourceID: &resourceID}
}

// NewInstancePath returns the path of one object instance.
func NewInstancePath(objectID, instanceID uint16) Path {
	return Path{ObjectID: objectID, InstanceID: &instanceID}
}

// ParsePath parses "/object[/instance[/resource]]".
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return Path{}, fmt.Errorf("%w: invalid path %q", ErrInvalidArgument, s)
	}

	ids := make([]uint16, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Path{}, fmt.Errorf("%w: invalid path %q: %v", ErrInvalidArgument, s, err)
		}
		ids[i] = uint16(v)
	}

	path := Path{ObjectID: ids[0]}
	if len(ids) > 1 {
		path.InstanceID = &ids[1]
	}
	if len(ids) > 2 {
		path.ResourceID = &ids[2]
	}
	return path, nil
}

// IsResource reports whether the path addresses a single resource.
func (p Path) IsResource() bool {
	return p.InstanceID != nil && p.ResourceID != nil
}

// IsInstance reports whether the path addresses an object instance.
func (p Path) IsInstance() bool {
	return p.InstanceID != nil && p.ResourceID == nil
}

func (p Path) String() string {
	s := fmt.Sprintf("/%d", p.ObjectID)
	if p.InstanceID != nil {
		s += fmt.Sprintf("/%d", *p.InstanceID)
	}
	if p.ResourceID != nil {
		s += fmt.Sprintf("/%d", *p.ResourceID)
	}
	return s
}
