package model

import (
	"fmt"
	"strings"
)

// Type is the declared value type of a resource.
type Type uint8

const (
	// TypeNone is used by executable resources, which carry no value.
	TypeNone Type = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeOpaque
	TypeTime
	TypeObjectLink
)

var typeNames = []string{
	"NONE", "STRING", "INTEGER", "FLOAT", "BOOLEAN", "OPAQUE", "TIME", "OBJLNK",
}

// String returns the type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// IsValue returns true if the type can carry a resource value.
func (t Type) IsValue() bool {
	return t > TypeNone && int(t) < len(typeNames)
}

// ParseType parses a type name as written in catalog files.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return TypeNone, nil
	case "STRING":
		return TypeString, nil
	case "INTEGER", "INT":
		return TypeInteger, nil
	case "FLOAT":
		return TypeFloat, nil
	case "BOOLEAN", "BOOL":
		return TypeBoolean, nil
	case "OPAQUE":
		return TypeOpaque, nil
	case "TIME":
		return TypeTime, nil
	case "OBJLNK", "OBJECTLINK":
		return TypeObjectLink, nil
	}
	return TypeNone, fmt.Errorf("%w: unknown type %q", ErrInvalidCatalog, s)
}

// UnmarshalYAML allows types to be written by name.
func (t *Type) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Operations are the operation flags of a resource.
type Operations uint8

const (
	// OpRead allows reading the resource.
	OpRead Operations = 1 << iota

	// OpWrite allows writing the resource.
	OpWrite

	// OpExecute allows executing the resource.
	OpExecute

	// OpNone declares no operation at all.
	OpNone Operations = 0

	// OpReadWrite is read and write.
	OpReadWrite = OpRead | OpWrite
)

// IsReadable returns true if reading is allowed.
func (o Operations) IsReadable() bool { return o&OpRead != 0 }

// IsWritable returns true if writing is allowed.
func (o Operations) IsWritable() bool { return o&OpWrite != 0 }

// IsExecutable returns true if executing is allowed.
func (o Operations) IsExecutable() bool { return o&OpExecute != 0 }

// String returns the operation flags as a string.
func (o Operations) String() string {
	var s string
	if o.IsReadable() {
		s += "R"
	}
	if o.IsWritable() {
		s += "W"
	}
	if o.IsExecutable() {
		s += "E"
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// ParseOperations parses an operation string such as "R", "RW" or "E".
func ParseOperations(s string) (Operations, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NONE" {
		return OpNone, nil
	}
	var ops Operations
	for _, c := range s {
		switch c {
		case 'R':
			ops |= OpRead
		case 'W':
			ops |= OpWrite
		case 'E':
			ops |= OpExecute
		default:
			return OpNone, fmt.Errorf("%w: unknown operations %q", ErrInvalidCatalog, s)
		}
	}
	if ops.IsExecutable() && ops != OpExecute {
		return OpNone, fmt.Errorf("%w: executable resources cannot be read or written: %q", ErrInvalidCatalog, s)
	}
	return ops, nil
}

// UnmarshalYAML allows operations to be written as strings.
func (o *Operations) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseOperations(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ResourceModel describes one resource of an object.
type ResourceModel struct {
	// ID is the resource identifier within the object.
	ID uint16 `yaml:"id"`

	// Name is the human-readable resource name.
	Name string `yaml:"name"`

	// Operations defines the allowed operations.
	Operations Operations `yaml:"operations"`

	// Multiple indicates a multi-instance resource.
	Multiple bool `yaml:"multiple,omitempty"`

	// Mandatory indicates the resource must be present on every instance.
	Mandatory bool `yaml:"mandatory,omitempty"`

	// Type is the value type. TypeNone for executable resources.
	Type Type `yaml:"type"`

	// Units is the unit of measurement, if any.
	Units string `yaml:"units,omitempty"`

	// Description is a human-readable description.
	Description string `yaml:"description,omitempty"`
}

// validate checks the resource declaration for consistency.
func (r *ResourceModel) validate() error {
	if r.Operations.IsExecutable() && r.Type != TypeNone {
		return fmt.Errorf("%w: executable resource %d declares type %s", ErrInvalidCatalog, r.ID, r.Type)
	}
	if !r.Operations.IsExecutable() && r.Operations != OpNone && !r.Type.IsValue() {
		return fmt.Errorf("%w: resource %d has no value type", ErrInvalidCatalog, r.ID)
	}
	return nil
}
