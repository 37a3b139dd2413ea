package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"FLOAT", TypeFloat, false},
		{"integer", TypeInteger, false},
		{"OBJLNK", TypeObjectLink, false},
		{"opaque", TypeOpaque, false},
		{"", TypeNone, false},
		{"DOUBLE", TypeNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTypeIsValue(t *testing.T) {
	if TypeNone.IsValue() {
		t.Error("TypeNone.IsValue() = true, want false")
	}
	for _, typ := range []Type{TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeOpaque, TypeTime, TypeObjectLink} {
		if !typ.IsValue() {
			t.Errorf("%v.IsValue() = false, want true", typ)
		}
	}
	if Type(42).IsValue() {
		t.Error("Type(42).IsValue() = true, want false")
	}
	if Type(42).String() != "Type(42)" {
		t.Errorf("Type(42).String() = %q", Type(42).String())
	}
}

func TestParseOperations(t *testing.T) {
	tests := []struct {
		in      string
		want    Operations
		wantErr bool
	}{
		{"R", OpRead, false},
		{"RW", OpReadWrite, false},
		{"E", OpExecute, false},
		{"", OpNone, false},
		{"RE", OpNone, true},
		{"X", OpNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperations(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOperations(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOperations(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOperationsString(t *testing.T) {
	if OpReadWrite.String() != "RW" {
		t.Errorf("OpReadWrite.String() = %q, want RW", OpReadWrite.String())
	}
	if OpNone.String() != "NONE" {
		t.Errorf("OpNone.String() = %q, want NONE", OpNone.String())
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	t.Run("Humidity", func(t *testing.T) {
		obj, err := c.Object(ObjectHumidity)
		if err != nil {
			t.Fatalf("Object(3304) failed: %v", err)
		}
		r, ok := obj.Resource(5700)
		if !ok {
			t.Fatal("resource 5700 not declared")
		}
		if r.Type != TypeFloat || !r.Operations.IsReadable() {
			t.Errorf("5700 = %v/%v, want FLOAT/R", r.Type, r.Operations)
		}
		reset, ok := obj.Resource(5605)
		if !ok || !reset.Operations.IsExecutable() {
			t.Error("resource 5605 should be executable")
		}
	})

	t.Run("WaterFlowReadings", func(t *testing.T) {
		obj, err := c.Object(ObjectWaterFlowReadings)
		if err != nil {
			t.Fatalf("Object(10266) failed: %v", err)
		}
		if got := len(obj.ExecutableIDs()); got != 4 {
			t.Errorf("ExecutableIDs() len = %d, want 4", got)
		}
		if got := len(obj.ReadableIDs()); got != 11 {
			t.Errorf("ReadableIDs() len = %d, want 11", got)
		}
	})

	t.Run("UnknownObject", func(t *testing.T) {
		_, err := c.Object(9999)
		if !errors.Is(err, ErrObjectNotFound) {
			t.Errorf("expected ErrObjectNotFound, got %v", err)
		}
	})

	t.Run("Ordered", func(t *testing.T) {
		objs := c.Objects()
		for i := 1; i < len(objs); i++ {
			if objs[i-1].ID >= objs[i].ID {
				t.Fatalf("Objects() not ordered: %d before %d", objs[i-1].ID, objs[i].ID)
			}
		}
	})
}

func TestParseCatalogInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"DuplicateResource", `
objects:
  - id: 1
    resources:
      - {id: 1, operations: R, type: STRING}
      - {id: 1, operations: R, type: STRING}
`},
		{"ExecutableWithType", `
objects:
  - id: 1
    resources:
      - {id: 1, operations: E, type: STRING}
`},
		{"ReadableWithoutType", `
objects:
  - id: 1
    resources:
      - {id: 1, operations: R}
`},
		{"DuplicateObject", `
objects:
  - id: 1
  - id: 1
`},
		{"BadType", `
objects:
  - id: 1
    resources:
      - {id: 1, operations: R, type: DOUBLE}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadCatalogAndMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	doc := `
objects:
  - id: 3304
    name: Shadowed Humidity
  - id: 3442
    name: Test Object
    resources:
      - {id: 110, name: String Value, operations: RW, type: STRING}
      - {id: 140, name: Link Value, operations: R, type: OBJLNK}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	extra, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	c, err := NewCatalog(mustObject(t, ObjectHumidity, "Humidity"))
	if err != nil {
		t.Fatal(err)
	}
	c.Merge(extra)

	h, _ := c.Object(ObjectHumidity)
	if h.Name != "Humidity" {
		t.Errorf("existing object overwritten by merge: %q", h.Name)
	}
	r, ok := c.Resource(3442, 140)
	if !ok || r.Type != TypeObjectLink {
		t.Errorf("Resource(3442, 140) = %v, %v", r, ok)
	}
}

func mustObject(t *testing.T, id uint16, name string) *ObjectModel {
	t.Helper()
	o, err := NewObjectModel(id, name,
		ResourceModel{ID: 5700, Operations: OpRead, Type: TypeFloat},
	)
	if err != nil {
		t.Fatalf("NewObjectModel: %v", err)
	}
	return o
}
