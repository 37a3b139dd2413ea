package node

import "fmt"

// ObjectLink references an object instance.
type ObjectLink struct {
	ObjectID   uint16 `cbor:"1,keyasint"`
	InstanceID uint16 `cbor:"2,keyasint"`
}

// NullObjectLink is the link value that references nothing.
var NullObjectLink = ObjectLink{ObjectID: 0xFFFF, InstanceID: 0xFFFF}

// IsNull reports whether the link references nothing.
func (l ObjectLink) IsNull() bool {
	return l == NullObjectLink
}

func (l ObjectLink) String() string {
	return fmt.Sprintf("%d:%d", l.ObjectID, l.InstanceID)
}
