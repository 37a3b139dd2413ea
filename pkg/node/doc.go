// Package node implements immutable, type-checked resource values.
//
// A resource value is produced at the read boundary of an object instance:
// every read creates a fresh snapshot, the caller uses it and drops it.
// Nothing in this package is ever mutated after construction.
//
// # Value Types
//
// Each declared model.Type accepts exactly one Go representation:
//
//	INTEGER  int64
//	FLOAT    float64
//	BOOLEAN  bool
//	STRING   string
//	OPAQUE   []byte (copied on the way in and out)
//	TIME     time.Time
//	OBJLNK   ObjectLink
//
// NewResource rejects any other pairing with ErrInvalidArgument. The typed
// constructors (NewFloatResource, ...) cannot fail.
//
// # Equality
//
// Resources compare by content. Opaque values compare byte by byte, times
// by instant and floats by bit pattern, so Equal is reflexive even for NaN.
// Hash is consistent with Equal.
package node
