// Package model describes the object and resource catalog of a device.
//
// # Object Model Hierarchy
//
// A device exposes objects, each object has instances, and each instance
// groups numbered resources:
//
//	Object 3304 (Humidity)
//	└── Instance 0
//	    ├── 5700 Sensor Value            (R, Float)
//	    ├── 5701 Sensor Units            (R, String)
//	    ├── 5601 Min Measured Value      (R, Float)
//	    ├── 5602 Max Measured Value      (R, Float)
//	    └── 5605 Reset Min/Max           (E)
//
// The catalog only declares which resource ids exist, which operations they
// allow and which value type they carry. Values themselves live in package
// node and the behaviour behind them in the instance implementations.
//
// # Operations
//
// Resources have operation flags:
//   - R: Can be read
//   - W: Can be written
//   - E: Can be executed
//
// A resource is either readable/writable or executable, never both.
//
// # Loading
//
// Catalogs are YAML documents. DefaultCatalog returns the embedded catalog
// covering the objects served by this module; LoadCatalog and ParseCatalog
// read additional definitions.
package model
