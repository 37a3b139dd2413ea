//go:build tools

package tools

// Mocks are generated by the mockery binary from .mockery.yaml and checked
// in under pkg/client/mocks. Run: mockery (from the module root).
