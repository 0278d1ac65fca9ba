//go:build tools

package tools

// Mocks under pkg/*/mocks are generated by mockery as an installed binary
// (not via go run), so no blank import is needed. Run: mockery (from the
// module root) after changing an interface listed in .mockery.yaml.
