//go:build tools

package tools

// mockery is used as an installed binary, so no blank import is needed.
// Run mockery from the module root; .mockery.yaml generates
// pkg/bencode/mocks/visitor.go from the bencode.Visitor interface.
