// Package internalcheck holds static policy tests over the library packages.
//
// The tests load every package under pkg/sigma with golang.org/x/tools and
// reject constructs that tend to leak secrets: variable-time comparison of
// byte slices, hex formatting of values, and non-cryptographic randomness.
//
// # Internal Use Only
//
// The package has no exported API. It exists so that `go test ./...` enforces
// the policies alongside the functional tests.
package internalcheck
