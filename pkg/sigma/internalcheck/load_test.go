package internalcheck

import (
	"go/ast"
	"go/token"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const libraryPattern = "github.com/coinbase/cb-sigma-go/pkg/sigma/..."

// visit loads the library packages and calls fn for every node of every
// non-test file.
func visit(t *testing.T, mode packages.LoadMode, fn func(pkg *packages.Package, fset *token.FileSet, n ast.Node)) {
	t.Helper()
	cfg := &packages.Config{Mode: mode | packages.NeedSyntax | packages.NeedFiles | packages.NeedName}

	pkgs, err := packages.Load(cfg, libraryPattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.PkgPath, "/internalcheck") {
			continue
		}
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				if n != nil {
					fn(pkg, pkg.Fset, n)
				}
				return true
			})
		}
	}
}

func report(t *testing.T, policy string, findings []string) {
	t.Helper()
	if len(findings) > 0 {
		t.Fatalf("%s policy violation:\n%s", policy, strings.Join(findings, "\n"))
	}
}
