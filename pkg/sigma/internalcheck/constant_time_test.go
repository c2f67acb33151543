package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/packages"
)

func TestNoDirectByteComparison(t *testing.T) {
	var findings []string
	visit(t, packages.NeedTypes|packages.NeedTypesInfo, func(pkg *packages.Package, fset *token.FileSet, n ast.Node) {
		be, ok := n.(*ast.BinaryExpr)
		if !ok || (be.Op != token.EQL && be.Op != token.NEQ) {
			return
		}
		left := pkg.TypesInfo.TypeOf(be.X)
		right := pkg.TypesInfo.TypeOf(be.Y)
		if isByteSlice(left) && isByteSlice(right) {
			findings = append(findings, fmt.Sprintf("%s: avoid == on byte slices; use crypto/subtle", fset.Position(be.Pos())))
		}
	})
	report(t, "constant-time", findings)
}

func isByteSlice(typ types.Type) bool {
	if typ == nil {
		return false
	}

	switch tt := typ.(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isByteSlice(tt.Elem())
	case *types.Named:
		return isByteSlice(tt.Underlying())
	case *types.Array:
		return isByte(tt.Elem())
	default:
		return false
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}
