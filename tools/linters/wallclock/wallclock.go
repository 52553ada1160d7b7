// Package wallclock provides a linter that reports direct wall-clock reads.
// Period keys, deadlines and progress must come from an injected clock.Clock
// so they follow the configured timezone and stay testable.
package wallclock

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// exemptPackage is the package allowed to read the wall clock.
const exemptPackage = "clock"

// Analyzer reports calls to time.Now outside the clock package.
var Analyzer = &analysis.Analyzer{
	Name: "wallclock",
	Doc:  "reports time.Now() calls outside the clock package; use an injected clock.Clock",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() == exemptPackage {
		return nil, nil
	}

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || !isTimeNow(pass, call) {
				return true
			}
			if hasNolintComment(pass, file, call) {
				return true
			}
			pass.Reportf(call.Pos(), "time.Now() reads the wall clock; use an injected clock.Clock")
			return true
		})
	}

	return nil, nil
}

// isTimeNow resolves the callee through type information, so renamed imports
// are caught and local identifiers named "time" are not.
func isTimeNow(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Now" {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "time"
}

// hasNolintComment reports whether //nolint or //nolint:wallclock sits on the
// call's line or the line before.
func hasNolintComment(pass *analysis.Pass, file *ast.File, call *ast.CallExpr) bool {
	line := pass.Fset.Position(call.Pos()).Line

	for _, cg := range file.Comments {
		for _, comment := range cg.List {
			commentLine := pass.Fset.Position(comment.Pos()).Line
			if commentLine != line && commentLine != line-1 {
				continue
			}
			directive, ok := strings.CutPrefix(comment.Text, "//nolint")
			if !ok {
				continue
			}
			linters, scoped := strings.CutPrefix(directive, ":")
			if !scoped {
				return true
			}
			name, _, _ := strings.Cut(linters, " ")
			for l := range strings.SplitSeq(name, ",") {
				if l == "wallclock" {
					return true
				}
			}
		}
	}

	return false
}
