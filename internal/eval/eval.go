// Package eval composes the query pipeline: split an expression into its
// path and transform chain, traverse, then apply transforms.
package eval

import (
	"strings"

	"github.com/eladbash/jdx/internal/jsonval"
	"github.com/eladbash/jdx/internal/query"
	"github.com/eladbash/jdx/internal/transform"
)

// Result is the outcome of evaluating a full expression.
type Result struct {
	// Value is the final value, or nil when the path did not resolve.
	Value jsonval.Value

	// Parent is the last container the path resolved through, for
	// suggesting what could be typed next.
	Parent jsonval.Value

	// Depth counts path segments successfully consumed.
	Depth int
}

// SplitExpr separates a query expression into its path part and transform
// chain. The chain starts at the first " :" boundary; an expression that is
// only transforms (leading ":") has an empty path, which targets the root.
func SplitExpr(expr string) (path, chain string) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, ":") {
		return "", expr
	}
	if i := strings.Index(expr, " :"); i >= 0 {
		return strings.TrimSpace(expr[:i]), strings.TrimSpace(expr[i+1:])
	}
	return expr, ""
}

// Run evaluates a full expression against a root value.
//
// Parse and transform errors are returned as errors. An unresolvable path is
// not an error: the Result carries a nil Value and the failing container in
// Parent so callers can suggest keys.
func Run(root jsonval.Value, expr string) (Result, error) {
	path, chain := SplitExpr(expr)

	current := root
	var parent jsonval.Value
	depth := 0

	if path != "" {
		segments, err := query.Parse(path)
		if err != nil {
			return Result{}, err
		}
		tr := query.Traverse(root, segments)
		if tr.Value == nil {
			return Result{Parent: tr.Parent, Depth: tr.Depth}, nil
		}
		current, parent, depth = tr.Value, tr.Parent, tr.Depth
	}

	if chain != "" {
		transformed, err := transform.Apply(current, chain)
		if err != nil {
			return Result{}, err
		}
		current = transformed
	}

	return Result{Value: current, Parent: parent, Depth: depth}, nil
}
