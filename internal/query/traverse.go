package query

import (
	"fmt"
	"sort"

	"github.com/eladbash/jdx/internal/jsonval"
)

// TraversalResult is the outcome of walking a value against path segments.
type TraversalResult struct {
	// Value is the resolved node, or nil if any segment failed to resolve.
	Value jsonval.Value

	// Parent is the last successfully-resolved container, kept for
	// contextual suggestions when a segment fails.
	Parent jsonval.Value

	// Depth counts segments successfully consumed.
	Depth int
}

// Traverse walks root against the parsed segments.
//
// Traversal never errors: an unresolvable path returns Value nil with the
// failing container in Parent and the consumed segment count in Depth.
//
// Slice and Wildcard terminate the walk immediately with their result;
// Filter continues against the filtered array. The asymmetry is
// long-standing observed behavior and callers depend on it.
func Traverse(root jsonval.Value, segments []Segment) TraversalResult {
	if len(segments) == 0 {
		return TraversalResult{Value: root, Parent: nil, Depth: 0}
	}

	current := root
	var parent jsonval.Value
	depth := 0

	for _, segment := range segments {
		switch seg := segment.(type) {
		case Key:
			obj, ok := current.(*jsonval.Object)
			if !ok {
				return TraversalResult{Parent: current, Depth: depth}
			}
			val, ok := obj.Get(string(seg))
			if !ok {
				return TraversalResult{Parent: current, Depth: depth}
			}
			parent = current
			current = val
			depth++

		case Index:
			arr, ok := current.(jsonval.Array)
			if !ok {
				return TraversalResult{Parent: current, Depth: depth}
			}
			idx := int(seg)
			if idx < 0 {
				idx = len(arr) + idx
			}
			if idx < 0 || idx >= len(arr) {
				return TraversalResult{Parent: current, Depth: depth}
			}
			parent = current
			current = arr[idx]
			depth++

		case Slice:
			arr, ok := current.(jsonval.Array)
			if !ok {
				return TraversalResult{Parent: current, Depth: depth}
			}
			start, end := resolveBounds(seg, len(arr))
			sliced := make(jsonval.Array, 0, end-start)
			sliced = append(sliced, arr[start:end]...)
			// Slice consumes exactly one depth step and ends the walk.
			return TraversalResult{Value: sliced, Parent: current, Depth: depth + 1}

		case Wildcard:
			switch cur := current.(type) {
			case *jsonval.Object:
				values := jsonval.Array(cur.Values())
				return TraversalResult{Value: values, Parent: current, Depth: depth + 1}
			case jsonval.Array:
				// Wildcard on an array is identity.
				return TraversalResult{Value: current, Parent: parent, Depth: depth + 1}
			default:
				return TraversalResult{Parent: current, Depth: depth}
			}

		case Filter:
			arr, ok := current.(jsonval.Array)
			if !ok {
				return TraversalResult{Parent: current, Depth: depth}
			}
			filtered := make(jsonval.Array, 0, len(arr))
			for _, item := range arr {
				if seg.Pred.Eval(item) {
					filtered = append(filtered, item)
				}
			}
			parent = current
			current = filtered
			depth++
		}
	}

	return TraversalResult{Value: current, Parent: parent, Depth: depth}
}

// resolveBounds clamps slice bounds into [0, len] with negative-from-end
// semantics, returning an empty range when start exceeds end.
func resolveBounds(s Slice, length int) (int, int) {
	start := 0
	if s.Start != nil {
		start = *s.Start
	}
	end := length
	if s.End != nil {
		end = *s.End
	}

	if start < 0 {
		start = length + start
	}
	if end < 0 {
		end = length + end
	}

	start = clamp(start, 0, length)
	end = clamp(end, 0, length)
	if start > end {
		return start, start
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AvailableKeys lists what can be typed next at a value: sorted field names
// for objects, "[i]" index strings for arrays, nothing for scalars.
func AvailableKeys(v jsonval.Value) []string {
	switch val := v.(type) {
	case *jsonval.Object:
		keys := val.Keys()
		sort.Strings(keys)
		return keys
	case jsonval.Array:
		keys := make([]string, len(val))
		for i := range val {
			keys[i] = fmt.Sprintf("[%d]", i)
		}
		return keys
	default:
		return nil
	}
}
