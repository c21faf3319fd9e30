// Package query implements the dot-notation query language: parsing a query
// string into path segments, parsing bracketed filter predicates, and
// walking a JSON value against the parsed path.
package query

// Segment is a sealed interface over the path segment kinds.
//
// A parsed query is an ordered []Segment. The marker method pattern seals
// the union so traversal can type-switch exhaustively.
//
// Segment kinds:
//   - Key: object field access (".name", `["key.with.dot"]`)
//   - Index: array index, negative counts from the end ("[0]", "[-1]")
//   - Slice: array slice with optional bounds ("[1:3]", "[:3]", "[2:]")
//   - Wildcard: object values as an array, arrays unchanged ("[*]", ".*")
//   - Filter: retain array elements matching a predicate ("[price < 10]")
type Segment interface {
	pathSegment() // Marker method - seals interface to this package
}

// Key accesses an object field by name.
type Key string

func (Key) pathSegment() {}

// Index accesses an array element. Negative values resolve as len+i.
type Index int

func (Index) pathSegment() {}

// Slice selects a sub-range of an array. A nil bound is open: nil Start
// means 0, nil End means the array length. Negative bounds count from the
// end. Slicing terminates traversal; segments after it are not evaluated.
type Slice struct {
	Start *int
	End   *int
}

func (Slice) pathSegment() {}

// Wildcard expands an object's values into an array, or passes an array
// through unchanged. Like Slice, it terminates traversal.
type Wildcard struct{}

func (Wildcard) pathSegment() {}

// Filter retains array elements matching its predicate. Unlike Slice and
// Wildcard, traversal continues against the filtered array.
type Filter struct {
	Pred Predicate
}

func (Filter) pathSegment() {}
