// Package schema infers a shape summary of arbitrary JSON: per-field types,
// numeric ranges, string samples, array length ranges, type unions across
// mixed arrays, and optional-field detection across sampled array elements.
package schema

import (
	"sort"

	"github.com/eladbash/jdx/internal/jsonval"
)

// Type is a sealed interface over the inferred schema kinds.
// Only Null, Bool, Number, String, Array, Object, Union, and Unknown
// implement it.
type Type interface {
	schemaType() // Marker method - seals interface to this package
}

// Null is the schema of JSON null.
type Null struct{}

func (Null) schemaType() {}

// Bool is the schema of a JSON boolean.
type Bool struct{}

func (Bool) schemaType() {}

// Number is the schema of a JSON number with its observed value range.
type Number struct {
	Min float64
	Max float64
}

func (Number) schemaType() {}

// String is the schema of a JSON string, carrying a truncated sample.
type String struct {
	Sample string
}

func (String) schemaType() {}

// Array is the schema of a JSON array. LenMin/LenMax record actual observed
// lengths (not the sample count); Items is the merged element schema.
type Array struct {
	LenMin int
	LenMax int
	Items  Type
}

func (Array) schemaType() {}

// Object is the schema of a JSON object, one entry per field name.
type Object struct {
	Fields map[string]*Field
}

func (Object) schemaType() {}

// Field describes one object field across merged samples.
type Field struct {
	Schema Type

	// Optional is true iff the field was absent from at least one merged
	// sample.
	Optional bool

	// Count tracks how many samples contributed a definite occurrence.
	// Informational only.
	Count int
}

// Union is the schema of a position whose samples had differing kinds.
// Names are deduplicated and sorted.
type Union struct {
	Names []string
}

func (Union) schemaType() {}

// Unknown is the schema of a value that cannot be characterized (currently
// only the items of an empty array).
type Unknown struct{}

func (Unknown) schemaType() {}

// sampleLen caps the stored string sample length, in runes.
const sampleLen = 30

// Infer builds the schema of a value. For arrays, at most maxSamples leading
// elements are inspected and folded together, bounding the cost on large
// collections; the recorded length range still reflects the full array.
func Infer(v jsonval.Value, maxSamples int) Type {
	switch val := v.(type) {
	case jsonval.Null:
		return Null{}

	case jsonval.Bool:
		return Bool{}

	case jsonval.Number:
		return Number{Min: float64(val), Max: float64(val)}

	case jsonval.String:
		return String{Sample: truncate(string(val), sampleLen)}

	case jsonval.Array:
		if len(val) == 0 {
			return Array{LenMin: 0, LenMax: 0, Items: Unknown{}}
		}
		samples := val
		if len(samples) > maxSamples {
			samples = samples[:maxSamples]
		}
		var merged Type
		for _, item := range samples {
			itemSchema := Infer(item, maxSamples)
			if merged == nil {
				merged = itemSchema
			} else {
				merged = merge(merged, itemSchema)
			}
		}
		return Array{LenMin: len(val), LenMax: len(val), Items: merged}

	case *jsonval.Object:
		fields := make(map[string]*Field, val.Len())
		for _, key := range val.Keys() {
			fv, _ := val.Get(key)
			fields[key] = &Field{Schema: Infer(fv, maxSamples), Count: 1}
		}
		return Object{Fields: fields}

	default:
		return Unknown{}
	}
}

// merge folds two schemas inferred from sibling array samples.
func merge(a, b Type) Type {
	switch av := a.(type) {
	case Null:
		if _, ok := b.(Null); ok {
			return Null{}
		}

	case Bool:
		if _, ok := b.(Bool); ok {
			return Bool{}
		}

	case Number:
		if bv, ok := b.(Number); ok {
			return Number{
				Min: minFloat(av.Min, bv.Min),
				Max: maxFloat(av.Max, bv.Max),
			}
		}

	case String:
		if bv, ok := b.(String); ok {
			// The later sample wins.
			return String{Sample: bv.Sample}
		}

	case Object:
		if bv, ok := b.(Object); ok {
			return mergeObjects(av, bv)
		}

	case Array:
		if bv, ok := b.(Array); ok {
			return Array{
				LenMin: minInt(av.LenMin, bv.LenMin),
				LenMax: maxInt(av.LenMax, bv.LenMax),
				Items:  merge(av.Items, bv.Items),
			}
		}
	}

	// Differing kinds collapse to a union of their type names.
	return makeUnion(a, b)
}

// mergeObjects unions the field sets. A field present on only one side
// becomes optional; fields present on both merge recursively and bump their
// occurrence count.
func mergeObjects(a, b Object) Object {
	fields := make(map[string]*Field, len(a.Fields))
	for name, f := range a.Fields {
		copied := *f
		fields[name] = &copied
	}

	for name, f := range fields {
		if _, inB := b.Fields[name]; !inB {
			f.Optional = true
		}
	}

	for name, bf := range b.Fields {
		if af, ok := fields[name]; ok {
			af.Schema = merge(af.Schema, bf.Schema)
			af.Count++
		} else {
			fields[name] = &Field{Schema: bf.Schema, Optional: true, Count: 1}
		}
	}

	return Object{Fields: fields}
}

// makeUnion flattens both sides' type names into one sorted, deduplicated
// union. Nested unions contribute their member names, not a joined string.
func makeUnion(a, b Type) Union {
	set := make(map[string]struct{})
	addTypeNames(set, a)
	addTypeNames(set, b)

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return Union{Names: names}
}

func addTypeNames(set map[string]struct{}, t Type) {
	if u, ok := t.(Union); ok {
		for _, n := range u.Names {
			set[n] = struct{}{}
		}
		return
	}
	set[typeName(t)] = struct{}{}
}

func typeName(t Type) string {
	switch t.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
