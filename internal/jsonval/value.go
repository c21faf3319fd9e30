// Package jsonval defines the JSON value representation used by the query
// engine. Values form a closed union: Null, Bool, Number, String, Array,
// and Object are the only implementations, which lets traversal and
// transform code type-switch exhaustively instead of inspecting reflection
// kinds at runtime.
package jsonval

// Value is a sealed interface over the six JSON kinds.
// Only Null, Bool, Number, String, Array, and *Object implement it.
type Value interface {
	jsonValue() // Sealed - only types in this package implement it
}

// Null represents JSON null. An explicit type (rather than a nil Value)
// keeps "field is null" distinct from "field is absent".
type Null struct{}

func (Null) jsonValue() {}

// Bool represents a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Number represents a JSON number as a double, matching the precision the
// query language guarantees for filter comparisons.
type Number float64

func (Number) jsonValue() {}

// String represents a JSON string.
type String string

func (String) jsonValue() {}

// Array represents a JSON array.
type Array []Value

func (Array) jsonValue() {}

// Object represents a JSON object with insertion-ordered members.
// Field order is preserved through decode, transform, and encode so the
// explorer shows documents the way they were written.
type Object struct {
	members []member
	index   map[string]int
}

type member struct {
	key string
	val Value
}

func (*Object) jsonValue() {}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set adds or replaces a member. New keys append to the member order.
func (o *Object) Set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].val = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, member{key: key, val: v})
}

// Get returns the member value and whether the key exists.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.index == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].val, true
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Keys returns member keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.key
	}
	return keys
}

// Values returns member values in insertion order.
func (o *Object) Values() []Value {
	if o == nil {
		return nil
	}
	vals := make([]Value, len(o.members))
	for i, m := range o.members {
		vals[i] = m.val
	}
	return vals
}
