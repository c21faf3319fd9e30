package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eladbash/jdx/internal/jsonval"
)

// Op is a predicate comparison operator.
type Op string

const (
	OpEq Op = "=="
	OpNe Op = "!="
	OpLt Op = "<"
	OpGt Op = ">"
	OpLe Op = "<="
	OpGe Op = ">="
)

// FloatEqEpsilon is the tolerance for numeric equality in predicates.
// Filter expressions compare doubles, so == and != use an epsilon rather
// than bit-exact equality.
const FloatEqEpsilon = 1e-9

// Predicate is a parsed filter condition: field op literal.
// The literal is one of jsonval String, Number, Bool, or Null.
type Predicate struct {
	Field string
	Op    Op
	Value jsonval.Value
}

// operator match order: two-character operators must be tried before their
// single-character prefixes.
var operators = []Op{OpEq, OpNe, OpLe, OpGe, OpLt, OpGt}

// ParsePredicate parses a "field op value" filter expression.
//
// Supported literals: single- or double-quoted strings, numbers, true,
// false, and null. Unquoted non-keyword values are rejected.
func ParsePredicate(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Predicate{}, fmt.Errorf("empty filter expression")
	}

	for _, op := range operators {
		idx := strings.Index(expr, string(op))
		if idx < 0 {
			continue
		}
		// A bare '<' or '>' that is really the start of "<=" / ">=" was
		// already consumed by the two-character pass above, so idx here is
		// safe to split on.
		field := strings.TrimSpace(expr[:idx])
		rawValue := strings.TrimSpace(expr[idx+len(op):])

		if field == "" {
			return Predicate{}, fmt.Errorf("missing field before %q in filter: %s", op, expr)
		}
		if rawValue == "" {
			return Predicate{}, fmt.Errorf("missing value after %q in filter: %s", op, expr)
		}

		value, err := parseLiteral(rawValue)
		if err != nil {
			return Predicate{}, fmt.Errorf("filter %q: %w", expr, err)
		}

		return Predicate{Field: field, Op: op, Value: value}, nil
	}

	return Predicate{}, fmt.Errorf("no comparison operator in filter: %s", expr)
}

// parseLiteral parses the right-hand side of a filter expression.
func parseLiteral(raw string) (jsonval.Value, error) {
	if len(raw) >= 2 {
		if (raw[0] == '\'' && raw[len(raw)-1] == '\'') ||
			(raw[0] == '"' && raw[len(raw)-1] == '"') {
			return jsonval.String(raw[1 : len(raw)-1]), nil
		}
	}

	switch raw {
	case "true":
		return jsonval.Bool(true), nil
	case "false":
		return jsonval.Bool(false), nil
	case "null":
		return jsonval.Null{}, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid literal %q", raw)
	}
	return jsonval.Number(f), nil
}

// Eval evaluates the predicate against a single array element.
//
// A missing field and a type mismatch between the field value and the
// literal both yield false, never an error. Ordering operators are defined
// only for numbers and strings; on Bool/Null literals they yield false.
func (p Predicate) Eval(item jsonval.Value) bool {
	obj, ok := item.(*jsonval.Object)
	if !ok {
		return false
	}
	field, ok := obj.Get(p.Field)
	if !ok {
		return false
	}

	switch want := p.Value.(type) {
	case jsonval.Number:
		got, ok := field.(jsonval.Number)
		if !ok {
			return false
		}
		return compareNumbers(float64(got), float64(want), p.Op)

	case jsonval.String:
		got, ok := field.(jsonval.String)
		if !ok {
			return false
		}
		return compareStrings(string(got), string(want), p.Op)

	case jsonval.Bool:
		got, ok := field.(jsonval.Bool)
		if !ok {
			return false
		}
		switch p.Op {
		case OpEq:
			return got == want
		case OpNe:
			return got != want
		default:
			return false
		}

	case jsonval.Null:
		_, isNull := field.(jsonval.Null)
		switch p.Op {
		case OpEq:
			return isNull
		case OpNe:
			return !isNull
		default:
			return false
		}

	default:
		return false
	}
}

func compareNumbers(got, want float64, op Op) bool {
	switch op {
	case OpEq:
		return math.Abs(got-want) < FloatEqEpsilon
	case OpNe:
		return math.Abs(got-want) >= FloatEqEpsilon
	case OpLt:
		return got < want
	case OpGt:
		return got > want
	case OpLe:
		return got <= want
	case OpGe:
		return got >= want
	default:
		return false
	}
}

func compareStrings(got, want string, op Op) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	case OpLt:
		return got < want
	case OpGt:
		return got > want
	case OpLe:
		return got <= want
	case OpGe:
		return got >= want
	default:
		return false
	}
}
