// Package transform implements the chainable reshaping commands that run on
// an already-resolved query result: select fields, sort, group, aggregate.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eladbash/jdx/internal/jsonval"
	"github.com/eladbash/jdx/internal/query"
)

// Apply runs a transform command chain against a value.
//
// Commands are introduced by ":name" tokens and chained with " :"; each
// command consumes the previous command's output. A failure anywhere in the
// chain aborts the remaining commands.
//
// Chain splitting is purely lexical: an argument value containing the
// two-character sequence " :" will be mis-split. Known limitation, kept so
// existing unquoted queries keep their meaning.
func Apply(v jsonval.Value, commands string) (jsonval.Value, error) {
	current := v
	for _, command := range splitChain(commands) {
		next, err := applyOne(current, command)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// splitChain splits a command chain on " :" boundaries, restoring the colon
// each boundary consumed.
func splitChain(commands string) []string {
	parts := strings.Split(strings.TrimSpace(commands), " :")
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i > 0 {
			part = ":" + part
		}
		out = append(out, part)
	}
	return out
}

// applyOne executes a single ":name args" command.
func applyOne(v jsonval.Value, command string) (jsonval.Value, error) {
	cmd, args, _ := strings.Cut(command, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case ":keys":
		return transformKeys(v)
	case ":values":
		return transformValues(v)
	case ":count":
		return transformCount(v)
	case ":flatten":
		return transformFlatten(v)
	case ":pick":
		return transformPick(v, args)
	case ":omit":
		return transformOmit(v, args)
	case ":sort":
		return transformSort(v, args)
	case ":uniq":
		return transformUniq(v)
	case ":group_by":
		return transformGroupBy(v, args)
	case ":filter":
		return transformFilter(v, args)
	case ":sum", ":avg", ":min", ":max":
		return transformAggregate(v, cmd, args)
	default:
		return nil, fmt.Errorf("unknown transform command: %s", cmd)
	}
}

func transformKeys(v jsonval.Value) (jsonval.Value, error) {
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return nil, fmt.Errorf(":keys requires an object")
	}
	keys := make(jsonval.Array, 0, obj.Len())
	for _, k := range obj.Keys() {
		keys = append(keys, jsonval.String(k))
	}
	return keys, nil
}

func transformValues(v jsonval.Value) (jsonval.Value, error) {
	obj, ok := v.(*jsonval.Object)
	if !ok {
		return nil, fmt.Errorf(":values requires an object")
	}
	return jsonval.Array(obj.Values()), nil
}

func transformCount(v jsonval.Value) (jsonval.Value, error) {
	switch val := v.(type) {
	case jsonval.Array:
		return jsonval.Number(len(val)), nil
	case *jsonval.Object:
		return jsonval.Number(val.Len()), nil
	default:
		return nil, fmt.Errorf(":count requires an array or object")
	}
}

func transformFlatten(v jsonval.Value) (jsonval.Value, error) {
	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf(":flatten requires an array")
	}
	result := make(jsonval.Array, 0, len(arr))
	for _, item := range arr {
		if inner, ok := item.(jsonval.Array); ok {
			result = append(result, inner...)
		} else {
			result = append(result, item)
		}
	}
	return result, nil
}

func transformPick(v jsonval.Value, args string) (jsonval.Value, error) {
	if args == "" {
		return nil, fmt.Errorf(":pick requires field names (e.g., :pick name,email)")
	}
	fields := splitFields(args)

	switch val := v.(type) {
	case jsonval.Array:
		result := make(jsonval.Array, len(val))
		for i, item := range val {
			if obj, ok := item.(*jsonval.Object); ok {
				result[i] = selectFields(obj, fields, true)
			} else {
				result[i] = item
			}
		}
		return result, nil
	case *jsonval.Object:
		return selectFields(val, fields, true), nil
	default:
		return nil, fmt.Errorf(":pick requires an array of objects or an object")
	}
}

func transformOmit(v jsonval.Value, args string) (jsonval.Value, error) {
	if args == "" {
		return nil, fmt.Errorf(":omit requires field names (e.g., :omit metadata,internal)")
	}
	fields := splitFields(args)

	switch val := v.(type) {
	case jsonval.Array:
		result := make(jsonval.Array, len(val))
		for i, item := range val {
			if obj, ok := item.(*jsonval.Object); ok {
				result[i] = selectFields(obj, fields, false)
			} else {
				result[i] = item
			}
		}
		return result, nil
	case *jsonval.Object:
		return selectFields(val, fields, false), nil
	default:
		return nil, fmt.Errorf(":omit requires an array of objects or an object")
	}
}

func transformSort(v jsonval.Value, args string) (jsonval.Value, error) {
	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf(":sort requires an array")
	}

	sorted := make(jsonval.Array, len(arr))
	copy(sorted, arr)

	if args == "" {
		// Primitives sort by their textual form.
		sort.SliceStable(sorted, func(i, j int) bool {
			return jsonval.Encode(sorted[i]) < jsonval.Encode(sorted[j])
		})
		return sorted, nil
	}

	field := strings.TrimSpace(args)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareValues(fieldOrNull(sorted[i], field), fieldOrNull(sorted[j], field)) < 0
	})
	return sorted, nil
}

func transformUniq(v jsonval.Value) (jsonval.Value, error) {
	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf(":uniq requires an array")
	}

	// Whole-collection dedup by structural equality, first occurrence wins.
	seen := make(map[string]struct{}, len(arr))
	result := make(jsonval.Array, 0, len(arr))
	for _, item := range arr {
		key := jsonval.Canonical(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result, nil
}

func transformGroupBy(v jsonval.Value, args string) (jsonval.Value, error) {
	if args == "" {
		return nil, fmt.Errorf(":group_by requires a field name (e.g., :group_by type)")
	}
	field := strings.TrimSpace(args)

	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf(":group_by requires an array")
	}

	groups := make(map[string]jsonval.Array)
	for _, item := range arr {
		key := "null"
		if obj, isObj := item.(*jsonval.Object); isObj {
			if fv, found := obj.Get(field); found {
				if s, isStr := fv.(jsonval.String); isStr {
					key = string(s)
				} else {
					key = jsonval.Encode(fv)
				}
			}
		}
		groups[key] = append(groups[key], item)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := jsonval.NewObject()
	for _, k := range keys {
		result.Set(k, groups[k])
	}
	return result, nil
}

func transformFilter(v jsonval.Value, args string) (jsonval.Value, error) {
	if args == "" {
		return nil, fmt.Errorf(":filter requires an expression (e.g., :filter price < 10)")
	}
	arr, ok := v.(jsonval.Array)
	if !ok {
		return nil, fmt.Errorf(":filter requires an array")
	}

	pred, err := query.ParsePredicate(args)
	if err != nil {
		return nil, fmt.Errorf(":filter: %w", err)
	}

	result := make(jsonval.Array, 0, len(arr))
	for _, item := range arr {
		if pred.Eval(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

// splitFields splits a comma-separated field list, trimming whitespace.
func splitFields(args string) []string {
	parts := strings.Split(args, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}

// selectFields copies an object keeping (keep=true) or dropping (keep=false)
// the named fields, preserving member order.
func selectFields(obj *jsonval.Object, fields []string, keep bool) *jsonval.Object {
	result := jsonval.NewObject()
	for _, k := range obj.Keys() {
		if contains(fields, k) == keep {
			v, _ := obj.Get(k)
			result.Set(k, v)
		}
	}
	return result
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fieldOrNull resolves a field on an element for :sort, treating missing
// fields and non-object elements as null.
func fieldOrNull(item jsonval.Value, field string) jsonval.Value {
	if obj, ok := item.(*jsonval.Object); ok {
		if v, found := obj.Get(field); found {
			return v
		}
	}
	return jsonval.Null{}
}

// compareValues orders two values for :sort: numeric for number pairs,
// lexical for string pairs, textual form otherwise.
func compareValues(a, b jsonval.Value) int {
	if an, ok := a.(jsonval.Number); ok {
		if bn, ok := b.(jsonval.Number); ok {
			switch {
			case float64(an) < float64(bn):
				return -1
			case float64(an) > float64(bn):
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(jsonval.String); ok {
		if bs, ok := b.(jsonval.String); ok {
			return strings.Compare(string(as), string(bs))
		}
	}
	return strings.Compare(jsonval.Encode(a), jsonval.Encode(b))
}
