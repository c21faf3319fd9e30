package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eladbash/jdx/internal/jsonval"
)

// Format renders a schema as an indented human-readable tree. indent is the
// nesting depth of the enclosing context, two spaces per level.
func Format(t Type, indent int) string {
	pad := strings.Repeat("  ", indent)

	switch s := t.(type) {
	case Null:
		return "null"

	case Bool:
		return "bool"

	case Number:
		if s.Min == s.Max {
			return fmt.Sprintf("number  # %s", jsonval.FormatNumber(s.Min))
		}
		return fmt.Sprintf("number  # %s..%s",
			jsonval.FormatNumber(s.Min), jsonval.FormatNumber(s.Max))

	case String:
		return fmt.Sprintf("string  # %q", s.Sample)

	case Array:
		lenInfo := fmt.Sprintf("%d", s.LenMin)
		if s.LenMin != s.LenMax {
			lenInfo = fmt.Sprintf("%d..%d", s.LenMin, s.LenMax)
		}
		inner := Format(s.Items, indent+1)
		return fmt.Sprintf("[%s]  # array of %s", inner, lenInfo)

	case Object:
		if len(s.Fields) == 0 {
			return "{}"
		}
		names := make([]string, 0, len(s.Fields))
		for name := range s.Fields {
			names = append(names, name)
		}
		sort.Strings(names)

		lines := []string{"{"}
		for _, name := range names {
			field := s.Fields[name]
			opt := ""
			if field.Optional {
				opt = "?"
			}
			val := Format(field.Schema, indent+1)
			lines = append(lines, fmt.Sprintf("%s  %s%s: %s,", pad, name, opt, val))
		}
		lines = append(lines, pad+"}")
		return strings.Join(lines, "\n")

	case Union:
		return strings.Join(s.Names, " | ")

	default:
		return "unknown"
	}
}
