package query

import (
	"strconv"
	"strings"
)

// Parse converts a dot-notation query string into path segments.
//
// The query must begin with '.'; "." alone parses to an empty segment slice
// (the document root). A trailing dot is tolerated as an in-progress query
// because the interactive front end parses on every keystroke.
//
// Example:
//
//	Parse(".store.books[0].author")
//	// => [Key("store"), Key("books"), Index(0), Key("author")]
func Parse(input string) ([]Segment, error) {
	if input == "" {
		return nil, &ParseError{Code: ErrCodeEmpty}
	}

	chars := []rune(input)
	n := len(chars)

	if chars[0] != '.' {
		return nil, &ParseError{Code: ErrCodeMustStartWithDot}
	}

	// Just the root "."
	if n == 1 {
		return []Segment{}, nil
	}

	segments := []Segment{}
	i := 1 // skip leading '.'

	// First segment right after the leading dot, unless it opens a bracket
	// or is another dot.
	if i < n && chars[i] != '.' && chars[i] != '[' {
		if chars[i] == '*' {
			segments = append(segments, Wildcard{})
			i++
		} else {
			start := i
			for i < n && chars[i] != '.' && chars[i] != '[' {
				i++
			}
			segments = append(segments, Key(string(chars[start:i])))
		}
	}

	for i < n {
		switch chars[i] {
		case '[':
			next, segs, err := parseBracket(chars, i)
			if err != nil {
				return nil, err
			}
			segments = append(segments, segs...)
			i = next

		case '.':
			i++ // skip '.'

			if i >= n {
				// Trailing dot: partial input, not an error.
				return segments, nil
			}

			if chars[i] == '*' {
				segments = append(segments, Wildcard{})
				i++
				continue
			}

			// ".[": let the bracket case handle it.
			if chars[i] == '[' {
				continue
			}

			// "..": partial input, skip.
			if chars[i] == '.' {
				continue
			}

			start := i
			for i < n && chars[i] != '.' && chars[i] != '[' {
				i++
			}
			segments = append(segments, Key(string(chars[start:i])))

		default:
			return nil, &ParseError{Code: ErrCodeUnexpectedChar, Ch: chars[i], Pos: i}
		}
	}

	return segments, nil
}

// parseBracket parses a bracket expression starting at the '[' at position
// start, returning the position after the closing ']' and the segments it
// produced.
func parseBracket(chars []rune, start int) (int, []Segment, error) {
	bracketStart := start
	i := start + 1 // skip '['
	n := len(chars)

	if i >= n {
		return 0, nil, &ParseError{Code: ErrCodeUnclosedBracket, Pos: bracketStart}
	}

	switch c := chars[i]; {
	// Wildcard: [*]
	case c == '*':
		i++
		if i >= n || chars[i] != ']' {
			return 0, nil, &ParseError{Code: ErrCodeUnclosedBracket, Pos: bracketStart}
		}
		return i + 1, []Segment{Wildcard{}}, nil

	// Quoted key: ["key"]
	case c == '"':
		i++ // skip opening quote
		keyStart := i
		var key strings.Builder
		for i < n && chars[i] != '"' {
			if chars[i] == '\\' && i+1 < n {
				i++ // take the escaped character verbatim
			}
			key.WriteRune(chars[i])
			i++
		}
		if i >= n {
			return 0, nil, &ParseError{Code: ErrCodeUnclosedQuote, Pos: keyStart - 1}
		}
		i++ // skip closing quote
		if i >= n || chars[i] != ']' {
			return 0, nil, &ParseError{Code: ErrCodeUnclosedBracket, Pos: bracketStart}
		}
		return i + 1, []Segment{Key(key.String())}, nil

	// Numeric content: index or slice.
	case c >= '0' && c <= '9', c == '-', c == ':':
		contentStart := i
		for i < n && chars[i] != ']' {
			i++
		}
		if i >= n {
			return 0, nil, &ParseError{Code: ErrCodeUnclosedBracket, Pos: bracketStart}
		}
		content := string(chars[contentStart:i])
		i++ // skip ']'

		if strings.Contains(content, ":") {
			seg, err := parseSlice(content, contentStart)
			if err != nil {
				return 0, nil, err
			}
			return i, []Segment{seg}, nil
		}

		idx, err := strconv.Atoi(content)
		if err != nil {
			return 0, nil, &ParseError{Code: ErrCodeInvalidIndex, Value: content, Pos: contentStart}
		}
		return i, []Segment{Index(idx)}, nil

	// Anything else: filter predicate expression.
	default:
		contentStart := i
		for i < n && chars[i] != ']' {
			i++
		}
		if i >= n {
			return 0, nil, &ParseError{Code: ErrCodeUnclosedBracket, Pos: bracketStart}
		}
		expr := string(chars[contentStart:i])
		i++ // skip ']'

		pred, err := ParsePredicate(expr)
		if err != nil {
			return 0, nil, &ParseError{Code: ErrCodeInvalidPredicate, Expr: expr, Pos: contentStart}
		}
		return i, []Segment{Filter{Pred: pred}}, nil
	}
}

// parseSlice splits numeric bracket content on the first ':' into optional
// start/end bounds.
func parseSlice(content string, pos int) (Segment, error) {
	startStr, endStr, _ := strings.Cut(content, ":")

	var start, end *int
	if startStr != "" {
		v, err := strconv.Atoi(startStr)
		if err != nil {
			return nil, &ParseError{Code: ErrCodeInvalidIndex, Value: startStr, Pos: pos}
		}
		start = &v
	}
	if endStr != "" {
		v, err := strconv.Atoi(endStr)
		if err != nil {
			return nil, &ParseError{Code: ErrCodeInvalidIndex, Value: endStr, Pos: pos}
		}
		end = &v
	}
	return Slice{Start: start, End: end}, nil
}

// LastKeyword returns the in-progress token after the last '.' or '[' of a
// query, with any trailing ']' stripped. It identifies what the user is
// currently typing and tolerates partially invalid queries.
//
// LastKeyword(".foo.ba") == "ba"; LastKeyword(".foo.") == "".
func LastKeyword(input string) string {
	if input == "" || input == "." {
		return ""
	}

	lastSep := 0
	for i, r := range input {
		if r == '.' || r == '[' {
			lastSep = i
		}
	}

	after := input[lastSep+1:]
	return strings.TrimRight(after, "]")
}
