package form

import "strings"

// parseQueryString decodes a percent-encoded query into field occurrences,
// preserving left-to-right order. Pairs are separated by '&' or ';', each
// pair splits on the first '='. Occurrences with an empty decoded value are
// dropped unless keepBlank is set.
func parseQueryString(query string, keepBlank bool) []*Field {
	var fields []*Field

	for _, pair := range splitPairs(query) {
		name, value, _ := strings.Cut(pair, "=")

		name = unescapeQuery(name)
		value = unescapeQuery(value)

		if value == "" && !keepBlank {
			continue
		}

		fields = append(fields, newField(name, nil, TextValue(value)))
	}

	return fields
}

// splitPairs splits a query on '&' and ';' separators, skipping the empty
// segments runs of separators produce.
func splitPairs(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		return r == '&' || r == ';'
	})
}

// unescapeQuery percent-decodes a query component, treating '+' as space.
// Unlike url.QueryUnescape it never fails: an escape that is not two hex
// digits passes through literally.
func unescapeQuery(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
			i++
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 3
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}

	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
