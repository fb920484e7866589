package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeJSONBody parses an application/json body into field occurrences. The
// top-level value must be an object; each key becomes a field name, and an
// array value produces one occurrence per element, mirroring how a repeated
// form field decodes. Values pass through verbatim with no per-field
// decoding.
//
// The object is walked token by token instead of unmarshalled into a map, so
// occurrences keep the document order of the keys.
func decodeJSONBody(body io.Reader, length int64) ([]*Field, error) {
	raw, err := readBody(body, length)
	if err != nil {
		return nil, fmt.Errorf("failed to read json body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSONBody, err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidJSONBody)
	}

	var fields []*Field

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJSONBody, err)
		}

		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrInvalidJSONBody)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidJSONBody, err)
		}

		if list, ok := value.([]any); ok {
			for _, item := range list {
				fields = append(fields, newField(name, nil, JSONValue(item)))
			}

			continue
		}

		fields = append(fields, newField(name, nil, JSONValue(value)))
	}

	// Closing brace, then nothing else.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSONBody, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level object", ErrInvalidJSONBody)
	}

	return fields, nil
}

// readBody reads exactly length bytes of the body, or everything available
// when the declared length is unknown.
func readBody(body io.Reader, length int64) ([]byte, error) {
	if length >= 0 {
		body = io.LimitReader(body, length)
	}

	return io.ReadAll(body)
}
