package form

import "errors"

var (
	// ErrMissingBody is returned when a body-bearing request has no usable
	// input stream.
	ErrMissingBody = errors.New("missing request body")

	// ErrInvalidJSONBody is returned when a declared application/json body
	// does not parse, or its top-level value is not an object.
	ErrInvalidJSONBody = errors.New("invalid json body")

	// ErrMalformedMultipart is returned when a multipart body has no boundary
	// or cannot be read to completion.
	ErrMalformedMultipart = errors.New("malformed multipart body")

	// ErrFieldNotFound is returned by Form.Get for names with no decoded
	// occurrence.
	ErrFieldNotFound = errors.New("field not found")
)
