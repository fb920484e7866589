package form

// Kind identifies the shape of a decoded field value. Query-string and
// multipart text fields carry Text, file parts carry Bytes, and fields from a
// JSON body carry whatever the JSON decoder produced.
type Kind int

const (
	KindText Kind = iota
	KindBytes
	KindJSON
)

// String returns a human-readable name for the kind, used in rendered output.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Value is the decoded payload of a single field. It is a tagged union over
// text, raw bytes and JSON-decoded values, so callers switch on Kind instead
// of type-asserting an untyped field.
type Value struct {
	json  any
	text  string
	bytes []byte
	kind  Kind
}

// TextValue wraps a decoded text value, as produced by query-string decoding
// and multipart non-file parts.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// BytesValue wraps a raw byte payload, as produced by multipart file parts.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// JSONValue wraps a JSON-decoded value. The value passes through verbatim, so
// it may itself be a number, string, list, object, boolean or nil.
func JSONValue(v any) Value {
	return Value{kind: KindJSON, json: v}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the text payload and whether the value holds one.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Bytes returns the byte payload and whether the value holds one.
func (v Value) Bytes() ([]byte, bool) {
	return v.bytes, v.kind == KindBytes
}

// JSON returns the JSON-decoded payload and whether the value holds one.
func (v Value) JSON() (any, bool) {
	return v.json, v.kind == KindJSON
}

// Raw unwraps the value into its plain Go representation: string for text,
// []byte for bytes, and the decoded value for JSON.
func (v Value) Raw() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindBytes:
		return v.bytes
	default:
		return v.json
	}
}

// content returns the byte-level content backing the value, and whether such
// content exists. JSON values have no byte-level representation of their own.
func (v Value) content() ([]byte, bool) {
	switch v.kind {
	case KindText:
		return []byte(v.text), true
	case KindBytes:
		return v.bytes, true
	default:
		return nil, false
	}
}
