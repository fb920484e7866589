// Package form decodes CGI/gateway-style form submissions into a queryable
// collection of fields. It understands percent-encoded query strings,
// multipart bodies and JSON object bodies, and preserves the classic
// field-storage access semantics: a name that occurred once yields a scalar,
// a repeated name yields a list in occurrence order.
package form

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Form is the aggregated, queryable collection of all fields decoded from
// one request. It is built eagerly by New and read-only afterwards.
type Form struct {
	fields map[string][]*Field
	names  []string
}

func newForm(fields []*Field) *Form {
	f := &Form{fields: make(map[string][]*Field, len(fields))}

	for _, fld := range fields {
		f.add(fld)
	}

	return f
}

func (f *Form) add(fld *Field) {
	if _, ok := f.fields[fld.Name]; !ok {
		f.names = append(f.names, fld.Name)
	}

	f.fields[fld.Name] = append(f.fields[fld.Name], fld)
}

// Get returns every field submitted under name, in occurrence order. The
// returned slice is never empty; an absent name yields ErrFieldNotFound.
func (f *Form) Get(name string) ([]*Field, error) {
	fields, ok := f.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}

	return fields, nil
}

// GetValue returns the decoded value for name: the scalar value when the name
// occurred exactly once, a slice of values in occurrence order when it
// occurred more than once, and nil when it is absent.
func (f *Form) GetValue(name string) any {
	fields, ok := f.fields[name]
	if !ok {
		return nil
	}

	if len(fields) == 1 {
		return fields[0].Value.Raw()
	}

	values := make([]any, len(fields))
	for i, fld := range fields {
		values[i] = fld.Value.Raw()
	}

	return values
}

// GetFirst returns the value of the first occurrence of name, or nil when the
// name is absent.
func (f *Form) GetFirst(name string) any {
	fields, ok := f.fields[name]
	if !ok {
		return nil
	}

	return fields[0].Value.Raw()
}

// GetList returns all values for name in occurrence order. It always returns
// a slice, empty when the name is absent, and never unwraps a singleton.
func (f *Form) GetList(name string) []any {
	fields := f.fields[name]

	values := make([]any, len(fields))
	for i, fld := range fields {
		values[i] = fld.Value.Raw()
	}

	return values
}

// Has reports whether at least one field decoded under name.
func (f *Form) Has(name string) bool {
	_, ok := f.fields[name]
	return ok
}

// Names returns the field names in order of first occurrence.
func (f *Form) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)

	return names
}

// Len returns the number of distinct field names.
func (f *Form) Len() int {
	return len(f.fields)
}

// Values flattens the form into a plain name-to-value map, applying the same
// scalar-vs-list collapsing as GetValue. Useful for serializing a decoded
// form.
func (f *Form) Values() map[string]any {
	values := make(map[string]any, len(f.fields))
	for _, name := range f.names {
		values[name] = f.GetValue(name)
	}

	return values
}

// FromRequest decodes an http.Request through the same dispatch a gateway
// request goes through, deriving the meta-variables from the request line and
// headers. The request body is consumed.
func FromRequest(r *http.Request, keepBlankValues bool) (*Form, error) {
	vars := map[string]string{
		envRequestMethod: r.Method,
		envQueryString:   r.URL.RawQuery,
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		vars[envContentType] = ct
	}

	if r.ContentLength >= 0 {
		vars[envContentLength] = strconv.FormatInt(r.ContentLength, 10)
	}

	body := io.Reader(r.Body)
	if body == nil {
		body = http.NoBody
	}

	return New(Config{
		Environ:         Environ{Vars: vars, Input: body},
		KeepBlankValues: keepBlankValues,
	})
}
