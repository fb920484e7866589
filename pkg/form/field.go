package form

import "bytes"

// Field represents one decoded form value.
//
// Filename is nil for ordinary fields. For file parts it points at the
// submitted filename, which may be the empty string when the form was sent
// with an empty file slot.
//
// File is an independent, rewindable reader over the same content as Value,
// positioned at offset zero. Fields decoded from a JSON body have no
// byte-level content of their own, so their File is nil.
type Field struct {
	Filename *string
	File     *bytes.Reader
	Value    Value
	Name     string
}

func newField(name string, filename *string, value Value) *Field {
	fld := &Field{
		Name:     name,
		Filename: filename,
		Value:    value,
	}

	if content, ok := value.content(); ok {
		fld.File = bytes.NewReader(content)
	}

	return fld
}

// IsFile reports whether the field came from a file part of a multipart body.
func (f *Field) IsFile() bool {
	return f.Filename != nil
}
