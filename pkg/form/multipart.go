package form

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
)

// decodeMultipartBody delegates body parsing to mime/multipart and converts
// each part into one field occurrence, in the order parts appear. File parts
// carry their raw byte payload; other parts decode as text.
func decodeMultipartBody(body io.Reader, boundary string, length int64) ([]*Field, error) {
	if boundary == "" {
		return nil, fmt.Errorf("%w: missing boundary parameter", ErrMalformedMultipart)
	}

	if length >= 0 {
		body = io.LimitReader(body, length)
	}

	reader := multipart.NewReader(body, boundary)

	var fields []*Field

	for {
		part, err := reader.NextPart()

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedMultipart, err)
		}

		name := part.FormName()

		filename, isFile := partFilename(part)

		payload, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %q: %s", ErrMalformedMultipart, name, err)
		}

		if isFile {
			fields = append(fields, newField(name, &filename, BytesValue(payload)))
		} else {
			fields = append(fields, newField(name, nil, TextValue(string(payload))))
		}
	}

	return fields, nil
}

// partFilename returns the part's filename and whether its
// Content-Disposition carried one at all. multipart.Part.FileName cannot
// distinguish a missing filename from the empty filename an empty file slot
// submits, and that distinction is part of the Field contract.
func partFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}

	filename, ok := params["filename"]

	return filename, ok
}
