// Package inspect runs a local HTTP server that decodes every incoming
// request through the form package and shows the resulting fields in the
// terminal.
package inspect

import (
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"

	"github.com/ksysoev/cgiform/pkg/form"
)

// Renderer writes decoded fields as colorized, human-readable lines.
type Renderer struct {
	nameColor  *color.Color
	valueColor *color.Color
	metaColor  *color.Color
	jsonFmt    *colorjson.Formatter
}

// NewRenderer creates a Renderer with the default color settings.
func NewRenderer() *Renderer {
	f := colorjson.NewFormatter()
	f.Indent = 0
	f.KeyColor = color.New(color.FgMagenta)
	f.StringColor = color.New(color.FgYellow)
	f.BoolColor = color.New(color.FgBlue)
	f.NumberColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.FgRed)

	return &Renderer{
		nameColor:  color.New(color.FgCyan),
		valueColor: color.New(color.FgYellow),
		metaColor:  color.New(color.FgGreen),
		jsonFmt:    f,
	}
}

// RenderForm writes one line per decoded field occurrence, in first
// occurrence order of the names.
func (rd *Renderer) RenderForm(w io.Writer, frm *form.Form) error {
	for _, name := range frm.Names() {
		fields, err := frm.Get(name)
		if err != nil {
			return err
		}

		for _, fld := range fields {
			if err := rd.renderField(w, fld); err != nil {
				return err
			}
		}
	}

	return nil
}

func (rd *Renderer) renderField(w io.Writer, fld *form.Field) error {
	if fld.IsFile() {
		payload, _ := fld.Value.Bytes()

		filename := *fld.Filename
		if filename == "" {
			filename = "(empty)"
		}

		_, err := fmt.Fprintf(w, "%s: [file: %s, %s]\n",
			rd.nameColor.Sprint(fld.Name),
			rd.valueColor.Sprint(filename),
			rd.metaColor.Sprintf("%d bytes", len(payload)))

		return err
	}

	if decoded, ok := fld.Value.JSON(); ok {
		out, err := rd.jsonFmt.Marshal(decoded)
		if err != nil {
			return fmt.Errorf("failed to format json value: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s: %s\n", rd.nameColor.Sprint(fld.Name), out)

		return err
	}

	text, _ := fld.Value.Text()

	_, err := fmt.Fprintf(w, "%s: %s\n", rd.nameColor.Sprint(fld.Name), rd.valueColor.Sprint(text))

	return err
}

// Structured flattens a form into a value suitable for slog attributes. File
// fields reduce to their metadata rather than raw bytes.
func Structured(frm *form.Form) map[string]any {
	result := make(map[string]any, frm.Len())

	for _, name := range frm.Names() {
		fields, err := frm.Get(name)
		if err != nil {
			continue
		}

		values := make([]any, len(fields))
		for i, fld := range fields {
			values[i] = structuredValue(fld)
		}

		if len(values) == 1 {
			result[name] = values[0]
		} else {
			result[name] = values
		}
	}

	return result
}

func structuredValue(fld *form.Field) any {
	if fld.IsFile() {
		payload, _ := fld.Value.Bytes()

		return map[string]any{
			"filename": *fld.Filename,
			"size":     len(payload),
		}
	}

	return fld.Value.Raw()
}
