package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ksysoev/cgiform/pkg/form"
	"github.com/ksysoev/cgiform/pkg/inspect"
)

// RunParseCommand decodes one request from the CGI environment and writes the
// decoded fields to standard output in the requested format.
func RunParseCommand(ctx context.Context, arg *args) error {
	if err := initLogger(arg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	env := form.SystemEnviron()

	overrides := map[string]string{
		"REQUEST_METHOD": arg.Method,
		"CONTENT_TYPE":   arg.ContentType,
		"QUERY_STRING":   arg.Query,
	}

	for key, value := range overrides {
		if value != "" {
			env.Vars[key] = value
		}
	}

	var body io.Reader

	if arg.BodyPath != "" {
		f, err := os.Open(arg.BodyPath)
		if err != nil {
			return fmt.Errorf("failed to open body file: %w", err)
		}

		defer func() { _ = f.Close() }()

		body = f
	}

	frm, err := form.New(form.Config{
		Environ:         env,
		Body:            body,
		KeepBlankValues: arg.KeepBlank,
	})
	if err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}

	slog.DebugContext(ctx, "form decoded", "fields", frm.Len())

	return writeForm(os.Stdout, frm, arg.Output)
}

// writeForm renders the decoded form in one of the supported output formats.
func writeForm(w io.Writer, frm *form.Form, output string) error {
	switch output {
	case "", "pretty":
		return inspect.NewRenderer().RenderForm(w, frm)
	case "json":
		out, err := json.MarshalIndent(inspect.Structured(frm), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal form: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s\n", out)

		return err
	case "yaml":
		out, err := yaml.Marshal(inspect.Structured(frm))
		if err != nil {
			return fmt.Errorf("failed to marshal form: %w", err)
		}

		_, err = w.Write(out)

		return err
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
