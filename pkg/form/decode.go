package form

import (
	"fmt"
	"io"
	"mime"
	"os"
	"strings"
)

const contentTypeJSON = "application/json"

// osStdin is the terminal entry of the stream fallback chain. It is a
// variable so tests can exercise the missing-body path.
var osStdin io.Reader = os.Stdin

// Config carries everything a Form is constructed from.
type Config struct {
	// Environ supplies the CGI meta-variables and, optionally, the
	// gateway-provided input stream. A zero Environ means the process
	// environment.
	Environ Environ

	// Body is an explicit body stream. It takes precedence over the stream
	// the environment provides.
	Body io.Reader

	// Stdin overrides the final fallback stream, which defaults to the
	// process standard input.
	Stdin io.Reader

	// KeepBlankValues retains percent-decoded fields whose value is the
	// empty string instead of dropping them.
	KeepBlankValues bool
}

// bodySources returns the ordered stream fallback chain: the explicit
// stream, then the environment-provided one, then standard input. The first
// non-nil entry wins.
func (cfg Config) bodySources() []io.Reader {
	stdin := cfg.Stdin
	if stdin == nil {
		stdin = osStdin
	}

	return []io.Reader{cfg.Body, cfg.Environ.Input, stdin}
}

// bodyMethods are the request methods expected to carry a body. Any other
// method, including an absent one, decodes QUERY_STRING.
var bodyMethods = map[string]bool{
	"POST":  true,
	"PUT":   true,
	"PATCH": true,
}

// New decodes a request into a Form. The whole body is consumed eagerly
// during construction; either every field decodes or an error is returned
// and no Form is produced.
//
// The decoding strategy follows the request method and content type:
// non-body methods decode the QUERY_STRING meta-variable, application/json
// bodies decode as a JSON object, multipart bodies are delegated to the
// multipart decoder, and anything else is read as a percent-encoded string.
func New(cfg Config) (*Form, error) {
	if cfg.Environ.Vars == nil {
		cfg.Environ = Environ{Input: cfg.Environ.Input, Vars: SystemEnviron().Vars}
	}

	method := cfg.Environ.method()

	if !bodyMethods[method] {
		return newForm(parseQueryString(cfg.Environ.get(envQueryString), cfg.KeepBlankValues)), nil
	}

	body := firstStream(cfg.bodySources())
	if body == nil {
		return nil, fmt.Errorf("%w: no input stream for %s request", ErrMissingBody, method)
	}

	length := cfg.Environ.contentLength()
	mediaType, params := parseContentType(cfg.Environ.get(envContentType))

	var (
		fields []*Field
		err    error
	)

	switch {
	case mediaType == contentTypeJSON:
		fields, err = decodeJSONBody(body, length)
	case strings.HasPrefix(mediaType, "multipart/"):
		fields, err = decodeMultipartBody(body, params["boundary"], length)
	default:
		var raw []byte
		if raw, err = readBody(body, length); err != nil {
			err = fmt.Errorf("failed to read request body: %w", err)
		} else {
			fields = parseQueryString(string(raw), cfg.KeepBlankValues)
		}
	}

	if err != nil {
		return nil, err
	}

	return newForm(fields), nil
}

// firstStream resolves the fallback chain to its first usable stream.
func firstStream(sources []io.Reader) io.Reader {
	for _, src := range sources {
		if src != nil {
			return src
		}
	}

	return nil
}

// parseContentType extracts the media type and its parameters from a
// CONTENT_TYPE value. On a malformed value the parameters are dropped and
// the media type is recovered by stripping everything after the first ';'.
func parseContentType(contentType string) (mediaType string, params map[string]string) {
	mt, pm, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.TrimSpace(strings.Split(contentType, ";")[0])
		pm = make(map[string]string)
	}

	return strings.ToLower(mt), pm
}
