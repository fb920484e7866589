package form

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// CGI meta-variable names, per RFC 3875.
const (
	envRequestMethod = "REQUEST_METHOD"
	envContentType   = "CONTENT_TYPE"
	envContentLength = "CONTENT_LENGTH"
	envQueryString   = "QUERY_STRING"
)

// Environ is the gateway environment a request arrives with: the CGI
// meta-variables plus the input stream the gateway conventionally provides
// alongside them.
type Environ struct {
	Input io.Reader
	Vars  map[string]string
}

// SystemEnviron snapshots the process environment into an Environ. Input is
// left nil, so body decoding falls back to standard input.
func SystemEnviron() Environ {
	vars := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	return Environ{Vars: vars}
}

func (e Environ) get(key string) string {
	return e.Vars[key]
}

// method returns the request method in upper case, empty when unset.
func (e Environ) method() string {
	return strings.ToUpper(strings.TrimSpace(e.get(envRequestMethod)))
}

// contentLength returns the declared body length, or -1 when the
// CONTENT_LENGTH variable is absent or not a valid non-negative integer.
func (e Environ) contentLength() int64 {
	raw := e.get(envContentLength)
	if raw == "" {
		return -1
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return -1
	}

	return n
}
