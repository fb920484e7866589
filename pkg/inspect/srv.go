package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ksysoev/cgiform/pkg/form"
)

const contentTypeJSON = "application/json"

// Config describes the inspector server: where it listens, how it decodes
// incoming forms, and the canned response it replies with.
type Config struct {
	Listen          string   `mapstructure:"listen"`
	Body            string   `mapstructure:"body"`
	JSON            string   `mapstructure:"json"`
	Headers         []string `mapstructure:"headers"`
	Status          int      `mapstructure:"status"`
	KeepBlankValues bool     `mapstructure:"keep_blank_values"`
}

// Response is the canned reply sent for every inspected request.
type Response struct {
	Headers     http.Header
	Body        string
	ContentType string
	Status      int
}

// Server decodes every incoming request body through the form package and
// renders the fields to its output writer.
type Server struct {
	out       io.Writer
	render    *Renderer
	isReady   chan struct{}
	resp      Response
	listen    string
	addr      string
	keepBlank bool
}

// New validates cfg and creates a Server. The status code must be a valid
// HTTP status, and body and json responses are mutually exclusive.
func New(cfg Config) (*Server, error) {
	if cfg.Status < 200 || cfg.Status >= 600 {
		return nil, fmt.Errorf("invalid status code: %d", cfg.Status)
	}

	resp := Response{
		Status:  cfg.Status,
		Headers: make(http.Header),
	}

	switch {
	case cfg.JSON != "" && cfg.Body != "":
		return nil, fmt.Errorf("cannot specify both body and json responses at the same time")
	case cfg.JSON != "":
		resp.Body = cfg.JSON
		resp.ContentType = contentTypeJSON
	case cfg.Body != "":
		resp.Body = cfg.Body
		resp.ContentType = "text/plain"
	}

	for _, header := range cfg.Headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header format: %s (expected 'Name:Value')", header)
		}

		headerName := strings.TrimSpace(parts[0])
		headerValue := strings.TrimSpace(parts[1])

		if headerName == "" {
			return nil, fmt.Errorf("header name cannot be empty")
		}

		resp.Headers.Add(headerName, headerValue)
	}

	listen := cfg.Listen
	if listen == "" {
		listen = "localhost:0"
	}

	return &Server{
		isReady:   make(chan struct{}),
		render:    NewRenderer(),
		out:       os.Stdout,
		resp:      resp,
		listen:    listen,
		keepBlank: cfg.KeepBlankValues,
	}, nil
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Readiness is announced by closing the isReady channel, after which
// Addr returns the bound address.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.listen)
	if err != nil {
		close(s.isReady)
		return fmt.Errorf("failed to start inspector server: %w", err)
	}

	s.addr = l.Addr().String()

	srv := http.Server{
		Handler:           reqID()(s),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		if err := srv.Close(); err != nil {
			slog.Error("failed to close inspector server", "error", err)
		}
	}()

	close(s.isReady)

	return srv.Serve(l)
}

// Addr waits for the server to be ready and returns the bound address in
// "host:port" format.
func (s *Server) Addr() string {
	<-s.isReady
	return s.addr
}

// ServeHTTP decodes the request into a form, renders the fields, and replies
// with the configured response. Requests that fail to decode get a 400 with
// the decode error instead.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, _ = fmt.Fprintf(s.out, "%s %s %s\n", r.Method, r.URL.String(), r.Proto)

	frm, err := form.FromRequest(r, s.keepBlank)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	slog.DebugContext(ctx, "request decoded", "fields", Structured(frm))

	if frm.Len() > 0 {
		if err := s.render.RenderForm(s.out, frm); err != nil {
			slog.ErrorContext(ctx, "failed to render form", "error", err)
		}

		_, _ = fmt.Fprintln(s.out)
	}

	for name, values := range s.resp.Headers {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}

	if s.resp.ContentType != "" && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", s.resp.ContentType)
	}

	w.WriteHeader(s.resp.Status)

	if _, err := w.Write([]byte(s.resp.Body)); err != nil {
		slog.ErrorContext(ctx, "failed to write response", "error", err)
	}
}
