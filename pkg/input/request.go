package input

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formcheck/pkg/upload"
)

// DefaultMaxMemory is the default memory budget for multipart parsing (10MB).
const DefaultMaxMemory = 10 << 20

var spoolFiles = upload.FromMultipart

// Request is a Lookup over an *http.Request. Build it with FromRequest.
type Request struct {
	raw    *http.Request
	values map[Source]map[string]any
	files  upload.RawSet
	env    func(string) (string, bool)
	envAll func() map[string]any
}

// Option configures FromRequest.
type Option func(*requestOptions)

type requestOptions struct {
	maxMemory int64
	tempDir   string
	env       map[string]string
}

// WithMaxMemory sets the multipart memory budget.
func WithMaxMemory(n int64) Option {
	return func(o *requestOptions) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// WithTempDir sets where uploaded files are spooled.
func WithTempDir(dir string) Option {
	return func(o *requestOptions) { o.tempDir = dir }
}

// WithEnvironment replaces the process environment for the env source.
func WithEnvironment(env map[string]string) Option {
	return func(o *requestOptions) { o.env = env }
}

// FromRequest parses r once and snapshots every source.
func FromRequest(r *http.Request, opts ...Option) (*Request, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidForm)
	}

	o := &requestOptions{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(o)
	}

	req := &Request{
		raw:    r,
		values: make(map[Source]map[string]any, len(Sources())),
		files:  make(upload.RawSet),
	}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		files, err := spoolFiles(r.MultipartForm, o.tempDir)
		if err != nil {
			return nil, errors.Join(err, r.MultipartForm.RemoveAll())
		}
		req.files = files
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	req.values[Post] = flatten(r.PostForm)
	req.values[Get] = flatten(r.URL.Query())
	req.values[Cookie] = cookies(r)
	req.values[Server] = serverVars(r)
	req.values[Route] = routeParams(r)

	if o.env != nil {
		req.env = func(name string) (string, bool) {
			v, ok := o.env[name]
			return v, ok
		}
		req.envAll = func() map[string]any {
			out := make(map[string]any, len(o.env))
			for k, v := range o.env {
				out[k] = v
			}
			return out
		}
	} else {
		req.env = os.LookupEnv
		req.envAll = environ
	}

	return req, nil
}

// Raw returns the wrapped request.
func (req *Request) Raw() *http.Request { return req.raw }

// Files returns the spooled uploads.
func (req *Request) Files() upload.RawSet { return req.files }

// IsMethod reports whether the request used method (case-insensitive).
func (req *Request) IsMethod(method string) bool {
	return strings.EqualFold(req.raw.Method, method)
}

func (req *Request) Lookup(src Source, name string) (any, bool) {
	if src == Env {
		v, ok := req.env(name)
		if !ok {
			return nil, false
		}
		return v, true
	}
	val, ok := req.values[src][name]
	return val, ok
}

func (req *Request) All(src Source) map[string]any {
	if src == Env {
		return req.envAll()
	}
	return maps.Clone(req.values[src])
}

// Cleanup removes spooled uploads that were not moved and multipart temp files.
func (req *Request) Cleanup() error {
	var errs []error
	if err := req.files.Cleanup(); err != nil {
		errs = append(errs, err)
	}
	if req.raw.MultipartForm != nil {
		if err := req.raw.MultipartForm.RemoveAll(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func flatten(values map[string][]string) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = Normalize(v)
	}
	return out
}

func cookies(r *http.Request) map[string]any {
	grouped := make(map[string][]string)
	for _, c := range r.Cookies() {
		grouped[c.Name] = append(grouped[c.Name], c.Value)
	}
	return flatten(grouped)
}

// serverVars exposes request metadata under CGI-style names.
func serverVars(r *http.Request) map[string]any {
	vars := map[string]any{
		"REQUEST_METHOD":  r.Method,
		"REQUEST_URI":     r.URL.RequestURI(),
		"QUERY_STRING":    r.URL.RawQuery,
		"PATH_INFO":       r.URL.Path,
		"REMOTE_ADDR":     r.RemoteAddr,
		"CLIENT_IP":       clientIP(r),
		"SERVER_PROTOCOL": r.Proto,
		"HTTP_HOST":       r.Host,
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		vars["CONTENT_TYPE"] = ct
	}
	if r.ContentLength >= 0 {
		vars["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}
	if r.TLS != nil {
		vars["HTTPS"] = "on"
	}

	for name, values := range r.Header {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if _, exists := vars[key]; exists {
			continue
		}
		vars[key] = strings.Join(values, ", ")
	}
	return vars
}

func routeParams(r *http.Request) map[string]any {
	out := make(map[string]any)
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return out
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) && key != "*" {
			out[key] = rctx.URLParams.Values[i]
		}
	}
	return out
}

func environ() map[string]any {
	env := os.Environ()
	out := make(map[string]any, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			out[k] = v
		}
	}
	return out
}
