package messages

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// missingKeyPrefix starts the string returned for unknown keys.
const missingKeyPrefix = "Invalid error message key: "

var placeholderRegex = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Catalog maps message kinds to templates. It is safe for concurrent use,
// although a validation pass normally owns its own catalog.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]string
	logger    *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used to report catalog misses.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTemplates overrides or adds templates on top of the defaults.
func WithTemplates(templates map[string]string) Option {
	return func(c *Catalog) {
		maps.Copy(c.templates, templates)
	}
}

// WithoutDefaults starts the catalog empty instead of with the built-in templates.
func WithoutDefaults() Option {
	return func(c *Catalog) {
		clear(c.templates)
	}
}

// New creates a catalog seeded with Defaults.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		templates: Defaults(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves key with params. Unknown keys yield a fallback naming the key.
func (c *Catalog) Get(key string, params map[string]any) string {
	c.mu.RLock()
	tmpl, ok := c.templates[key]
	c.mu.RUnlock()

	if !ok {
		c.logger.Warn("message key not found", "key", key)
		return missingKeyPrefix + key
	}
	return Render(tmpl, params)
}

// Set inserts or overwrites the template for key. The template is not checked.
func (c *Catalog) Set(key, template string) {
	c.mu.Lock()
	c.templates[key] = template
	c.mu.Unlock()
}

// Has reports whether key has a template.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.templates[key]
	return ok
}

// Template returns the raw template for key.
func (c *Catalog) Template(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.templates[key]
	return tmpl, ok
}

// Clone returns an independent copy of c sharing only its logger.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Catalog{templates: maps.Clone(c.templates), logger: c.logger}
}

// Keys returns the registered keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.templates))
}

// Render substitutes {{name}} placeholders in tmpl with values from params.
// Placeholders without a matching parameter are kept as is.
func Render(tmpl string, params map[string]any) string {
	if len(params) == 0 {
		return tmpl
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-2]
		if val, ok := params[name]; ok {
			return stringify(val)
		}
		return match
	})
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
