package validator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"

	"github.com/dmitrymomot/formcheck/pkg/input"
	"github.com/dmitrymomot/formcheck/pkg/logger"
	"github.com/dmitrymomot/formcheck/pkg/messages"
	"github.com/dmitrymomot/formcheck/pkg/sanitizer"
	"github.com/dmitrymomot/formcheck/pkg/upload"
)

// DefaultMaxFileSize is the per-file size limit used when none is configured (1MB).
const DefaultMaxFileSize int64 = 1 << 20

// Validator runs one validation pass over request input.
// It is not safe for concurrent use; create one per request.
type Validator struct {
	lookup  input.Lookup
	catalog *messages.Catalog
	logger  *slog.Logger

	rules        map[string]RuleFunc
	patterns     map[string]*regexp.Regexp
	files        upload.RawSet
	fileOpts     []upload.Option
	maxFileSize  int64
	allowedTypes []string
	globalGate   bool

	source  input.Source
	inputs  map[string]any
	errors  Errors
	results map[string]any
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithCatalog replaces the default message catalog with a copy of c, so
// SetMessage on the validator never changes c.
func WithCatalog(c *messages.Catalog) Option {
	return func(v *Validator) {
		if c != nil {
			v.catalog = c.Clone()
		}
	}
}

// WithFiles provides the uploads that Field.Files operates on.
func WithFiles(files upload.RawSet) Option {
	return func(v *Validator) {
		if files != nil {
			v.files = files
		}
	}
}

// WithMaxFileSize sets the default per-file size limit in bytes.
func WithMaxFileSize(n int64) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxFileSize = n
		}
	}
}

// WithAllowedTypes sets the default media type allow-list for uploads.
// An empty list allows every type.
func WithAllowedTypes(types ...string) Option {
	return func(v *Validator) {
		v.allowedTypes = append([]string(nil), types...)
	}
}

// WithSniffer sets the content sniffer used for upload type checks.
func WithSniffer(s upload.Sniffer) Option {
	return func(v *Validator) {
		if s != nil {
			v.fileOpts = append(v.fileOpts, upload.WithSniffer(s))
		}
	}
}

// WithGlobalResultGate accepts results only while the pass has no error at
// all, instead of checking the accepted field alone.
func WithGlobalResultGate() Option {
	return func(v *Validator) { v.globalGate = true }
}

// New creates a Validator reading values from lookup.
func New(lookup input.Lookup, opts ...Option) *Validator {
	if lookup == nil {
		lookup = input.Values{}
	}

	v := &Validator{
		lookup:      lookup,
		catalog:     messages.New(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		rules:       builtinRules(),
		patterns:    make(map[string]*regexp.Regexp),
		files:       make(upload.RawSet),
		maxFileSize: DefaultMaxFileSize,
		source:      input.Post,
		inputs:      make(map[string]any),
		errors:      make(Errors),
		results:     make(map[string]any),
	}

	for _, opt := range opts {
		opt(v)
	}
	v.fileOpts = append(v.fileOpts, upload.WithLogger(v.logger))

	return v
}

// Register binds fn under name for use in declarative chains. Registering
// an existing name replaces it.
func (v *Validator) Register(name string, fn RuleFunc) error {
	if name == "" {
		return fmt.Errorf("%w: empty rule name", ErrInvalidRule)
	}
	if fn == nil {
		return fmt.Errorf("%w: rule %s", ErrNotCallable, name)
	}
	v.rules[name] = fn
	return nil
}

// Validate evaluates rules in order against values read from src.
// Validation failures are recorded, not returned; the returned error reports
// configuration problems such as an unknown source or rule.
func (v *Validator) Validate(ctx context.Context, rules *RuleSet, src input.Source) error {
	if !src.Valid() {
		v.logger.WarnContext(ctx, "unknown input source", logger.Source(string(src)))
		return fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
	if rules == nil {
		return fmt.Errorf("%w: rule set is nil", ErrInvalidRule)
	}
	v.source = src

	for name, def := range rules.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, _ := v.lookup.Lookup(src, name)
		v.inputs[name] = value

		f := &Field{v: v, name: name}
		if err := v.evaluate(f, def); err != nil {
			v.logger.WarnContext(ctx, "field evaluation aborted",
				logger.Field(name),
				logger.Source(string(src)),
				logger.Error(err),
			)
			return fmt.Errorf("field %s: %w", name, err)
		}

		v.logger.DebugContext(ctx, "field evaluated",
			logger.Field(name),
			logger.Source(string(src)),
			slog.Bool("failed", v.errors.Has(name)),
		)
	}

	return nil
}

func (v *Validator) evaluate(f *Field, def Definition) error {
	if def.isFunc {
		if def.callback == nil {
			return ErrNotCallable
		}
		if err := def.callback(f); err != nil {
			return err
		}
		return f.err
	}

	for _, spec := range def.specs {
		fn, ok := v.rules[spec.Name]
		if !ok {
			v.logger.Warn("rule is not registered", logger.Field(f.name), logger.Rule(spec.Name))
			return fmt.Errorf("%w: %s", ErrMethodNotFound, spec.Name)
		}
		if err := fn(f, spec.Params...); err != nil {
			return fmt.Errorf("rule %s: %w", spec.Name, err)
		}
		if f.err != nil {
			return fmt.Errorf("rule %s: %w", spec.Name, f.err)
		}
	}
	// Upload chains without mimes still honour the configured allow-list.
	if f.uploads != nil && !f.uploads.typed {
		f.uploads.Types(v.allowedTypes...)
	}
	f.Accept()
	return nil
}

// Errors returns a copy of the recorded messages keyed by field.
func (v *Validator) Errors() map[string]string {
	return maps.Clone(v.errors)
}

// Results returns a copy of the accepted values keyed by field.
func (v *Validator) Results() map[string]any {
	return maps.Clone(v.results)
}

// Failed reports whether any error was recorded.
func (v *Validator) Failed() bool {
	return len(v.errors) > 0
}

// Err returns the recorded errors as an error, or nil when the pass succeeded.
func (v *Validator) Err() error {
	if !v.Failed() {
		return nil
	}
	return maps.Clone(v.errors)
}

// Merged returns the accepted results plus every other submitted value of
// the active source, with tags and non-ASCII characters stripped and
// quotes encoded in the latter.
func (v *Validator) Merged() map[string]any {
	merged := maps.Clone(v.results)
	for key, val := range CompareData(v.lookup.All(v.source), v.results) {
		if _, accepted := merged[key]; accepted {
			continue
		}
		merged[key] = sanitizeValue(val)
	}
	return merged
}

// SetMessage overrides the template for a message kind.
func (v *Validator) SetMessage(key, template string) {
	v.catalog.Set(key, template)
}

// GetMessage resolves a message kind with params.
func (v *Validator) GetMessage(key string, params map[string]any) string {
	return v.catalog.Get(key, params)
}

// Source returns the source of the last Validate call.
func (v *Validator) Source() input.Source { return v.source }

func (v *Validator) hasError(key string) bool {
	return v.errors.Has(key)
}

func (v *Validator) addError(key, msg string) {
	v.errors[key] = msg
	v.logger.Debug("validation error recorded", logger.Field(key), slog.String("message", msg))
}

func (v *Validator) accept(name string) {
	if v.globalGate && v.Failed() {
		return
	}
	if !v.globalGate && v.hasError(name) {
		return
	}
	v.results[name] = v.inputs[name]
}

func (v *Validator) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := v.patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	v.patterns[pattern] = re
	return re, nil
}

var cleanValue = sanitizer.Compose(sanitizer.StripTags, sanitizer.EncodeQuotes, sanitizer.StripHigh)

func sanitizeValue(val any) any {
	switch s := val.(type) {
	case string:
		return cleanValue(s)
	case []string:
		return sanitizer.Each(s, cleanValue)
	default:
		return val
	}
}
