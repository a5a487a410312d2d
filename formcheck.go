package formcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formcheck/pkg/input"
	"github.com/dmitrymomot/formcheck/pkg/logger"
	"github.com/dmitrymomot/formcheck/pkg/upload"
	"github.com/dmitrymomot/formcheck/pkg/validator"
)

// Forms creates per-request forms from a shared configuration. It is safe
// for concurrent use.
type Forms struct {
	cfg       Config
	source    input.Source
	logger    *slog.Logger
	baseOpts  []validator.Option
	extraOpts []validator.Option
	inputOpts []input.Option
}

// Option configures Forms.
type Option func(*Forms)

// WithLogger sets the logger handed to every validator.
func WithLogger(l *slog.Logger) Option {
	return func(fs *Forms) {
		if l != nil {
			fs.logger = l
		}
	}
}

// WithValidatorOptions appends options applied to every validator after the
// configured ones.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(fs *Forms) { fs.extraOpts = append(fs.extraOpts, opts...) }
}

// WithInputOptions appends options for request parsing.
func WithInputOptions(opts ...input.Option) Option {
	return func(fs *Forms) { fs.inputOpts = append(fs.inputOpts, opts...) }
}

// New validates cfg and prepares the shared validator options. A configured
// messages file is read once here.
func New(ctx context.Context, cfg Config, opts ...Option) (*Forms, error) {
	src, err := cfg.Source()
	if err != nil {
		return nil, err
	}

	fs := &Forms{cfg: cfg, source: src, logger: logger.Discard()}
	for _, opt := range opts {
		opt(fs)
	}

	base, err := cfg.Options(ctx, fs.logger)
	if err != nil {
		return nil, err
	}
	fs.baseOpts = base
	return fs, nil
}

// NewLogger builds the logger described by cfg. Records logged with a
// request context carry the chi request id.
func NewLogger(cfg Config, opts ...logger.Option) *slog.Logger {
	return logger.New(append([]logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(RequestIDExtractor),
	}, opts...)...)
}

// RequestIDExtractor adds the id set by chi's middleware.RequestID.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}

// FromRequest parses r and returns a Form bound to it. Callers must call
// Cleanup once done.
func (fs *Forms) FromRequest(r *http.Request) (*Form, error) {
	inputOpts := append([]input.Option{
		input.WithMaxMemory(fs.cfg.MaxMemory),
		input.WithTempDir(fs.cfg.UploadTempDir),
	}, fs.inputOpts...)

	req, err := input.FromRequest(r, inputOpts...)
	if err != nil {
		return nil, err
	}

	opts := make([]validator.Option, 0, len(fs.baseOpts)+len(fs.extraOpts)+1)
	opts = append(opts, fs.baseOpts...)
	opts = append(opts, validator.WithFiles(req.Files()))
	opts = append(opts, fs.extraOpts...)

	return &Form{
		req:    req,
		v:      validator.New(req, opts...),
		source: fs.source,
		logger: fs.logger,
	}, nil
}

// FromRequest is a shortcut for New followed by Forms.FromRequest.
func FromRequest(r *http.Request, cfg Config, opts ...Option) (*Form, error) {
	fs, err := New(r.Context(), cfg, opts...)
	if err != nil {
		return nil, err
	}
	return fs.FromRequest(r)
}

// Form is one validation pass over one request.
type Form struct {
	req    *input.Request
	v      *validator.Validator
	source input.Source
	logger *slog.Logger
}

// Validate runs rules against the configured default source.
func (f *Form) Validate(ctx context.Context, rules *validator.RuleSet) error {
	return f.v.Validate(ctx, rules, f.source)
}

// ValidateSource runs rules against src.
func (f *Form) ValidateSource(ctx context.Context, rules *validator.RuleSet, src input.Source) error {
	return f.v.Validate(ctx, rules, src)
}

func (f *Form) Failed() bool { return f.v.Failed() }

func (f *Form) Errors() map[string]string { return f.v.Errors() }

func (f *Form) Results() map[string]any { return f.v.Results() }

func (f *Form) Merged() map[string]any { return f.v.Merged() }

func (f *Form) Err() error { return f.v.Err() }

// Validator exposes the underlying validator, e.g. for SetMessage.
func (f *Form) Validator() *validator.Validator { return f.v }

// Request exposes the parsed request.
func (f *Form) Request() *input.Request { return f.req }

// Store writes every accepted upload of field to storage under a generated
// unique key. Descriptors that carry no content are skipped.
func (f *Form) Store(ctx context.Context, storage upload.Storage, field string) ([]*upload.Object, error) {
	files, ok := f.v.Results()[field].([]*upload.File)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotUploadField, field)
	}

	objects := make([]*upload.Object, 0, len(files))
	for _, file := range files {
		if file.ErrorCode() != upload.CodeOK {
			continue
		}
		obj, err := file.Store(ctx, storage, "")
		if err != nil {
			f.logger.ErrorContext(ctx, "failed to store upload",
				logger.Field(field),
				logger.File(file.ClientFilename(), file.Size()),
				logger.Error(err),
			)
			return objects, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// Cleanup removes temporary upload files that were not stored or moved.
func (f *Form) Cleanup() error {
	err := f.req.Cleanup()
	if err != nil {
		f.logger.Warn("failed to clean up uploads", logger.Error(err))
	}
	return err
}
