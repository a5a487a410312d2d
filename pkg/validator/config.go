package validator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formcheck/pkg/input"
	"github.com/dmitrymomot/formcheck/pkg/messages"
)

// Result gate modes.
const (
	GateField  = "field"
	GateGlobal = "global"
)

// Config holds validator settings loaded from the environment.
type Config struct {
	MaxFileSize      int64    `env:"MAX_FILE_SIZE" envDefault:"1048576"`
	AllowedMimeTypes []string `env:"ALLOWED_MIME_TYPES" envSeparator:","`
	DefaultSource    string   `env:"DEFAULT_SOURCE" envDefault:"post"`
	ResultGate       string   `env:"RESULT_GATE" envDefault:"field"`
	MessagesFile     string   `env:"MESSAGES_FILE"`
	UploadTempDir    string   `env:"UPLOAD_TEMP_DIR"`
	MaxMemory        int64    `env:"MAX_MEMORY" envDefault:"10485760"`
}

// Source parses DefaultSource.
func (c Config) Source() (input.Source, error) {
	if c.DefaultSource == "" {
		return input.Post, nil
	}
	return input.ParseSource(c.DefaultSource)
}

// Options turns the config into validator options. A configured messages
// file is loaded into a fresh catalog on top of the defaults.
func (c Config) Options(ctx context.Context, logger *slog.Logger) ([]Option, error) {
	opts := []Option{
		WithLogger(logger),
		WithMaxFileSize(c.MaxFileSize),
		WithAllowedTypes(c.AllowedMimeTypes...),
	}

	switch c.ResultGate {
	case "", GateField:
	case GateGlobal:
		opts = append(opts, WithGlobalResultGate())
	default:
		return nil, fmt.Errorf("%w: unknown result gate %q", ErrInvalidRule, c.ResultGate)
	}

	if c.MessagesFile != "" {
		catalog := messages.New(messages.WithLogger(logger))
		if err := catalog.LoadFile(ctx, c.MessagesFile); err != nil {
			return nil, err
		}
		opts = append(opts, WithCatalog(catalog))
	}

	return opts, nil
}
