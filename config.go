package formcheck

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formcheck/pkg/config"
	"github.com/dmitrymomot/formcheck/pkg/upload"
	"github.com/dmitrymomot/formcheck/pkg/validator"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "FORMCHECK_"

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config is the complete host configuration.
type Config struct {
	validator.Config

	Env         string        `env:"ENV" envDefault:"development"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"formcheck"`
	Storage     StorageConfig `envPrefix:"STORAGE_"`
}

// StorageConfig selects where accepted uploads are stored.
type StorageConfig struct {
	Driver   string          `env:"DRIVER" envDefault:"local"`
	LocalDir string          `env:"LOCAL_DIR" envDefault:"uploads"`
	S3       upload.S3Config `envPrefix:"S3_"`
}

// LoadConfig reads Config from FORMCHECK_* variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	return config.Load[Config](append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)...)
}

// NewStorage builds the storage backend selected by cfg.Driver.
func NewStorage(ctx context.Context, cfg StorageConfig, opts ...upload.S3Option) (upload.Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return upload.NewLocalStorage(cfg.LocalDir)
	case DriverS3:
		return upload.NewS3Storage(ctx, cfg.S3, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Driver)
	}
}
