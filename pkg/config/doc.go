// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// optional .env files are loaded into the process environment first, then
// the environment is parsed into a struct through its `env` tags.
//
//	type Config struct {
//		MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"1048576"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("FORMCHECK_"))
//
// Without WithEnvFiles the default .env in the working directory is loaded
// once per process if present. WithEnvironment replaces the process
// environment entirely, which keeps tests hermetic.
package config
