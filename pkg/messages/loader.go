package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a messages document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Parse decodes a flat key → template document. Non-string values are
// rejected so a typo in the file does not silently render as "map[...]".
func Parse(ctx context.Context, format Format, content []byte) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	out := make(map[string]string, len(raw))
	for key, val := range raw {
		tmpl, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %q: expected string, got %T", ErrFailedToParse, key, val)
		}
		out[key] = tmpl
	}
	return out, nil
}

// Load reads a document from r and merges it into the catalog.
func (c *Catalog) Load(ctx context.Context, format Format, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}

	templates, err := Parse(ctx, format, content)
	if err != nil {
		return err
	}

	c.mu.Lock()
	for key, tmpl := range templates {
		c.templates[key] = tmpl
	}
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "messages loaded", "count", len(templates), "format", string(format))
	return nil
}

// LoadFile merges the YAML or JSON file at path into the catalog.
func (c *Catalog) LoadFile(ctx context.Context, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Join(ErrFailedToReadFile, err)
	}
	defer func() { _ = f.Close() }()

	return c.Load(ctx, format, f)
}
