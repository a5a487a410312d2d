package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formcheck/pkg/logger"
)

// File describes one uploaded file. Everything except the moved flag is fixed
// at construction. A File is not safe for concurrent use.
type File struct {
	path            string
	size            int64
	code            ErrorCode
	clientFilename  string
	clientMediaType string
	moved           bool

	sniffer Sniffer
	logger  *slog.Logger
}

// Option configures a File.
type Option func(*File)

// WithSniffer replaces the content sniffer used by SniffedMediaType.
func WithSniffer(s Sniffer) Option {
	return func(f *File) {
		if s != nil {
			f.sniffer = s
		}
	}
}

// WithLogger sets the logger used for move and store operations.
func WithLogger(logger *slog.Logger) Option {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New builds a File. It fails with ErrInvalidErrorCode when code is outside 0..8.
func New(path string, size int64, code ErrorCode, clientFilename, clientMediaType string, opts ...Option) (*File, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidErrorCode, int(code))
	}

	f := &File{
		path:            path,
		size:            size,
		code:            code,
		clientFilename:  clientFilename,
		clientMediaType: clientMediaType,
		sniffer:         DefaultSniffer(),
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path returns the temporary location of the file.
func (f *File) Path() string { return f.path }

// Size returns the size declared by the transport.
func (f *File) Size() int64 { return f.size }

// ErrorCode returns the upload status code.
func (f *File) ErrorCode() ErrorCode { return f.code }

// ClientFilename returns the filename sent by the client. Never trust it as a path.
func (f *File) ClientFilename() string { return f.clientFilename }

// ClientMediaType returns the media type declared by the client.
func (f *File) ClientMediaType() string { return f.clientMediaType }

// Moved reports whether the file has been relocated.
func (f *File) Moved() bool { return f.moved }

// SniffedMediaType detects the media type from the file content.
// It returns "" when the file is missing or unreadable.
func (f *File) SniffedMediaType() string {
	if f.moved || f.path == "" {
		return ""
	}
	mediaType, ok := f.sniffer.Sniff(f.path)
	if !ok {
		return ""
	}
	return mediaType
}

// Open returns a read stream over the file content.
func (f *File) Open() (*Stream, error) {
	if f.moved {
		return nil, fmt.Errorf("%w: cannot open stream", ErrAlreadyMoved)
	}

	fd, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}

	stream, err := NewStream(fd)
	if err != nil {
		_ = fd.Close()
		return nil, err
	}
	return stream, nil
}

// MoveTo relocates the file to target on the local filesystem.
// The directory of target must exist and be writable.
func (f *File) MoveTo(target string) error {
	if strings.TrimSpace(target) == "" {
		return ErrInvalidDestination
	}
	if f.moved {
		return ErrAlreadyMoved
	}
	if err := checkWritableDir(filepath.Dir(target)); err != nil {
		return err
	}
	if f.code != CodeOK {
		return fmt.Errorf("%w: %s", ErrUploadFailed, f.code)
	}

	if err := moveFile(f.path, target); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToMove, err)
	}

	f.moved = true
	f.logger.Info("uploaded file moved", logger.File(f.clientFilename, f.size), logger.Path(target))
	return nil
}

// Store streams the file into storage under key and marks it moved.
// An empty key is replaced by UniqueName(ClientFilename()).
func (f *File) Store(ctx context.Context, storage Storage, key string) (*Object, error) {
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is nil", ErrInvalidConfig)
	}
	if f.moved {
		return nil, ErrAlreadyMoved
	}
	if f.code != CodeOK {
		return nil, fmt.Errorf("%w: %s", ErrUploadFailed, f.code)
	}
	if key == "" {
		key = UniqueName(f.clientFilename)
	}

	mediaType := f.SniffedMediaType()
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	src, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	obj, err := storage.Put(ctx, key, src, f.size, mediaType)
	_ = src.Close()
	if err != nil {
		return nil, err
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.logger.WarnContext(ctx, "failed to remove temporary upload", logger.Path(f.path), logger.Error(err))
	}

	f.moved = true
	f.logger.InfoContext(ctx, "uploaded file stored", logger.File(f.clientFilename, f.size), logger.Path(obj.Key))
	return obj, nil
}

// checkWritableDir verifies dir exists and accepts new files by creating and
// removing a probe file.
func checkWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationNotWritable, dir)
	}

	probe, err := os.CreateTemp(dir, ".formcheck-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDestinationNotWritable, dir)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// moveFile renames src to dst and falls back to copy+remove when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Join(renameErr, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Join(renameErr, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return errors.Join(renameErr, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return errors.Join(renameErr, err)
	}

	_ = in.Close()
	return os.Remove(src)
}
