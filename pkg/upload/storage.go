package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Object describes a file written to a Storage backend.
type Object struct {
	Key       string
	Location  string // Absolute path or URL, depending on the backend
	Size      int64
	MediaType string
}

// Storage is the destination for File.Store.
type Storage interface {
	// Put writes body under key. size may be -1 when unknown.
	Put(ctx context.Context, key string, body io.Reader, size int64, mediaType string) (*Object, error)
	// Exists checks whether key is present.
	Exists(ctx context.Context, key string) bool
	// Delete removes key.
	Delete(ctx context.Context, key string) error
}

// LocalStorage writes objects below a base directory.
// All keys are confined to baseDir to prevent path traversal.
type LocalStorage struct {
	baseDir string
	dirPerm os.FileMode
}

// LocalOption configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithDirPerm sets the permissions used when creating sub-directories.
func WithDirPerm(perm os.FileMode) LocalOption {
	return func(s *LocalStorage) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// NewLocalStorage resolves baseDir to an absolute path and creates it.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	s := &LocalStorage{baseDir: absBaseDir, dirPerm: 0o755}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(absBaseDir, s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationNotWritable, err)
	}
	return s, nil
}

// BaseDir returns the absolute storage root.
func (s *LocalStorage) BaseDir() string { return s.baseDir }

// Put copies body into baseDir/key, checking ctx between chunks.
// Partial files are removed on failure.
func (s *LocalStorage) Put(ctx context.Context, key string, body io.Reader, _ int64, mediaType string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), s.dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationNotWritable, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	written, err := copyWithContext(ctx, dst, body)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, err
	}

	return &Object{
		Key:       filepath.ToSlash(key),
		Location:  absPath,
		Size:      written,
		MediaType: mediaType,
	}, nil
}

// Exists reports whether key exists below baseDir.
func (s *LocalStorage) Exists(_ context.Context, key string) bool {
	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

// Delete removes key. Directories are refused.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, key)
	}
	return os.Remove(absPath)
}

// resolvePath keeps every key inside baseDir.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPath)
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return absPath, nil
}

func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			nw, writeErr := dst.Write(buf[:n])
			written += int64(nw)
			if writeErr != nil {
				return written, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: %v", ErrNotReadable, readErr)
		}
	}
}
