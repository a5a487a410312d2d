package upload

import (
	"fmt"
	"io"
	"os"
)

// Stream is a read-only, seekable view over an uploaded file.
type Stream struct {
	fd   *os.File
	size int64
}

// NewStream wraps an open file.
func NewStream(fd *os.File) (*Stream, error) {
	if fd == nil {
		return nil, ErrInvalidStream
	}

	s := &Stream{fd: fd, size: -1}
	if info, err := fd.Stat(); err == nil {
		s.size = info.Size()
	}
	return s, nil
}

// Size returns the file size when it is known.
func (s *Stream) Size() (int64, bool) {
	if s.fd == nil || s.size < 0 {
		return 0, false
	}
	return s.size, true
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.fd == nil {
		return 0, ErrDetached
	}
	return s.fd.Read(p)
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.fd == nil {
		return 0, ErrDetached
	}
	pos, err := s.fd.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotSeekable, err)
	}
	return pos, nil
}

// Rewind moves the read position back to the start.
func (s *Stream) Rewind() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

// Tell returns the current read position.
func (s *Stream) Tell() (int64, error) {
	return s.Seek(0, io.SeekCurrent)
}

// EOF reports whether the read position reached the end of the file.
func (s *Stream) EOF() bool {
	pos, err := s.Tell()
	if err != nil {
		return true
	}
	size, ok := s.Size()
	return ok && pos >= size
}

// Contents reads everything from the current position to the end.
func (s *Stream) Contents() (string, error) {
	if s.fd == nil {
		return "", ErrDetached
	}
	data, err := io.ReadAll(s.fd)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotReadable, err)
	}
	return string(data), nil
}

// String returns the whole content from the start, or "" on any failure.
func (s *Stream) String() string {
	if err := s.Rewind(); err != nil {
		return ""
	}
	data, err := s.Contents()
	if err != nil {
		return ""
	}
	return data
}

// Close closes the underlying file and detaches it.
func (s *Stream) Close() error {
	fd := s.Detach()
	if fd == nil {
		return nil
	}
	return fd.Close()
}

// Detach releases the underlying file without closing it.
// The stream is unusable afterwards.
func (s *Stream) Detach() *os.File {
	fd := s.fd
	s.fd = nil
	s.size = -1
	return fd
}
