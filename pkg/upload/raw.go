package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
)

// Raw is the transport-level metadata of one uploaded file.
type Raw struct {
	TempPath  string
	Size      int64
	Error     ErrorCode
	Filename  string
	MediaType string
}

// File builds a descriptor from r.
func (r Raw) File(opts ...Option) (*File, error) {
	return New(r.TempPath, r.Size, r.Error, r.Filename, r.MediaType, opts...)
}

// RawSet maps form field names to the files sent under them.
type RawSet map[string][]Raw

// Files builds descriptors for field. A field without any entry yields one
// descriptor with CodeNoFile, which is what a browser means by an empty input.
func (s RawSet) Files(field string, opts ...Option) ([]*File, error) {
	raws := s[field]
	if len(raws) == 0 {
		f, err := New("", 0, CodeNoFile, "", "", opts...)
		if err != nil {
			return nil, err
		}
		return []*File{f}, nil
	}

	files := make([]*File, 0, len(raws))
	for _, r := range raws {
		f, err := r.File(opts...)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// Cleanup removes temp files that still exist. Moved files are already gone.
func (s RawSet) Cleanup() error {
	var errs []error
	for _, raws := range s {
		for _, r := range raws {
			if r.TempPath == "" {
				continue
			}
			if err := os.Remove(r.TempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// FromMultipart spools every file of form into dir ("" means os.TempDir())
// and returns the matching RawSet.
func FromMultipart(form *multipart.Form, dir string) (RawSet, error) {
	set := make(RawSet)
	if form == nil {
		return set, nil
	}

	for field, headers := range form.File {
		for _, fh := range headers {
			raw, err := spool(fh, dir)
			if err != nil {
				_ = set.Cleanup()
				return nil, fmt.Errorf("%w: field %s: %v", ErrFailedToSpool, field, err)
			}
			set[field] = append(set[field], raw)
		}
	}
	return set, nil
}

func spool(fh *multipart.FileHeader, dir string) (Raw, error) {
	mediaType := ""
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ = mime.ParseMediaType(ct)
	}

	if fh.Filename == "" && fh.Size == 0 {
		return Raw{Error: CodeNoFile, MediaType: mediaType}, nil
	}

	src, err := fh.Open()
	if err != nil {
		return Raw{}, err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return Raw{Filename: fh.Filename, Error: CodeNoTmpDir}, nil
	}

	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err != nil || closeErr != nil {
		_ = os.Remove(dst.Name())
		return Raw{Filename: fh.Filename, MediaType: mediaType, Error: CodeCantWrite}, nil
	}

	return Raw{
		TempPath:  dst.Name(),
		Size:      written,
		Error:     CodeOK,
		Filename:  fh.Filename,
		MediaType: mediaType,
	}, nil
}
