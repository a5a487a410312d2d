package validator

import (
	"github.com/samber/lo"

	"github.com/dmitrymomot/formcheck/pkg/messages"
	"github.com/dmitrymomot/formcheck/pkg/upload"
)

// Files is the upload view of a field: the descriptors sent under the
// field name and the subset that passed the size and type checks.
type Files struct {
	field    *Field
	all      []*upload.File
	accepted []*upload.File
	typed    bool
}

// Files builds descriptors for the uploads sent under the field name and
// applies the size limit and media type allow-list. A zero maxSize or an
// empty type list falls back to the validator defaults. The accepted
// descriptors become the field value.
func (f *Field) Files(maxSize int64, types ...string) *Files {
	if maxSize <= 0 {
		maxSize = f.v.maxFileSize
	}
	if len(types) == 0 {
		types = f.v.allowedTypes
	}
	return f.loadFiles().MaxSize(maxSize).Types(types...)
}

// loadFiles returns the cached upload view without applying any limit.
func (f *Field) loadFiles() *Files {
	if f.uploads != nil {
		return f.uploads
	}

	fs := &Files{field: f}
	descs, err := f.v.files.Files(f.name, f.v.fileOpts...)
	if err != nil {
		f.setErr(err)
	} else {
		fs.all = descs
		fs.accepted = descs
	}
	f.uploads = fs
	f.SetValue(fs.accepted)
	return fs
}

// MaxSize drops accepted files larger than n bytes. The first oversized
// file of the pass records the shared max_file_size error.
func (fs *Files) MaxSize(n int64) *Files {
	v := fs.field.v
	fs.filter(func(file *upload.File) bool {
		if file.Size() <= n {
			return true
		}
		if !v.hasError(KeyMaxFileSize) {
			v.addError(KeyMaxFileSize, v.catalog.Get(messages.KeyMaxSizeFile, map[string]any{
				"input": fs.field.name,
				"max":   n,
			}))
		}
		return false
	})
	return fs
}

// Types drops accepted files whose sniffed media type is not in types.
// An empty list accepts everything.
func (fs *Files) Types(types ...string) *Files {
	fs.typed = true
	if len(types) == 0 {
		return fs
	}

	v := fs.field.v
	fs.filter(func(file *upload.File) bool {
		if lo.Contains(types, file.SniffedMediaType()) {
			return true
		}
		if !v.hasError(KeyInvalidFileType) {
			v.addError(KeyInvalidFileType, v.catalog.Get(messages.KeyInvalidFileType, map[string]any{
				"input": fs.field.name,
				"types": types,
			}))
		}
		return false
	})
	return fs
}

// Required fails the field with "empty" when an accepted descriptor reports
// that no file was sent.
func (fs *Files) Required() *Files {
	sent := !lo.ContainsBy(fs.accepted, func(file *upload.File) bool {
		return file.ErrorCode() == upload.CodeNoFile
	})
	fs.field.check(sent, messages.KeyEmpty, nil)
	return fs
}

// Accept commits the accepted descriptors to the results.
func (fs *Files) Accept() *Files {
	fs.field.Accept()
	return fs
}

// Accepted returns the descriptors that passed every check so far.
func (fs *Files) Accepted() []*upload.File { return fs.accepted }

// All returns every descriptor sent under the field.
func (fs *Files) All() []*upload.File { return fs.all }

// Field returns the owning field.
func (fs *Files) Field() *Field { return fs.field }

// filter keeps the accepted descriptors for which keep is true. Descriptors
// with a transport error carry no content and are never filtered out.
func (fs *Files) filter(keep func(*upload.File) bool) {
	fs.accepted = lo.Filter(fs.accepted, func(file *upload.File, _ int) bool {
		if file.ErrorCode() != upload.CodeOK {
			return true
		}
		return keep(file)
	})
	fs.field.SetValue(fs.accepted)
}
