package validator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formcheck/pkg/input"
	"github.com/dmitrymomot/formcheck/pkg/upload"
	"github.com/dmitrymomot/formcheck/pkg/validator"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func spooled(t *testing.T, name string, content []byte) upload.Raw {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tmp-"+name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return upload.Raw{
		TempPath:  path,
		Size:      int64(len(content)),
		Error:     upload.CodeOK,
		Filename:  name,
		MediaType: "application/octet-stream",
	}
}

func validateFiles(t *testing.T, files upload.RawSet, rs *validator.RuleSet, opts ...validator.Option) *validator.Validator {
	t.Helper()
	v := validator.New(input.Values{}, append(opts, validator.WithFiles(files))...)
	require.NoError(t, v.Validate(context.Background(), rs, input.Post))
	return v
}

func TestFiles_Required(t *testing.T) {
	required := func(f *validator.Field) error {
		f.Files(0).Required().Accept()
		return nil
	}

	t.Run("no file sent fails with empty", func(t *testing.T) {
		files := upload.RawSet{"avatar": {{Error: upload.CodeNoFile}}}
		v := validateFiles(t, files, ruleSet(t, "avatar", validator.Func(required)))
		assert.Equal(t, "This avatar field is empty.", v.Errors()["avatar"])
		assert.NotContains(t, v.Results(), "avatar")
	})

	t.Run("missing field behaves like no file", func(t *testing.T) {
		v := validateFiles(t, upload.RawSet{}, ruleSet(t, "avatar", validator.Func(required)))
		assert.Equal(t, "This avatar field is empty.", v.Errors()["avatar"])
	})

	t.Run("small file passes and is accepted", func(t *testing.T) {
		files := upload.RawSet{"avatar": {spooled(t, "a.png", pngHeader)}}
		v := validateFiles(t, files, ruleSet(t, "avatar", validator.Func(required)))

		assert.False(t, v.Failed())
		accepted, ok := v.Results()["avatar"].([]*upload.File)
		require.True(t, ok)
		require.Len(t, accepted, 1)
		assert.Equal(t, "a.png", accepted[0].ClientFilename())
	})
}

func TestFiles_MaxSize(t *testing.T) {
	t.Run("oversized files are dropped with one shared error", func(t *testing.T) {
		files := upload.RawSet{
			"photos": {spooled(t, "big.txt", []byte("0123456789abc")), spooled(t, "ok.txt", []byte("tiny"))},
			"scans":  {spooled(t, "huge.txt", []byte("0123456789abcdef"))},
		}
		var photos []*upload.File
		rs := ruleSet(t,
			"photos", validator.Func(func(f *validator.Field) error {
				photos = f.Files(10).Accept().Accepted()
				return nil
			}),
			"scans", validator.Func(func(f *validator.Field) error {
				f.Files(10).Accept()
				return nil
			}),
		)

		v := validateFiles(t, files, rs)

		assert.Equal(t, map[string]string{
			validator.KeyMaxFileSize: "The file size for photos exceeds the maximum allowed size of 10.",
		}, v.Errors())
		require.Len(t, photos, 1)
		assert.Equal(t, "ok.txt", photos[0].ClientFilename())
		assert.Contains(t, v.Results(), "photos", "the field itself did not fail")
	})

	t.Run("validator default limit applies", func(t *testing.T) {
		files := upload.RawSet{"doc": {spooled(t, "d.txt", []byte("123456"))}}
		rs := ruleSet(t, "doc", validator.Func(func(f *validator.Field) error {
			f.Files(0)
			return nil
		}))
		v := validateFiles(t, files, rs, validator.WithMaxFileSize(5))
		assert.True(t, v.Errors()[validator.KeyMaxFileSize] != "")
	})

	t.Run("transport errors are not size checked", func(t *testing.T) {
		files := upload.RawSet{"doc": {{Error: upload.CodeIniSize, Size: 1 << 30, Filename: "x.bin"}}}
		var accepted []*upload.File
		rs := ruleSet(t, "doc", validator.Func(func(f *validator.Field) error {
			accepted = f.Files(10).Accepted()
			return nil
		}))
		v := validateFiles(t, files, rs)
		assert.False(t, v.Failed())
		assert.Len(t, accepted, 1)
	})
}

func TestFiles_Types(t *testing.T) {
	files := func(t *testing.T) upload.RawSet {
		return upload.RawSet{"upload": {
			spooled(t, "fake.png", []byte("just some text")),
			spooled(t, "real.png", pngHeader),
		}}
	}

	t.Run("sniffed type decides, not the client claim", func(t *testing.T) {
		var accepted []*upload.File
		rs := ruleSet(t, "upload", validator.Func(func(f *validator.Field) error {
			accepted = f.Files(0, "image/png").Accepted()
			return nil
		}))
		v := validateFiles(t, files(t), rs)

		assert.Equal(t,
			"The file type for upload is invalid. Allowed types are: image/png.",
			v.Errors()[validator.KeyInvalidFileType],
		)
		require.Len(t, accepted, 1)
		assert.Equal(t, "real.png", accepted[0].ClientFilename())
	})

	t.Run("configured allow list is the default", func(t *testing.T) {
		rs := ruleSet(t, "upload", validator.Func(func(f *validator.Field) error {
			f.Files(0)
			return nil
		}))
		v := validateFiles(t, files(t), rs, validator.WithAllowedTypes("text/plain"))
		assert.Contains(t, v.Errors(), validator.KeyInvalidFileType)
	})

	t.Run("custom sniffer", func(t *testing.T) {
		sniffer := upload.SnifferFunc(func(string) (string, bool) { return "application/pdf", true })
		rs := ruleSet(t, "upload", validator.Func(func(f *validator.Field) error {
			f.Files(0, "application/pdf")
			return nil
		}))
		v := validateFiles(t, files(t), rs, validator.WithSniffer(sniffer))
		assert.False(t, v.Failed())
	})
}

func TestFiles_DeclarativeRules(t *testing.T) {
	t.Run("file mimes and requiredFile chain", func(t *testing.T) {
		files := upload.RawSet{"cv": {spooled(t, "cv.png", pngHeader)}}
		rs := ruleSet(t, "cv", validator.Chain(validator.MustParseRules("requiredFile|file:1024|mimes:image/png,image/jpeg")...))
		v := validateFiles(t, files, rs)

		assert.False(t, v.Failed())
		assert.Len(t, v.Results()["cv"], 1)
	})

	t.Run("file chain applies the configured allow list", func(t *testing.T) {
		files := upload.RawSet{"cv": {spooled(t, "x.png", []byte("just some text"))}}
		rs := ruleSet(t, "cv", validator.Chain(validator.MustParseRules("file|requiredFile")...))
		v := validateFiles(t, files, rs, validator.WithAllowedTypes("image/png"))

		assert.Equal(t,
			"The file type for cv is invalid. Allowed types are: image/png.",
			v.Errors()[validator.KeyInvalidFileType],
		)
		assert.Empty(t, v.Results()["cv"])
	})

	t.Run("mimes overrides the configured allow list", func(t *testing.T) {
		files := upload.RawSet{"cv": {spooled(t, "cv.png", pngHeader)}}
		rs := ruleSet(t, "cv", validator.Chain(validator.MustParseRules("file|mimes:image/png")...))
		v := validateFiles(t, files, rs, validator.WithAllowedTypes("application/pdf"))

		assert.False(t, v.Failed())
		assert.Len(t, v.Results()["cv"], 1)
	})

	t.Run("requiredFile fails for empty input", func(t *testing.T) {
		files := upload.RawSet{"cv": {{Error: upload.CodeNoFile}}}
		rs := ruleSet(t, "cv", validator.Chain(validator.MustParseRules("requiredFile")...))
		v := validateFiles(t, files, rs)
		assert.Equal(t, "This cv field is empty.", v.Errors()["cv"])
	})

	t.Run("invalid byte limit is a configuration error", func(t *testing.T) {
		rs := ruleSet(t, "cv", validator.Chain(validator.Rule(validator.RuleFile, "lots")))
		v := validator.New(input.Values{})
		err := v.Validate(context.Background(), rs, input.Post)
		assert.ErrorIs(t, err, validator.ErrInvalidRule)
	})

	t.Run("invalid upload code is a configuration error", func(t *testing.T) {
		files := upload.RawSet{"cv": {{Error: upload.ErrorCode(12)}}}
		rs := ruleSet(t, "cv", validator.Chain(validator.Rule(validator.RuleRequiredFile)))
		v := validator.New(input.Values{}, validator.WithFiles(files))
		err := v.Validate(context.Background(), rs, input.Post)
		assert.ErrorIs(t, err, upload.ErrInvalidErrorCode)
	})
}
