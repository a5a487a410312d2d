package upload_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formcheck/pkg/upload"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload-tmp")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestNew(t *testing.T) {
	t.Run("accepts every standard code", func(t *testing.T) {
		for code := upload.ErrorCode(0); code <= 8; code++ {
			f, err := upload.New("/tmp/x", 1, code, "a.txt", "text/plain")
			require.NoError(t, err, "code %d", code)
			assert.Equal(t, code, f.ErrorCode())
		}
	})

	t.Run("rejects codes outside the range", func(t *testing.T) {
		_, err := upload.New("/tmp/x", 1, upload.ErrorCode(9), "a.txt", "text/plain")
		assert.ErrorIs(t, err, upload.ErrInvalidErrorCode)

		_, err = upload.New("/tmp/x", 1, upload.ErrorCode(-1), "a.txt", "text/plain")
		assert.ErrorIs(t, err, upload.ErrInvalidErrorCode)
	})

	t.Run("exposes metadata", func(t *testing.T) {
		f, err := upload.New("/tmp/x", 42, upload.CodeOK, "photo.png", "image/png")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/x", f.Path())
		assert.Equal(t, int64(42), f.Size())
		assert.Equal(t, "photo.png", f.ClientFilename())
		assert.Equal(t, "image/png", f.ClientMediaType())
		assert.False(t, f.Moved())
	})
}

func TestFile_SniffedMediaType(t *testing.T) {
	t.Run("detects type from content, not client claim", func(t *testing.T) {
		path := writeTemp(t, pngHeader)
		f, err := upload.New(path, int64(len(pngHeader)), upload.CodeOK, "doc.pdf", "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "image/png", f.SniffedMediaType())
	})

	t.Run("strips parameters", func(t *testing.T) {
		path := writeTemp(t, []byte("plain text content"))
		f, err := upload.New(path, 18, upload.CodeOK, "a.txt", "text/plain")
		require.NoError(t, err)
		assert.Equal(t, "text/plain", f.SniffedMediaType())
	})

	t.Run("returns empty for missing file", func(t *testing.T) {
		f, err := upload.New(filepath.Join(t.TempDir(), "gone"), 0, upload.CodeOK, "a", "")
		require.NoError(t, err)
		assert.Empty(t, f.SniffedMediaType())
	})

	t.Run("uses custom sniffer", func(t *testing.T) {
		sniffer := upload.SnifferFunc(func(string) (string, bool) { return "application/x-test", true })
		f, err := upload.New("/any", 0, upload.CodeOK, "a", "", upload.WithSniffer(sniffer))
		require.NoError(t, err)
		assert.Equal(t, "application/x-test", f.SniffedMediaType())
	})
}

func TestFile_MoveTo(t *testing.T) {
	t.Run("moves once then refuses", func(t *testing.T) {
		src := writeTemp(t, []byte("hello"))
		f, err := upload.New(src, 5, upload.CodeOK, "hello.txt", "text/plain")
		require.NoError(t, err)

		target := filepath.Join(t.TempDir(), "hello.txt")
		require.NoError(t, f.MoveTo(target))
		assert.True(t, f.Moved())

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
		assert.NoFileExists(t, src)

		err = f.MoveTo(filepath.Join(t.TempDir(), "again.txt"))
		assert.ErrorIs(t, err, upload.ErrAlreadyMoved)

		_, err = f.Open()
		assert.ErrorIs(t, err, upload.ErrAlreadyMoved)
	})

	t.Run("rejects empty destination", func(t *testing.T) {
		f, err := upload.New(writeTemp(t, []byte("x")), 1, upload.CodeOK, "x", "")
		require.NoError(t, err)
		assert.ErrorIs(t, f.MoveTo("   "), upload.ErrInvalidDestination)
		assert.False(t, f.Moved())
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		f, err := upload.New(writeTemp(t, []byte("x")), 1, upload.CodeOK, "x", "")
		require.NoError(t, err)
		err = f.MoveTo(filepath.Join(t.TempDir(), "missing", "x"))
		assert.ErrorIs(t, err, upload.ErrDestinationNotWritable)
	})

	t.Run("rejects failed upload", func(t *testing.T) {
		f, err := upload.New(writeTemp(t, []byte("x")), 1, upload.CodePartial, "x", "")
		require.NoError(t, err)
		err = f.MoveTo(filepath.Join(t.TempDir(), "x"))
		assert.ErrorIs(t, err, upload.ErrUploadFailed)
	})

	t.Run("reports missing source", func(t *testing.T) {
		f, err := upload.New(filepath.Join(t.TempDir(), "gone"), 1, upload.CodeOK, "x", "")
		require.NoError(t, err)
		err = f.MoveTo(filepath.Join(t.TempDir(), "x"))
		assert.ErrorIs(t, err, upload.ErrFailedToMove)
		assert.False(t, f.Moved())
	})
}

func TestFile_Open(t *testing.T) {
	t.Run("reads content", func(t *testing.T) {
		f, err := upload.New(writeTemp(t, []byte("content")), 7, upload.CodeOK, "c.txt", "")
		require.NoError(t, err)

		stream, err := f.Open()
		require.NoError(t, err)
		defer func() { _ = stream.Close() }()
		assert.Equal(t, "content", stream.String())
	})

	t.Run("fails for unreadable file", func(t *testing.T) {
		f, err := upload.New(filepath.Join(t.TempDir(), "gone"), 0, upload.CodeOK, "x", "")
		require.NoError(t, err)
		_, err = f.Open()
		assert.ErrorIs(t, err, upload.ErrNotReadable)
	})
}

func TestFile_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("stores into local storage and removes temp file", func(t *testing.T) {
		storage, err := upload.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		src := writeTemp(t, pngHeader)
		f, err := upload.New(src, int64(len(pngHeader)), upload.CodeOK, "Avatar.PNG", "image/png")
		require.NoError(t, err)

		obj, err := f.Store(ctx, storage, "")
		require.NoError(t, err)
		assert.Equal(t, ".png", filepath.Ext(obj.Key))
		assert.Equal(t, "image/png", obj.MediaType)
		assert.Equal(t, int64(len(pngHeader)), obj.Size)
		assert.True(t, storage.Exists(ctx, obj.Key))
		assert.NoFileExists(t, src)
		assert.True(t, f.Moved())

		_, err = f.Store(ctx, storage, "")
		assert.ErrorIs(t, err, upload.ErrAlreadyMoved)
	})

	t.Run("uses explicit key", func(t *testing.T) {
		storage, err := upload.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		f, err := upload.New(writeTemp(t, []byte("doc")), 3, upload.CodeOK, "doc.txt", "")
		require.NoError(t, err)

		obj, err := f.Store(ctx, storage, "docs/readme.txt")
		require.NoError(t, err)
		assert.Equal(t, "docs/readme.txt", obj.Key)
		assert.FileExists(t, filepath.Join(storage.BaseDir(), "docs", "readme.txt"))
	})

	t.Run("refuses failed uploads", func(t *testing.T) {
		storage, err := upload.NewLocalStorage(t.TempDir())
		require.NoError(t, err)

		f, err := upload.New("", 0, upload.CodeNoFile, "", "")
		require.NoError(t, err)
		_, err = f.Store(ctx, storage, "x")
		assert.ErrorIs(t, err, upload.ErrUploadFailed)
	})

	t.Run("refuses nil storage", func(t *testing.T) {
		f, err := upload.New(writeTemp(t, []byte("x")), 1, upload.CodeOK, "x", "")
		require.NoError(t, err)
		_, err = f.Store(ctx, nil, "x")
		assert.ErrorIs(t, err, upload.ErrInvalidConfig)
	})
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "no error", upload.CodeOK.String())
	assert.Equal(t, "no file was uploaded", upload.CodeNoFile.String())
	assert.Equal(t, "unknown upload error", upload.ErrorCode(5).String())
}

func TestUniqueName(t *testing.T) {
	a := upload.UniqueName("../../etc/Passwd.JPG")
	b := upload.UniqueName("../../etc/Passwd.JPG")
	assert.Equal(t, ".jpg", filepath.Ext(a))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36+4)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"../../../etc/passwd":  "passwd",
		"C:\\Windows\\file.txt": "file.txt",
		"":                     "unnamed",
		"..":                   "unnamed",
		"na\x00me.txt":         "name.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, upload.SanitizeFilename(in), "input %q", in)
	}
}
