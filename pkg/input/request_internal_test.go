package input

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formcheck/pkg/upload"
)

func TestFromRequest_SpoolFailureRemovesParserFiles(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	errSpool := errors.New("spool failed")
	orig := spoolFiles
	spoolFiles = func(*multipart.Form, string) (upload.RawSet, error) { return nil, errSpool }
	t.Cleanup(func() { spoolFiles = orig })

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("doc", "doc.txt")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/", body)
	r.Header.Set("Content-Type", w.FormDataContentType())

	_, err = FromRequest(r, WithMaxMemory(1))
	require.ErrorIs(t, err, errSpool)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
