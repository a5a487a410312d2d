package upload

import (
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Sniffer detects a media type from file content.
type Sniffer interface {
	Sniff(path string) (string, bool)
}

// SnifferFunc adapts a function to Sniffer.
type SnifferFunc func(path string) (string, bool)

func (fn SnifferFunc) Sniff(path string) (string, bool) { return fn(path) }

// DefaultSniffer returns the sniffer used when none is configured.
func DefaultSniffer() Sniffer { return MimetypeSniffer{} }

// MimetypeSniffer detects types with magic-number signatures.
type MimetypeSniffer struct{}

func (MimetypeSniffer) Sniff(path string) (string, bool) {
	if !isRegularFile(path) {
		return "", false
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", false
	}
	return baseMediaType(mt.String()), true
}

// ContentSniffer uses http.DetectContentType on the first 512 bytes.
type ContentSniffer struct{}

func (ContentSniffer) Sniff(path string) (string, bool) {
	fd, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() { _ = fd.Close() }()

	// 512 bytes is the maximum http.DetectContentType reads
	buffer := make([]byte, 512)
	n, err := fd.Read(buffer)
	if err != nil && err != io.EOF {
		return "", false
	}
	return baseMediaType(http.DetectContentType(buffer[:n])), true
}

// baseMediaType drops parameters such as charset.
func baseMediaType(v string) string {
	if mediaType, _, err := mime.ParseMediaType(v); err == nil {
		return mediaType
	}
	base, _, _ := strings.Cut(v, ";")
	return strings.TrimSpace(strings.ToLower(base))
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
