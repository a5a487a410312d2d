package upload

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SanitizeFilename strips path components and NUL bytes from a client filename.
// Returns "unnamed" for empty or special directory references.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// UniqueName returns a random storage name that keeps the lowercased
// extension of the client filename.
func UniqueName(clientFilename string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(clientFilename)))
	return uuid.NewString() + ext
}
