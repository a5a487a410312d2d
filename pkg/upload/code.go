package upload

// ErrorCode is the status a transport assigns to one uploaded file.
// The numbering follows the conventional multipart upload codes; 5 is unused.
type ErrorCode int

const (
	CodeOK        ErrorCode = 0
	CodeIniSize   ErrorCode = 1
	CodeFormSize  ErrorCode = 2
	CodePartial   ErrorCode = 3
	CodeNoFile    ErrorCode = 4
	CodeNoTmpDir  ErrorCode = 6
	CodeCantWrite ErrorCode = 7
	CodeExtension ErrorCode = 8
)

// Valid reports whether c is inside the 0..8 range.
func (c ErrorCode) Valid() bool {
	return c >= CodeOK && c <= CodeExtension
}

func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "no error"
	case CodeIniSize:
		return "file exceeds the server size limit"
	case CodeFormSize:
		return "file exceeds the form size limit"
	case CodePartial:
		return "file was only partially uploaded"
	case CodeNoFile:
		return "no file was uploaded"
	case CodeNoTmpDir:
		return "missing temporary directory"
	case CodeCantWrite:
		return "failed to write file to disk"
	case CodeExtension:
		return "upload stopped by extension"
	default:
		return "unknown upload error"
	}
}
