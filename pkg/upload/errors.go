package upload

import "errors"

var (
	// Descriptor construction and lifecycle
	ErrInvalidErrorCode = errors.New("invalid upload error code")
	ErrAlreadyMoved     = errors.New("file has already been moved")
	ErrUploadFailed     = errors.New("cannot move a file that failed to upload")

	// Local filesystem errors
	ErrInvalidDestination     = errors.New("invalid destination path")
	ErrDestinationNotWritable = errors.New("destination directory is missing or not writable")
	ErrNotReadable            = errors.New("file is not readable")
	ErrFailedToMove           = errors.New("failed to move file")

	// Stream errors
	ErrInvalidStream = errors.New("invalid stream")
	ErrDetached      = errors.New("stream is detached")
	ErrNotSeekable   = errors.New("stream is not seekable")

	// Storage errors
	ErrInvalidPath        = errors.New("invalid path") // Prevents path traversal attacks
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrFailedToWriteFile  = errors.New("failed to write file")
	ErrFileNotFound       = errors.New("file not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")

	// Multipart spooling
	ErrFailedToSpool = errors.New("failed to spool uploaded file")
)
