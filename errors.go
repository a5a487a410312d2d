package formcheck

import "errors"

var (
	// ErrUnknownStorage is returned for an unsupported storage driver.
	ErrUnknownStorage = errors.New("unknown storage driver")

	// ErrNotUploadField is returned by Form.Store for a field without accepted files.
	ErrNotUploadField = errors.New("field has no accepted uploads")
)
