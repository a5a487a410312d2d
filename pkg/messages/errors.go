package messages

import "errors"

var (
	ErrFailedToReadFile  = errors.New("failed to read messages file")
	ErrFailedToParse     = errors.New("failed to parse messages")
	ErrUnsupportedFormat = errors.New("unsupported messages format")
	ErrParsingCancelled  = errors.New("messages parsing cancelled")
)
