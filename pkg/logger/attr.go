package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil err yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errs under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Source records the input source of a validation pass.
func Source(src string) slog.Attr {
	return slog.String("source", src)
}

// Rule records a rule name.
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// File records an upload's client filename and size.
func File(name string, size int64) slog.Attr {
	return Group("file", slog.String("name", name), slog.Int64("size", size))
}

// Path records a filesystem path or storage key.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// RequestID records the request identifier. A nil id yields an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}
