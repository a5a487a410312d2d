package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/dmitrymomot/formcheck/pkg/input"
)

var (
	// ErrUnknownSource is returned by Validate for an unsupported input source.
	ErrUnknownSource = input.ErrUnknownSource

	// ErrNotCallable is returned when a nil function is bound as a rule or callback.
	ErrNotCallable = errors.New("rule is not callable")

	// ErrMethodNotFound is returned when a chain names a rule that was never registered.
	ErrMethodNotFound = errors.New("there is no rule with the given name")

	// ErrInvalidRule is returned for malformed rule definitions or parameters.
	ErrInvalidRule = errors.New("invalid rule definition")

	// ErrInvalidPattern is returned when a regex rule cannot be compiled.
	ErrInvalidPattern = errors.New("invalid regular expression")
)

// Shared error keys used by upload checks. They do not belong to any field.
const (
	KeyMaxFileSize     = "max_file_size"
	KeyInvalidFileType = "invalid_file_type"
)

// Errors maps field names to resolved messages.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message recorded for field, or "".
func (e Errors) Get(field string) string { return e[field] }

// Fields returns the failed field names in sorted order.
func (e Errors) Fields() []string {
	keys := lo.Keys(e)
	slices.Sort(keys)
	return keys
}

// ExtractErrors returns the Errors wrapped in err, or nil.
func ExtractErrors(err error) Errors {
	if err == nil {
		return nil
	}

	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractErrors(err) != nil
}
