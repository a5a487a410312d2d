package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

var (
	// Signs, decimals, exponents and surrounding whitespace are accepted.
	numberRegex = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

	integerRegex = regexp.MustCompile(`^\s*[+-]?\d+\s*$`)
)

// isEmpty reports whether v counts as not submitted: nil, a blank or "0"
// string, numeric zero, false, or a list holding only blanks.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(val)
		return s == "" || s == "0"
	case int:
		return val == 0
	case int8:
		return val == 0
	case int16:
		return val == 0
	case int32:
		return val == 0
	case int64:
		return val == 0
	case uint:
		return val == 0
	case uint8:
		return val == 0
	case uint16:
		return val == 0
	case uint32:
		return val == 0
	case uint64:
		return val == 0
	case float32:
		return val == 0
	case float64:
		return val == 0
	case []string:
		return lo.EveryBy(val, func(s string) bool { return strings.TrimSpace(s) == "" })
	case []any:
		return lo.EveryBy(val, isEmpty)
	case bool:
		return !val
	default:
		return false
	}
}

// stringify turns a field value into the string predicates operate on.
// Lists are joined with commas.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		return strings.Join(lo.Map(val, func(item any, _ int) string { return stringify(item) }), ",")
	case fmt.Stringer:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func isNumeric(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case string:
		return numberRegex.MatchString(val)
	default:
		return false
	}
}

func isInteger(v any) bool {
	switch val := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		return integerRegex.MatchString(val)
	default:
		return false
	}
}

// charLen counts characters after NFC composition so that "é" written as
// e + combining accent has length one.
func charLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
