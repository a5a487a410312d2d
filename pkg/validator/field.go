package validator

import (
	"strings"

	"github.com/samber/lo"

	"github.com/dmitrymomot/formcheck/pkg/messages"
)

// Field is the evaluation context of one named field. Predicates record an
// error only while the field has none, so the first failure wins.
type Field struct {
	v       *Validator
	name    string
	uploads *Files
	err     error
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Value returns the current value: a string, a list of strings, nil when
// absent, or the accepted upload descriptors after Files.
func (f *Field) Value() any { return f.v.inputs[f.name] }

// String returns the current value as a string. Lists are comma joined.
func (f *Field) String() string { return stringify(f.Value()) }

// SetValue replaces the current value, typically to normalise it before
// Accept.
func (f *Field) SetValue(value any) *Field {
	f.v.inputs[f.name] = value
	return f
}

// Other returns the value of another field of the active source. Fields
// already evaluated report their current value.
func (f *Field) Other(name string) any {
	if val, ok := f.v.inputs[name]; ok {
		return val
	}
	val, _ := f.v.lookup.Lookup(f.v.source, name)
	return val
}

// HasError reports whether the field already failed.
func (f *Field) HasError() bool { return f.v.hasError(f.name) }

// AddError records msg for the field, replacing any earlier message.
// "{{input}}" in msg is replaced by the field name.
func (f *Field) AddError(msg string) *Field {
	f.v.addError(f.name, messages.Render(msg, map[string]any{"input": f.name}))
	return f
}

// Fail records the catalog message of kind unless the field already failed.
// The field name is available to the template as {{input}}.
func (f *Field) Fail(kind string, params map[string]any) *Field {
	if f.HasError() {
		return f
	}
	args := map[string]any{"input": f.name}
	for k, val := range params {
		args[k] = val
	}
	f.v.addError(f.name, f.v.catalog.Get(kind, args))
	return f
}

// Err returns the configuration error a predicate ran into, if any.
func (f *Field) Err() error { return f.err }

// Accept copies the current value into the results, subject to the result gate.
func (f *Field) Accept() *Field {
	f.v.accept(f.name)
	return f
}

func (f *Field) check(ok bool, kind string, params map[string]any) *Field {
	if !f.HasError() && !ok {
		f.Fail(kind, params)
	}
	return f
}

func (f *Field) setErr(err error) {
	if f.err == nil {
		f.err = err
	}
}

// Required fails with "empty" when the value is absent, blank or an empty list.
func (f *Field) Required() *Field {
	return f.check(!isEmpty(f.Value()), messages.KeyEmpty, nil)
}

// Number fails unless the value is numeric. Signs, exponents and
// surrounding whitespace are accepted.
func (f *Field) Number() *Field {
	return f.check(isNumeric(f.Value()), messages.KeyNumber, nil)
}

// Integer fails unless the value is a whole number.
func (f *Field) Integer() *Field {
	return f.check(isInteger(f.Value()), messages.KeyNumber, nil)
}

// Size fails unless the value is exactly n characters long.
func (f *Field) Size(n int) *Field {
	return f.check(charLen(f.String()) == n, messages.KeySize, map[string]any{"size": n})
}

// MinLength fails when the value has fewer than n characters.
func (f *Field) MinLength(n int) *Field {
	return f.check(charLen(f.String()) >= n, messages.KeyMinLength, map[string]any{"min": n})
}

// MaxLength fails when the value has more than n characters.
func (f *Field) MaxLength(n int) *Field {
	return f.check(charLen(f.String()) <= n, messages.KeyMaxLength, map[string]any{"max": n})
}

// Same fails unless the value equals the trimmed value of other.
// The comparison is exact and case sensitive.
func (f *Field) Same(other string) *Field {
	ok := f.String() == strings.TrimSpace(stringify(f.Other(other)))
	return f.check(ok, messages.KeyConfirm, map[string]any{"other": other})
}

// Email fails unless the value is a structurally valid address.
func (f *Field) Email() *Field {
	s, isString := f.Value().(string)
	return f.check(isString && isEmail(s), messages.KeyInvalid, nil)
}

// Regex fails unless the value matches pattern. An invalid pattern is a
// configuration error returned by Validate.
func (f *Field) Regex(pattern string) *Field {
	re, err := f.v.compile(pattern)
	if err != nil {
		f.setErr(err)
		return f
	}
	return f.check(re.MatchString(f.String()), messages.KeyInvalid, nil)
}

// Alpha fails unless the value holds only ASCII letters.
func (f *Field) Alpha() *Field {
	return f.check(alphaRegex.MatchString(f.String()), messages.KeyInvalid, nil)
}

// AlphaNum fails unless the value holds only ASCII letters and digits.
func (f *Field) AlphaNum() *Field {
	return f.check(alphanumericRegex.MatchString(f.String()), messages.KeyInvalid, nil)
}

// URL fails unless the value is an absolute URL with scheme and host.
func (f *Field) URL() *Field {
	return f.check(isURL(f.String()), messages.KeyInvalid, nil)
}

// UUID fails unless the value is a canonical UUID.
func (f *Field) UUID() *Field {
	return f.check(isUUID(f.String()), messages.KeyInvalid, nil)
}

// In fails unless the value is one of allowed. For lists every item must be allowed.
func (f *Field) In(allowed ...string) *Field {
	var ok bool
	switch val := f.Value().(type) {
	case []string:
		ok = len(val) > 0 && lo.Every(allowed, val)
	default:
		ok = lo.Contains(allowed, f.String())
	}
	return f.check(ok, messages.KeyInvalid, map[string]any{"values": allowed})
}
