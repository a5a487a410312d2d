package validator

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleFunc is a named rule usable in declarative chains. Validation
// failures are recorded on f; a returned error means the rule itself is
// misconfigured.
type RuleFunc func(f *Field, params ...string) error

// Rule names understood by every Validator.
const (
	RuleRequired     = "required"
	RuleNumber       = "number"
	RuleInteger      = "integer"
	RuleSize         = "size"
	RuleSame         = "same"
	RuleEmail        = "email"
	RuleRegex        = "regex"
	RuleMinLength    = "minLength"
	RuleMaxLength    = "maxLength"
	RuleAlpha        = "alpha"
	RuleAlphaNum     = "alphaNum"
	RuleURL          = "url"
	RuleUUID         = "uuid"
	RuleIn           = "in"
	RuleFile         = "file"
	RuleMimes        = "mimes"
	RuleRequiredFile = "requiredFile"
)

func builtinRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		RuleRequired: noParams(func(f *Field) { f.Required() }),
		RuleNumber:   noParams(func(f *Field) { f.Number() }),
		RuleInteger:  noParams(func(f *Field) { f.Integer() }),
		RuleEmail:    noParams(func(f *Field) { f.Email() }),
		RuleAlpha:    noParams(func(f *Field) { f.Alpha() }),
		RuleAlphaNum: noParams(func(f *Field) { f.AlphaNum() }),
		RuleURL:      noParams(func(f *Field) { f.URL() }),
		RuleUUID:     noParams(func(f *Field) { f.UUID() }),

		RuleSize:      intParam(func(f *Field, n int) { f.Size(n) }),
		RuleMinLength: intParam(func(f *Field, n int) { f.MinLength(n) }),
		RuleMaxLength: intParam(func(f *Field, n int) { f.MaxLength(n) }),

		RuleSame: func(f *Field, params ...string) error {
			if len(params) != 1 || params[0] == "" {
				return fmt.Errorf("%w: same expects one field name", ErrInvalidRule)
			}
			f.Same(params[0])
			return nil
		},
		RuleRegex: func(f *Field, params ...string) error {
			if len(params) == 0 {
				return fmt.Errorf("%w: regex expects a pattern", ErrInvalidRule)
			}
			// ParseRules splits on commas; a pattern may contain them.
			f.Regex(strings.Join(params, ","))
			return nil
		},
		RuleIn: func(f *Field, params ...string) error {
			if len(params) == 0 {
				return fmt.Errorf("%w: in expects at least one value", ErrInvalidRule)
			}
			f.In(params...)
			return nil
		},

		RuleFile: func(f *Field, params ...string) error {
			var limit int64
			if len(params) > 0 && params[0] != "" {
				n, err := strconv.ParseInt(params[0], 10, 64)
				if err != nil || n <= 0 {
					return fmt.Errorf("%w: file expects a positive byte limit, got %q", ErrInvalidRule, params[0])
				}
				limit = n
			}
			if limit == 0 {
				limit = f.v.maxFileSize
			}
			f.loadFiles().MaxSize(limit)
			return nil
		},
		// mimes replaces the configured allow-list for the field.
		RuleMimes: func(f *Field, params ...string) error {
			if len(params) == 0 {
				return fmt.Errorf("%w: mimes expects at least one media type", ErrInvalidRule)
			}
			f.loadFiles().Types(params...)
			return nil
		},
		RuleRequiredFile: noParams(func(f *Field) { f.loadFiles().Required() }),
	}
}

func noParams(fn func(f *Field)) RuleFunc {
	return func(f *Field, _ ...string) error {
		fn(f)
		return nil
	}
}

func intParam(fn func(f *Field, n int)) RuleFunc {
	return func(f *Field, params ...string) error {
		if len(params) != 1 {
			return fmt.Errorf("%w: expected one integer parameter", ErrInvalidRule)
		}
		n, err := strconv.Atoi(params[0])
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q is not a non-negative integer", ErrInvalidRule, params[0])
		}
		fn(f, n)
		return nil
	}
}
