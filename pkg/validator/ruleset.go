package validator

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// RuleSpec names a registered rule and its ordered parameters.
type RuleSpec struct {
	Name   string
	Params []string
}

// Rule builds a RuleSpec.
func Rule(name string, params ...string) RuleSpec {
	return RuleSpec{Name: name, Params: params}
}

// String formats the spec the way ParseRules reads it.
func (r RuleSpec) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ",")
}

// ParseRules parses a pipe separated rule string such as
// "required|minLength:3|in:a,b". Parameters are comma separated; a rule
// whose parameters contain "|" must be built with Rule instead.
func ParseRules(s string) ([]RuleSpec, error) {
	var specs []RuleSpec
	for raw := range strings.SplitSeq(s, "|") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		name, param, hasParam := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRule, raw)
		}

		spec := RuleSpec{Name: name}
		if hasParam {
			for p := range strings.SplitSeq(param, ",") {
				spec.Params = append(spec.Params, strings.TrimSpace(p))
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// MustParseRules is like ParseRules but panics on error.
func MustParseRules(s string) []RuleSpec {
	specs, err := ParseRules(s)
	if err != nil {
		panic(err)
	}
	return specs
}

// Callback validates one field through the Field API. A returned error
// aborts the pass as a configuration error.
type Callback func(f *Field) error

// Definition is either a declarative chain of rules or a callback.
type Definition struct {
	specs    []RuleSpec
	callback Callback
	isFunc   bool
}

// Chain defines a field by an ordered list of rules.
func Chain(specs ...RuleSpec) Definition {
	return Definition{specs: slices.Clone(specs)}
}

// Func defines a field by a callback.
func Func(cb Callback) Definition {
	return Definition{callback: cb, isFunc: true}
}

// IsCallback reports whether d was built with Func.
func (d Definition) IsCallback() bool { return d.isFunc }

// Specs returns the chain of a declarative definition.
func (d Definition) Specs() []RuleSpec { return slices.Clone(d.specs) }

// Callback returns the callback of a Func definition.
func (d Definition) Callback() Callback { return d.callback }

// RuleSet is an ordered mapping from field name to Definition.
// Fields are evaluated in insertion order; replacing a definition keeps its
// position.
type RuleSet struct {
	keys []string
	defs map[string]Definition
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{defs: make(map[string]Definition)}
}

// Set binds def to field. A callback definition with a nil function fails
// with ErrNotCallable.
func (rs *RuleSet) Set(field string, def Definition) error {
	if strings.TrimSpace(field) == "" {
		return fmt.Errorf("%w: empty field name", ErrInvalidRule)
	}
	if def.isFunc && def.callback == nil {
		return fmt.Errorf("%w: field %s", ErrNotCallable, field)
	}

	if _, exists := rs.defs[field]; !exists {
		rs.keys = append(rs.keys, field)
	}
	rs.defs[field] = def
	return nil
}

// Get returns the definition bound to field.
func (rs *RuleSet) Get(field string) (Definition, bool) {
	def, ok := rs.defs[field]
	return def, ok
}

// Has reports whether field has a definition.
func (rs *RuleSet) Has(field string) bool {
	_, ok := rs.defs[field]
	return ok
}

// Delete removes field and reports whether it was present.
func (rs *RuleSet) Delete(field string) bool {
	if _, ok := rs.defs[field]; !ok {
		return false
	}
	delete(rs.defs, field)
	rs.keys = slices.DeleteFunc(rs.keys, func(k string) bool { return k == field })
	return true
}

// Len returns the number of fields.
func (rs *RuleSet) Len() int { return len(rs.keys) }

// Keys returns field names in evaluation order.
func (rs *RuleSet) Keys() []string { return slices.Clone(rs.keys) }

// All iterates fields in evaluation order.
func (rs *RuleSet) All() iter.Seq2[string, Definition] {
	return func(yield func(string, Definition) bool) {
		for _, k := range rs.keys {
			if !yield(k, rs.defs[k]) {
				return
			}
		}
	}
}
