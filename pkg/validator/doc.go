// Package validator evaluates named request fields against rule chains or
// callbacks and aggregates at most one message per failed field.
//
// A Validator is bound to an input.Lookup and is meant for a single pass:
// build one per request, call Validate with an ordered RuleSet and the
// source to read from, then inspect Failed, Errors and Results.
//
// # Rule definitions
//
// Every field in a RuleSet carries a Definition, either a declarative chain
// of RuleSpec values or a Callback that drives the Field API directly:
//
//	rules := validator.NewRuleSet()
//	_ = rules.Set("email", validator.Chain(validator.MustParseRules("required|email")...))
//	_ = rules.Set("password", validator.Func(func(f *validator.Field) error {
//	    f.Required().MinLength(8)
//	    f.Accept()
//	    return nil
//	}))
//	_ = rules.Set("password_confirm", validator.Func(func(f *validator.Field) error {
//	    f.Same("password").Accept()
//	    return nil
//	}))
//
//	v := validator.New(lookup, validator.WithFiles(req.Files()))
//	if err := v.Validate(ctx, rules, input.Post); err != nil {
//	    // configuration problem: unknown source, unknown rule, bad pattern
//	}
//	if v.Failed() {
//	    return v.Err()
//	}
//
// # First failure wins
//
// Predicates record an error only when the field has none yet. In a
// declarative chain every listed rule still runs, but only the first failure
// is visible. Callbacks may call AddError unconditionally; a second call
// overwrites the first message.
//
// # Result gate
//
// Accept copies the field value into the results when the field itself has
// no error. WithGlobalResultGate switches to the stricter behaviour where a
// value is only accepted while the whole pass is still error free.
//
// # Uploads
//
// Field.Files turns the raw upload set into upload.File descriptors and
// applies the size limit and content-based type allow-list. Oversized and
// mistyped files are dropped from the accepted list and reported once under
// the shared keys max_file_size and invalid_file_type.
package validator
