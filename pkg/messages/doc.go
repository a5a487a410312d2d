// Package messages holds the catalog of error-message templates used by the
// validator.
//
// A template is a plain string that may contain placeholders in the form
// {{name}}. Resolving a template replaces every placeholder whose name is
// present in the parameter map with the string form of the value; unknown
// placeholders are left verbatim so a partially configured template still
// renders something readable.
//
// # Usage
//
//	catalog := messages.New()
//	msg := catalog.Get(messages.KeyMinLength, map[string]any{
//	    "input": "password",
//	    "min":   8,
//	})
//	// "The password field must have at least 8 characters."
//
//	catalog.Set(messages.KeyEmpty, "Please fill in {{input}}.")
//
// Unknown keys never fail: Get returns "Invalid error message key: <key>".
//
// # Loading overrides
//
// Templates can be loaded from flat YAML or JSON documents:
//
//	empty: "Please fill in {{input}}."
//	minLength: "{{input}} needs {{min}}+ characters."
//
//	err := catalog.LoadFile(ctx, "messages.yaml")
//
// Loaded entries overwrite existing ones; keys absent from the file keep their
// current template.
package messages
