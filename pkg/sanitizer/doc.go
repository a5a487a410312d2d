// Package sanitizer provides string filters for submitted values that are
// passed through without validation.
//
// Filters are plain func(string) string values and compose with Apply and
// Compose:
//
//	clean := sanitizer.Compose(sanitizer.StripTags, sanitizer.EncodeQuotes, sanitizer.StripHigh)
//	safe := clean(`<b>"hi"</b>`) // &#34;hi&#34;
//
// Each applies a filter to every item of a list.
package sanitizer
