package sanitizer

import (
	"regexp"
	"strings"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags, keeping the text between them.
func StripTags(s string) string {
	return htmlTagRegex.ReplaceAllString(s, "")
}

// EncodeQuotes replaces single and double quotes with numeric entities.
func EncodeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

var quoteReplacer = strings.NewReplacer(`"`, "&#34;", `'`, "&#39;")

// StripHigh drops every non-ASCII character.
func StripHigh(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, s)
}
