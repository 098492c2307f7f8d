package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ResolveLanguage turns a BCP-47 tag into its English display name, so
// "--language fr" and "--language French" produce the same prompt. Inputs
// that do not parse as a tag are passed through unchanged.
func ResolveLanguage(s string) string {
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}

	name := display.English.Languages().Name(tag)
	if name == "" {
		return s
	}
	return name
}
