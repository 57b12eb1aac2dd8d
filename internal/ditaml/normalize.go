package ditaml

import (
	"fmt"
	"strings"
	"unicode"
)

// KebabCase converts a human-entered title to its canonical slug:
// lowercase, with every run of non-alphanumeric characters collapsed
// to a single hyphen and edge hyphens trimmed.
func KebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	sep := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}

// TopicID derives the canonical identifier for a topic: the content-type
// prefix followed by the kebab-case title. The id doubles as the generated
// file's base name and the DITA id attribute value. Deterministic: the
// same type and title always produce the same id.
func TopicID(ct ContentType, title string) (string, error) {
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", ErrMissingTemplate, ct)
	}
	slug := KebabCase(title)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyTitle, title)
	}
	return ct.Prefix() + slug, nil
}
