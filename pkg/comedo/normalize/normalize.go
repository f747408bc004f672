package normalize

import "strings"

// Name converts a raw ingredient name into its canonical comparison form:
// lowercase, with every run of characters outside ASCII letters, digits and
// hyphens collapsed to a single space, and no leading or trailing whitespace.
//
// Name never fails and is idempotent: Name(Name(s)) == Name(s).
func Name(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pending := false
	for _, r := range raw {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !keep {
			// Spaces, punctuation and non-ASCII all collapse to one separator.
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteRune(r)
	}

	return b.String()
}
