// Package sourceurl validates the claimed source of an ingredient list.
package sourceurl

import "strings"

// surround is the punctuation stripped from both ends of a candidate URL.
const surround = "\"'`()[]{}<>.,;:!?"

// MinLength guards against degenerate values like a bare "https://".
const MinLength = 12

// Sanitize validates and normalizes a claimed source URL. It returns the
// cleaned absolute HTTP(S) URL and true, or ("", false) when the value is not
// usable as a URL. A value with interior whitespace is assumed to be free
// text (e.g. a product name misrouted into the URL field) and rejected.
func Sanitize(value string) (string, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", false
	}
	if strings.ContainsAny(s, " \t\n\r") {
		return "", false
	}

	s = strings.Trim(s, surround)
	if s == "" {
		return "", false
	}

	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	} else if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		s = "https://" + s
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", false
	}
	if len(s) < MinLength {
		return "", false
	}
	return s, true
}
