package match

import (
	"regexp"
	"strings"
)

// Kind selects how a term is compared against a normalized ingredient name.
type Kind int

const (
	// WholeWord matches the term only when it appears bounded by
	// non-alphanumeric characters (or the ends of the name).
	WholeWord Kind = iota
	// Substring matches the term anywhere inside the name.
	Substring
	// Phrase matches a multi-word term as a literal substring.
	Phrase
	// WordSuffix matches the term when it ends a word: the character after
	// the match must be a boundary or the end of the name, while the
	// character before may be anything. "wax" matches "beeswax" but not
	// "waxillin".
	WordSuffix
)

// Term is one entry of a policy table: the lowercase term text plus the rule
// used to compare it against normalized names.
type Term struct {
	Text string
	Kind Kind
}

// acidDerivative recognizes fatty-acid derivative names ("sodium palmitate",
// "glyceryl stearate", "isopropyl myristate", ...). Such derivatives share a
// root with the "<fatty-acid> acid" hard terms but are not themselves
// comedogenic hard hits.
var acidDerivative = regexp.MustCompile(`\b[a-z-]*(palmit|stear|laur|myrist|capryl|capr)ates?\b`)

// Matches reports whether the term matches the normalized name under the
// term's match kind. The name must already be in canonical form.
func (t Term) Matches(name string) bool {
	if t.Text == "" || name == "" {
		return false
	}
	switch t.Kind {
	case Substring, Phrase:
		return strings.Contains(name, t.Text)
	case WordSuffix:
		return ContainsWordSuffix(name, t.Text)
	default:
		return ContainsWholeWord(name, t.Text)
	}
}

// MatchesHard is Matches with the acid-derivative exclusion applied: when the
// name carries a derivative suffix and the candidate term is an acid phrase,
// the hard match is suppressed so that e.g. "sodium palmitate" is not flagged
// by "palmitic acid".
func (t Term) MatchesHard(name string) bool {
	if strings.Contains(t.Text, "acid") && HasAcidDerivative(name) {
		return false
	}
	return t.Matches(name)
}

// HasAcidDerivative reports whether the normalized name contains a fatty-acid
// derivative word ending in -ate.
func HasAcidDerivative(name string) bool {
	return acidDerivative.MatchString(name)
}

// ContainsWholeWord reports whether word occurs in name bounded by
// non-alphanumeric characters. Prevents "sil" from matching inside "silica".
func ContainsWholeWord(name, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(name[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if boundaryBefore(name, start) && boundaryAfter(name, end) {
			return true
		}
		from = start + 1
	}
}

// ContainsWordSuffix reports whether word occurs in name bounded on the
// right side only. "wax" is found in "beeswax" and "candelilla wax" but not
// in "waxillin".
func ContainsWordSuffix(name, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(name[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		if boundaryAfter(name, start+len(word)) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i == len(s) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z')
}
