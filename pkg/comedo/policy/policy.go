// Package policy holds the fixed comedogen term tables. The lists are a
// frozen domain policy: they are compiled in, loaded once, and never mutated
// at runtime.
package policy

import (
	"sort"
	"strings"

	"github.com/comedolab/comedo/pkg/comedo/match"
	"github.com/comedolab/comedo/pkg/comedo/normalize"
)

// Conditional is a conditional comedogen term together with its
// early-position cutoff: the term only escalates risk when the ingredient
// appears at a declared-order position at or below the cutoff.
type Conditional struct {
	Term   match.Term
	Cutoff int
}

// Policy is the full comedogen policy: the wax short-circuit rule, the hard
// term list and the conditional term list. Fields are read-only after
// construction; a single Policy may be shared by any number of concurrent
// analyses.
type Policy struct {
	// Wax is checked before the generic hard list: any word ending in
	// "wax" is an unconditional hard hit ("beeswax", "candelilla wax"),
	// while words merely starting with it ("waxillin") are not.
	Wax match.Term

	Hard        []match.Term
	Conditional []Conditional
}

const defaultCutoff = 5

// hardTerms is the fixed unconditional comedogen list.
var hardTerms = []string{
	"lanolin",
	"petrolatum",
	"paraffinum",
	"kerosinum",
	"ceresin",
	"wax",
	"cera wax",
	"palmitic acid",
	"stearic acid",
	"lauric acid",
	"myristic acid",
	"capric acid",
	"caprylic acid",
	"olive oil",
	"soybean oil",
	"corn oil",
	"cottonseed oil",
	"sesame oil",
	"arachis oil",
}

// conditionalTerms maps each conditional comedogen to its cutoff.
var conditionalTerms = map[string]int{
	"shea butter":    defaultCutoff,
	"lanolin":        defaultCutoff,
	"squalene":       defaultCutoff,
	"squalane":       defaultCutoff,
	"grape seed oil": defaultCutoff,
	"sil":            defaultCutoff,
	"methicone":      defaultCutoff,
	"dimethicone":    defaultCutoff,
}

// specialKinds overrides the default match kind for terms where a generic
// rule would over- or under-fire. "methicone"/"dimethicone" must match inside
// compound silicone names; "sil" must never match inside "silica".
var specialKinds = map[string]match.Kind{
	"methicone":   match.Substring,
	"dimethicone": match.Substring,
	"sil":         match.WholeWord,
	"wax":         match.WordSuffix,
}

// Default returns the fixed comedogen policy.
func Default() *Policy {
	p := &Policy{
		Wax:  match.Term{Text: "wax", Kind: match.WordSuffix},
		Hard: make([]match.Term, 0, len(hardTerms)),
	}
	for _, text := range hardTerms {
		p.Hard = append(p.Hard, match.Term{Text: text, Kind: kindFor(text)})
	}
	for text, cutoff := range conditionalTerms {
		p.Conditional = append(p.Conditional, Conditional{
			Term:   match.Term{Text: text, Kind: kindFor(text)},
			Cutoff: cutoff,
		})
	}
	// Map iteration order is random; keep the table stable.
	sort.Slice(p.Conditional, func(i, j int) bool {
		return p.Conditional[i].Term.Text < p.Conditional[j].Term.Text
	})
	return p
}

// kindFor picks the match kind for a term: special-cased terms use their
// fixed kind, multi-word terms match as phrases, single words match whole.
func kindFor(text string) match.Kind {
	if k, ok := specialKinds[text]; ok {
		return k
	}
	if strings.Contains(text, " ") {
		return match.Phrase
	}
	return match.WholeWord
}

// CutoffFor returns the early-position cutoff of the first conditional term
// matching the ingredient name, or 0 when no conditional term matches.
func (p *Policy) CutoffFor(name string) int {
	norm := normalize.Name(name)
	if norm == "" {
		return 0
	}
	for _, ct := range p.Conditional {
		if ct.Term.Matches(norm) {
			return ct.Cutoff
		}
	}
	return 0
}

// ListHard returns the hard term texts sorted alphabetically, for
// presentation layers that render the policy (e.g. a /base listing).
func (p *Policy) ListHard() []string {
	out := make([]string, len(p.Hard))
	for i, t := range p.Hard {
		out[i] = t.Text
	}
	sort.Strings(out)
	return out
}

// ListConditional returns copies of the conditional entries sorted by term
// text.
func (p *Policy) ListConditional() []Conditional {
	out := make([]Conditional, len(p.Conditional))
	copy(out, p.Conditional)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Term.Text < out[j].Term.Text
	})
	return out
}
