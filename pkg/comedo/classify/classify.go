// Package classify annotates ingredient lists against the comedogen policy.
package classify

import (
	"strings"

	"github.com/comedolab/comedo/pkg/comedo/normalize"
	"github.com/comedolab/comedo/pkg/comedo/policy"
)

// Record is one classified ingredient. Hard and Conditional are mutually
// exclusive: the hard check short-circuits the conditional check.
// EarlyConditional is only ever set together with Conditional.
type Record struct {
	Name     string `json:"name"`
	Position int    `json:"position"`

	Hard             bool `json:"is_hard"`
	Conditional      bool `json:"is_conditional"`
	EarlyConditional bool `json:"is_early_conditional"`
}

// Flagged reports whether the ingredient matched anything in the policy.
func (r Record) Flagged() bool {
	return r.Hard || r.Conditional
}

// Classifier applies a comedogen policy to ingredient names. It is stateless
// beyond the read-only policy tables and safe for concurrent use.
type Classifier struct {
	policy *policy.Policy
}

// New creates a classifier over the given policy.
func New(p *policy.Policy) *Classifier {
	return &Classifier{policy: p}
}

// Classify evaluates one ingredient at its 1-based declared-order position.
// First match wins: the wax rule, then the hard list (with the
// acid-derivative exclusion), then the conditional list. An ingredient that
// matches nothing keeps all flags false.
func (c *Classifier) Classify(name string, position int) Record {
	rec := Record{Name: name, Position: position}

	norm := normalize.Name(name)
	if norm == "" {
		return rec
	}

	if c.policy.Wax.Matches(norm) {
		rec.Hard = true
		return rec
	}

	for _, t := range c.policy.Hard {
		if t.MatchesHard(norm) {
			rec.Hard = true
			return rec
		}
	}

	for _, ct := range c.policy.Conditional {
		if ct.Term.Matches(norm) {
			rec.Conditional = true
			rec.EarlyConditional = position <= ct.Cutoff
			return rec
		}
	}

	return rec
}

// ClassifyAll classifies an ordered ingredient list. Each entry keeps its
// 1-based declared-order index as its position; empty or whitespace-only
// names consume a position but contribute no record, so the indices of the
// surviving entries are unchanged. Each ingredient is classified
// independently of the others.
func (c *Classifier) ClassifyAll(names []string) []Record {
	records := make([]Record, 0, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		records = append(records, c.Classify(name, i+1))
	}
	return records
}
