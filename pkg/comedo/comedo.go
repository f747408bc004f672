// Package comedo analyzes cosmetic ingredient lists for comedogenic risk.
//
// The core is deterministic and pure: a fixed comedogen policy is applied to
// an ordered INCI list, every ingredient is annotated, and the annotations
// are reduced to a single product risk level. Fetching ingredient lists,
// caching and chat rendering are collaborators outside this package.
package comedo

import (
	"github.com/comedolab/comedo/pkg/comedo/classify"
	"github.com/comedolab/comedo/pkg/comedo/policy"
	"github.com/comedolab/comedo/pkg/comedo/risk"
	"github.com/comedolab/comedo/pkg/comedo/sourceurl"
)

// Analyzer is the classification-and-scoring engine facade.
// It holds only read-only policy tables and is safe for concurrent use.
type Analyzer struct {
	policy     *policy.Policy
	classifier *classify.Classifier
}

// Options configures an Analyzer.
type Options struct {
	// Policy overrides the built-in comedogen policy. Nil means Default.
	Policy *policy.Policy
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	p := opts.Policy
	if p == nil {
		p = policy.Default()
	}
	return &Analyzer{
		policy:     p,
		classifier: classify.New(p),
	}
}

// Report is the outcome of one product analysis.
type Report struct {
	Ingredients []classify.Record `json:"ingredients"`
	Risk        risk.Level        `json:"risk_level"`

	// SourceURL is the sanitized source of the ingredient list.
	// Empty with HasSourceURL false when the claimed source was rejected.
	SourceURL    string `json:"source_url,omitempty"`
	HasSourceURL bool   `json:"-"`
}

// Analyze classifies an ordered ingredient list and derives the product risk.
// names must be in declared INCI order; claimedURL may be empty or free text
// and is sanitized rather than trusted. Analyze is total: any input, including
// an empty list, produces a report.
func (a *Analyzer) Analyze(names []string, claimedURL string) Report {
	records := a.classifier.ClassifyAll(names)
	report := Report{
		Ingredients: records,
		Risk:        risk.Aggregate(records),
	}
	report.SourceURL, report.HasSourceURL = sourceurl.Sanitize(claimedURL)
	return report
}

// Policy returns the analyzer's policy tables for read-only presentation.
func (a *Analyzer) Policy() *policy.Policy {
	return a.policy
}
