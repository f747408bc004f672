package policy

import (
	"sort"
	"testing"

	"github.com/comedolab/comedo/pkg/comedo/match"
)

func TestDefaultTables(t *testing.T) {
	p := Default()

	if len(p.Hard) != 19 {
		t.Errorf("expected 19 hard terms, got %d", len(p.Hard))
	}
	if len(p.Conditional) != 8 {
		t.Errorf("expected 8 conditional terms, got %d", len(p.Conditional))
	}
	if p.Wax.Text != "wax" || p.Wax.Kind != match.WordSuffix {
		t.Errorf("unexpected wax rule: %+v", p.Wax)
	}
}

func TestKinds(t *testing.T) {
	p := Default()

	kinds := make(map[string]match.Kind)
	for _, term := range p.Hard {
		kinds[term.Text] = term.Kind
	}
	for _, ct := range p.Conditional {
		kinds[ct.Term.Text] = ct.Term.Kind
	}

	cases := map[string]match.Kind{
		"lanolin":        match.WholeWord,
		"wax":            match.WordSuffix,
		"cera wax":       match.Phrase,
		"palmitic acid":  match.Phrase,
		"olive oil":      match.Phrase,
		"sil":            match.WholeWord,
		"methicone":      match.Substring,
		"dimethicone":    match.Substring,
		"shea butter":    match.Phrase,
		"grape seed oil": match.Phrase,
	}
	for text, want := range cases {
		got, ok := kinds[text]
		if !ok {
			t.Errorf("term %q missing from tables", text)
			continue
		}
		if got != want {
			t.Errorf("term %q has kind %v, want %v", text, got, want)
		}
	}
}

func TestCutoffs(t *testing.T) {
	p := Default()
	for _, ct := range p.Conditional {
		if ct.Cutoff != 5 {
			t.Errorf("term %q has cutoff %d, want 5", ct.Term.Text, ct.Cutoff)
		}
	}
}

func TestCutoffFor(t *testing.T) {
	p := Default()

	if got := p.CutoffFor("Shea Butter"); got != 5 {
		t.Errorf("CutoffFor(Shea Butter) = %d, want 5", got)
	}
	if got := p.CutoffFor("Methyl Trimethicone"); got != 5 {
		t.Errorf("CutoffFor(Methyl Trimethicone) = %d, want 5", got)
	}
	if got := p.CutoffFor("Aqua"); got != 0 {
		t.Errorf("CutoffFor(Aqua) = %d, want 0", got)
	}
	if got := p.CutoffFor(""); got != 0 {
		t.Errorf("CutoffFor(empty) = %d, want 0", got)
	}
}

func TestListHardSortedCopy(t *testing.T) {
	p := Default()

	list := p.ListHard()
	if !sort.StringsAreSorted(list) {
		t.Error("ListHard should be sorted")
	}
	if len(list) != len(p.Hard) {
		t.Errorf("ListHard returned %d terms, want %d", len(list), len(p.Hard))
	}

	// Mutating the listing must not touch the policy.
	list[0] = "mutated"
	if p.ListHard()[0] == "mutated" {
		t.Error("ListHard must return a copy")
	}
}

func TestListConditionalSorted(t *testing.T) {
	p := Default()
	list := p.ListConditional()
	if len(list) != len(p.Conditional) {
		t.Fatalf("ListConditional returned %d entries, want %d", len(list), len(p.Conditional))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Term.Text > list[i].Term.Text {
			t.Fatalf("ListConditional not sorted at %d: %q > %q", i, list[i-1].Term.Text, list[i].Term.Text)
		}
	}
}

func TestConditionalTableStableOrder(t *testing.T) {
	// The table is built from a map; construction must still be deterministic.
	a := Default()
	b := Default()
	for i := range a.Conditional {
		if a.Conditional[i].Term.Text != b.Conditional[i].Term.Text {
			t.Fatalf("conditional order differs between constructions at %d", i)
		}
	}
}
