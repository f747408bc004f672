package classify

import (
	"testing"

	"github.com/comedolab/comedo/pkg/comedo/policy"
)

func newClassifier() *Classifier {
	return New(policy.Default())
}

func TestAcidDerivativeExclusion(t *testing.T) {
	c := newClassifier()

	if rec := c.Classify("Sodium Palmitate", 3); rec.Hard {
		t.Error("'Sodium Palmitate' must not be hard")
	}
	if rec := c.Classify("Palmitic Acid", 3); !rec.Hard {
		t.Error("'Palmitic Acid' must be hard")
	}
	if rec := c.Classify("Glyceryl Stearate", 1); rec.Hard {
		t.Error("'Glyceryl Stearate' must not be hard")
	}
	if rec := c.Classify("Isopropyl Myristate", 2); rec.Hard {
		t.Error("'Isopropyl Myristate' must not be hard")
	}
}

func TestWaxShortCircuit(t *testing.T) {
	c := newClassifier()

	if rec := c.Classify("Candelilla Wax", 1); !rec.Hard {
		t.Error("'Candelilla Wax' must be hard")
	}
	if rec := c.Classify("Cera Wax", 9); !rec.Hard {
		t.Error("'Cera Wax' must be hard")
	}
	// "wax" is a hard hit at the end of a word, not at its start.
	if rec := c.Classify("Beeswax", 1); !rec.Hard {
		t.Error("'Beeswax' must be hard")
	}
	if rec := c.Classify("Waxillin", 1); rec.Hard {
		t.Error("'Waxillin' must not be hard")
	}
}

func TestSilVersusSilica(t *testing.T) {
	c := newClassifier()

	if rec := c.Classify("Silica", 2); rec.Conditional {
		t.Error("'Silica' must not be conditional")
	}
	if rec := c.Classify("Silicon Dioxide", 2); rec.Conditional {
		t.Error("'Silicon Dioxide' must not be conditional")
	}
	if rec := c.Classify("Methyl Trimethicone", 2); !rec.Conditional {
		t.Error("'Methyl Trimethicone' must be conditional via the methicone substring rule")
	}
	if rec := c.Classify("Dimethicone Crosspolymer", 7); !rec.Conditional {
		t.Error("'Dimethicone Crosspolymer' must be conditional")
	}
}

func TestHardShortCircuitsConditional(t *testing.T) {
	c := newClassifier()

	// Lanolin is in both tables; the hard check wins and the flags stay
	// mutually exclusive.
	rec := c.Classify("Lanolin", 1)
	if !rec.Hard {
		t.Fatal("'Lanolin' must be hard")
	}
	if rec.Conditional || rec.EarlyConditional {
		t.Error("hard hit must not also be conditional")
	}
}

func TestEarlyConditionalCutoff(t *testing.T) {
	c := newClassifier()

	rec := c.Classify("Shea Butter", 5)
	if !rec.Conditional || !rec.EarlyConditional {
		t.Errorf("position 5 should be early: %+v", rec)
	}

	rec = c.Classify("Shea Butter", 6)
	if !rec.Conditional || rec.EarlyConditional {
		t.Errorf("position 6 should be conditional but not early: %+v", rec)
	}
}

func TestNoMatch(t *testing.T) {
	c := newClassifier()

	rec := c.Classify("Aqua", 1)
	if rec.Hard || rec.Conditional || rec.EarlyConditional {
		t.Errorf("'Aqua' should match nothing: %+v", rec)
	}
	if rec.Name != "Aqua" || rec.Position != 1 {
		t.Errorf("record should keep name and position: %+v", rec)
	}
	if rec.Flagged() {
		t.Error("unflagged record reported Flagged")
	}
}

func TestClassifyEmptyName(t *testing.T) {
	c := newClassifier()
	rec := c.Classify("", 1)
	if rec.Hard || rec.Conditional || rec.EarlyConditional {
		t.Errorf("empty name must not match: %+v", rec)
	}
}

func TestClassifyAllOrderPreserved(t *testing.T) {
	c := newClassifier()

	names := []string{"Aqua", "Squalane", "Glycerin", "Shea Butter", "Silica"}
	records := c.ClassifyAll(names)

	if len(records) != len(names) {
		t.Fatalf("expected %d records, got %d", len(names), len(records))
	}
	for i, rec := range records {
		if rec.Name != names[i] {
			t.Errorf("record %d has name %q, want %q", i, rec.Name, names[i])
		}
		if rec.Position != i+1 {
			t.Errorf("record %d has position %d, want %d", i, rec.Position, i+1)
		}
	}
}

func TestClassifyAllPositionDependsOnOrder(t *testing.T) {
	c := newClassifier()

	early := c.ClassifyAll([]string{"Squalane", "Aqua", "Glycerin", "Alcohol", "Parfum", "Citric Acid"})
	if !early[0].EarlyConditional {
		t.Error("squalane at position 1 should be early")
	}

	late := c.ClassifyAll([]string{"Aqua", "Glycerin", "Alcohol", "Parfum", "Citric Acid", "Squalane"})
	last := late[len(late)-1]
	if !last.Conditional || last.EarlyConditional {
		t.Errorf("squalane at position 6 should be conditional but not early: %+v", last)
	}
}

func TestClassifyAllSkipsEmptyNames(t *testing.T) {
	c := newClassifier()

	records := c.ClassifyAll([]string{"Aqua", "", "   ", "Squalane"})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Blank entries consume a position, so Squalane keeps its declared index.
	if records[1].Name != "Squalane" || records[1].Position != 4 {
		t.Errorf("positions should keep the declared index: %+v", records[1])
	}
	if !records[1].EarlyConditional {
		t.Errorf("position 4 is still early for squalane: %+v", records[1])
	}
}

func TestClassifyAllEmptyInput(t *testing.T) {
	c := newClassifier()
	if records := c.ClassifyAll(nil); len(records) != 0 {
		t.Errorf("nil input should produce no records, got %d", len(records))
	}
}
