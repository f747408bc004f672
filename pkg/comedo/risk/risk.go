// Package risk reduces per-ingredient annotations to a product-level rating.
package risk

import "github.com/comedolab/comedo/pkg/comedo/classify"

// Level is the overall comedogenic risk of a product. High is worst.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
	None   Level = "none"
)

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	switch l {
	case High, Medium, Low, None:
		return true
	}
	return false
}

// Aggregate derives the product risk from classified ingredients.
//
// With H = hard hits, C = conditional hits and E = early conditional hits,
// the first matching row wins:
//
//	H >= 1 or E >= 2          -> high
//	E == 1                    -> medium
//	C >= 1 and E == 0         -> low
//	otherwise                 -> none
//
// Two early conditional hits escalate to high even without a hard hit; a
// single early hit is only medium. An empty list aggregates to none.
func Aggregate(records []classify.Record) Level {
	var hard, conditional, early int
	for _, rec := range records {
		if rec.Hard {
			hard++
		}
		if rec.Conditional {
			conditional++
			if rec.EarlyConditional {
				early++
			}
		}
	}

	switch {
	case hard >= 1 || early >= 2:
		return High
	case early == 1 && hard == 0:
		return Medium
	case conditional >= 1 && early == 0 && hard == 0:
		return Low
	case hard == 0 && conditional == 0:
		return None
	}
	// Unreachable: the arms above cover every combination of the counters.
	return None
}
