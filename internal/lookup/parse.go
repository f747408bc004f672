package lookup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawResult mirrors the lookup JSON. Older prompt revisions returned
// ingredient objects rather than bare names, so both shapes are accepted.
type rawResult struct {
	ProductName string            `json:"product_name"`
	Ingredients []json.RawMessage `json:"ingredients"`
	SourceURL   string            `json:"source_url"`
	Err         string            `json:"error"`
}

type rawIngredient struct {
	Name string `json:"name"`
}

// parseResult decodes the step-1 payload: code fences and surrounding prose
// are stripped, ingredient entries may be strings or objects, HTML fragments
// are removed, and empty names are dropped.
func parseResult(raw string) (Result, error) {
	body, err := extractObject(raw)
	if err != nil {
		return Result{}, err
	}

	var parsed rawResult
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Result{}, fmt.Errorf("lookup: parse result: %w", err)
	}

	res := Result{
		ProductName: cleanText(parsed.ProductName),
		SourceURL:   strings.TrimSpace(parsed.SourceURL),
		Err:         strings.TrimSpace(parsed.Err),
	}
	for _, entry := range parsed.Ingredients {
		name := ingredientName(entry)
		if name == "" {
			continue
		}
		res.Ingredients = append(res.Ingredients, name)
	}
	return res, nil
}

// parseExplanation decodes the step-2 payload.
func parseExplanation(raw string) (Explanation, error) {
	body, err := extractObject(raw)
	if err != nil {
		return Explanation{}, err
	}

	var expl Explanation
	if err := json.Unmarshal([]byte(body), &expl); err != nil {
		return Explanation{}, fmt.Errorf("lookup: parse explanation: %w", err)
	}

	expl.Summary = cleanText(expl.Summary)
	expl.OverallNotes = cleanText(expl.OverallNotes)
	for i := range expl.Notes {
		expl.Notes[i].Name = cleanText(expl.Notes[i].Name)
		expl.Notes[i].Note = cleanText(expl.Notes[i].Note)
	}
	kept := expl.Recommendations[:0]
	for _, rec := range expl.Recommendations {
		if r := cleanText(rec); r != "" {
			kept = append(kept, r)
		}
	}
	expl.Recommendations = kept
	return expl, nil
}

// ingredientName extracts a cleaned name from a string or object entry.
func ingredientName(entry json.RawMessage) string {
	var s string
	if err := json.Unmarshal(entry, &s); err == nil {
		return cleanText(s)
	}
	var obj rawIngredient
	if err := json.Unmarshal(entry, &obj); err == nil {
		return cleanText(obj.Name)
	}
	return ""
}

// extractObject isolates the first top-level JSON object in raw, tolerating
// code fences and stray prose around it.
func extractObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("lookup: no JSON object in response")
	}
	return raw[start : end+1], nil
}

// cleanText strips HTML and normalizes whitespace in a model text field.
func cleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = stripHTML(s)
	}
	return strings.TrimSpace(s)
}
