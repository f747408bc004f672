package lookup

import "testing"

func TestParseResultCodeFence(t *testing.T) {
	raw := "```json\n{\"product_name\":\"Cream\",\"ingredients\":[\"Aqua\"],\"source_url\":\"\",\"error\":\"\"}\n```"
	res, err := parseResult(raw)
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if res.ProductName != "Cream" || len(res.Ingredients) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestParseResultObjectIngredients(t *testing.T) {
	raw := `{"product_name":"Cream","ingredients":[{"name":"Aqua"},{"name":"Squalane"}],"source_url":"","error":""}`
	res, err := parseResult(raw)
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if len(res.Ingredients) != 2 || res.Ingredients[0] != "Aqua" {
		t.Errorf("unexpected ingredients: %v", res.Ingredients)
	}
}

func TestParseResultDropsEmptyNames(t *testing.T) {
	raw := `{"product_name":"Cream","ingredients":["Aqua","","   ",{"name":""},"Squalane"],"source_url":"","error":""}`
	res, err := parseResult(raw)
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if len(res.Ingredients) != 2 {
		t.Errorf("empty names should be dropped: %v", res.Ingredients)
	}
}

func TestParseResultStripsHTML(t *testing.T) {
	raw := `{"product_name":"<b>Cream</b>","ingredients":["<i>Aqua</i>","Cetearyl&nbsp;Alcohol"],"source_url":"","error":""}`
	res, err := parseResult(raw)
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if res.ProductName != "Cream" {
		t.Errorf("markup should be stripped from product name: %q", res.ProductName)
	}
	if res.Ingredients[0] != "Aqua" {
		t.Errorf("markup should be stripped from ingredient: %q", res.Ingredients[0])
	}
}

func TestParseResultNoObject(t *testing.T) {
	if _, err := parseResult("sorry, I could not find anything"); err == nil {
		t.Fatal("expected error when no JSON object present")
	}
}

func TestParseResultMalformed(t *testing.T) {
	if _, err := parseResult(`{"product_name": `); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParseExplanationDropsEmptyRecommendations(t *testing.T) {
	raw := `{"summary":"s","overall_notes":"","comedogens_notes":[],"recommendations":["", "  ", "Patch test."]}`
	expl, err := parseExplanation(raw)
	if err != nil {
		t.Fatalf("parseExplanation: %v", err)
	}
	if len(expl.Recommendations) != 1 || expl.Recommendations[0] != "Patch test." {
		t.Errorf("unexpected recommendations: %v", expl.Recommendations)
	}
}

func TestStripHTML(t *testing.T) {
	if got := stripHTML("<p>Aqua, <b>Squalane</b></p>"); got != "Aqua, Squalane" {
		t.Errorf("stripHTML = %q", got)
	}
}
