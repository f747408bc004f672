// Package lookup talks to the external ingredient-lookup service: an
// OpenAI-compatible responses endpoint with web search enabled that finds a
// product's INCI list from a name and/or a label photo. The service only
// reports names and a claimed source; classification happens locally.
package lookup

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/comedolab/comedo/pkg/comedo/internalerr"
)

// Client calls the lookup endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	// MaxOutputTokens caps the response size. Zero means server default.
	MaxOutputTokens int

	HTTPClient *http.Client
}

// Result is the parsed step-1 lookup payload.
type Result struct {
	ProductName string   `json:"product_name"`
	Ingredients []string `json:"-"`
	SourceURL   string   `json:"source_url"`
	// Err is a machine-readable failure tag, e.g. "no_inci" when the
	// composition could not be found or read.
	Err string `json:"error"`
}

// NoINCI reports whether the lookup explicitly failed to find a composition.
func (r Result) NoINCI() bool {
	return r.Err == "no_inci" || len(r.Ingredients) == 0
}

// Explanation is the parsed step-2 payload.
type Explanation struct {
	Summary         string   `json:"summary"`
	OverallNotes    string   `json:"overall_notes"`
	Notes           []Note   `json:"comedogens_notes"`
	Recommendations []string `json:"recommendations"`
}

// Note is one flagged-ingredient commentary entry.
type Note struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Type     string `json:"type"` // "hard" or "conditional"
	Note     string `json:"note"`
}

const ingredientsPrompt = `You identify cosmetic products and their INCI ingredient lists.
Given a product name and/or a label photo: identify the product (use OCR on the photo),
search the web for the full INCI composition, and answer with EXACTLY ONE JSON object,
no surrounding text:
{"product_name": string, "ingredients": [string, ...] in declared order,
"source_url": string or "", "error": "" or "no_inci"}.
Set "error" to "no_inci" when the composition cannot be found or read.`

const explainPrompt = `You explain comedogenic-risk analyses of cosmetic products.
Given an analysis JSON (risk level plus per-ingredient flags), answer with EXACTLY ONE
JSON object, no surrounding text:
{"summary": string, "overall_notes": string,
"comedogens_notes": [{"name": string, "position": int, "type": "hard"|"conditional", "note": string}],
"recommendations": [string, ...]}.
Comment only on flagged ingredients. This is not medical advice and must not sound like it.`

// Ingredients runs the step-1 lookup. Either productName or imageJPEG (raw
// photo bytes) may be empty, but not both.
func (c *Client) Ingredients(ctx context.Context, productName string, imageJPEG []byte) (Result, error) {
	if productName == "" && len(imageJPEG) == 0 {
		return Result{}, fmt.Errorf("lookup: product name or photo required: %w", internalerr.ErrInvalidInput)
	}

	var content []contentItem
	if productName != "" {
		content = append(content, contentItem{
			Type: "input_text",
			Text: "Product name from the user: " + productName,
		})
	}
	if len(imageJPEG) > 0 {
		content = append(content, contentItem{
			Type:     "input_image",
			ImageURL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageJPEG),
		})
	}

	raw, err := c.send(ctx, ingredientsPrompt, content, []tool{{Type: "web_search"}})
	if err != nil {
		return Result{}, err
	}
	return parseResult(raw)
}

// Explain runs the step-2 lookup over an analyzed report payload.
func (c *Client) Explain(ctx context.Context, analysisJSON []byte) (Explanation, error) {
	content := []contentItem{{
		Type: "input_text",
		Text: "Analysis to explain:\n" + string(analysisJSON),
	}}

	raw, err := c.send(ctx, explainPrompt, content, nil)
	if err != nil {
		return Explanation{}, err
	}
	return parseExplanation(raw)
}

type contentItem struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type tool struct {
	Type string `json:"type"`
}

type inputMessage struct {
	Role    string        `json:"role"`
	Content []contentItem `json:"content"`
}

type lookupRequest struct {
	Model           string         `json:"model"`
	Instructions    string         `json:"instructions"`
	Tools           []tool         `json:"tools,omitempty"`
	Input           []inputMessage `json:"input"`
	MaxOutputTokens int            `json:"max_output_tokens,omitempty"`
	Temperature     float64        `json:"temperature"`
}

type lookupResponse struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// send posts one request and returns the concatenated output text.
func (c *Client) send(ctx context.Context, instructions string, content []contentItem, tools []tool) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("lookup: base URL and model required")
	}

	reqBody, err := json.Marshal(lookupRequest{
		Model:           c.Model,
		Instructions:    instructions,
		Tools:           tools,
		Input:           []inputMessage{{Role: "user", Content: content}},
		MaxOutputTokens: c.MaxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("lookup: decode response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("lookup error: %s", payload.Error.Message)
	}

	var buf bytes.Buffer
	for _, out := range payload.Output {
		for _, item := range out.Content {
			if item.Type == "output_text" {
				buf.WriteString(item.Text)
			}
		}
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("lookup: empty response")
	}
	return buf.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 90 * time.Second}
}
