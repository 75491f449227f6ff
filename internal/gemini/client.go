// Package gemini extracts structured financial records from free-form text
// or bank-statement images using the Google Gemini generateContent API.
// Interpretation is delegated entirely to the model; this package only
// builds the prompt, parses the JSON reply, and normalizes the result.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nardoto/nardotos-finance/internal/models"
)

// DefaultBaseURL is the production Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// ExtractedEntry is one entry-shaped record produced by the model,
// normalized for storage.
type ExtractedEntry struct {
	Type        models.EntryType   `json:"tipo"`
	Amount      float64            `json:"valor"`
	Category    string             `json:"categoria"`
	Description string             `json:"descricao"`
	Date        time.Time          `json:"data"`
	Status      models.EntryStatus `json:"status"`
}

// ExtractedPlan is one plan-shaped record produced by the model.
type ExtractedPlan struct {
	Type        models.EntryType `json:"tipo"`
	Amount      float64          `json:"valor"`
	Category    string           `json:"categoria"`
	Description string           `json:"descricao"`
	DueDate     time.Time        `json:"dataVencimento"`
	Recurring   bool             `json:"recorrente"`
}

// Extractor is the adapter boundary. Services and handlers depend on this
// interface so tests can mock the model instead of calling it.
type Extractor interface {
	ExtractText(ctx context.Context, text string, categories []string) ([]ExtractedEntry, error)
	ExtractImage(ctx context.Context, imageBase64 string, categories []string) ([]ExtractedEntry, error)
	ExtractPlans(ctx context.Context, text string, categories []string) ([]ExtractedPlan, error)
}

// Client calls the Gemini REST API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Gemini client. baseURL is normally DefaultBaseURL;
// tests point it at a local httptest server.
func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

// ExtractText asks the model to extract entries from free-form user text.
func (c *Client) ExtractText(ctx context.Context, text string, categories []string) ([]ExtractedEntry, error) {
	raw, err := c.generate(ctx, entryTextPrompt(text, categories), "")
	if err != nil {
		return nil, err
	}
	return parseEntries(raw)
}

// ExtractImage asks the model to extract every visible entry from a
// base64-encoded bank-statement image.
func (c *Client) ExtractImage(ctx context.Context, imageBase64 string, categories []string) ([]ExtractedEntry, error) {
	raw, err := c.generate(ctx, entryImagePrompt(categories), stripDataURLPrefix(imageBase64))
	if err != nil {
		return nil, err
	}
	return parseEntries(raw)
}

// ExtractPlans asks the model to extract scheduled future bills from text.
func (c *Client) ExtractPlans(ctx context.Context, text string, categories []string) ([]ExtractedPlan, error) {
	raw, err := c.generate(ctx, planTextPrompt(text, categories), "")
	if err != nil {
		return nil, err
	}
	return parsePlans(raw)
}

// generateContent request/response shapes (only the fields we use).
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate performs one generateContent call and returns the model's text reply.
func (c *Client) generate(ctx context.Context, prompt, imageBase64 string) (string, error) {
	parts := []part{{Text: prompt}}
	if imageBase64 != "" {
		parts = append(parts, part{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}})
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("calling gemini: unexpected status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func stripDataURLPrefix(imageBase64 string) string {
	if idx := strings.Index(imageBase64, ";base64,"); idx >= 0 && strings.HasPrefix(imageBase64, "data:image/") {
		return imageBase64[idx+len(";base64,"):]
	}
	return imageBase64
}
