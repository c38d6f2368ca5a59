// Package describe drafts narration text for the admin studio via the
// Anthropic API.
package describe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const anthropicAPI = "https://api.anthropic.com/v1/messages"

// Suggestion holds the drafted narration.
type Suggestion struct {
	Narration string `json:"narration"`
}

// Suggester drafts narration text via the Anthropic API.
type Suggester struct {
	apiKey string
	model  string
}

// New creates a Suggester. The API key comes from the environment; model may
// be empty to use the default.
func New(model string) (*Suggester, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &Suggester{apiKey: apiKey, model: model}, nil
}

// Suggest drafts a short horror narration for a video title and category. The
// draft uses '|' between sentences so it drops straight into the segmenter.
func (s *Suggester) Suggest(title, category string) (*Suggestion, error) {
	prompt := buildPrompt(title, category)

	resp, err := s.callAPI(prompt)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}

	return parseResponse(resp)
}

func buildPrompt(title, category string) string {
	var sb strings.Builder

	sb.WriteString("Draft a narration for a short horror video. Return JSON only.\n\n")
	sb.WriteString("Title: ")
	sb.WriteString(title)
	sb.WriteString("\n")
	if category != "" {
		sb.WriteString("Category: ")
		sb.WriteString(category)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(`Return a JSON object with this structure:
{
  "narration": "sentence 1 | sentence 2 | sentence 3"
}

Rules:
- Write in the language of the title
- 3 to 6 short sentences, separated by the '|' character
- Tense, atmospheric, no gore details
- Each sentence must stand alone as an on-screen caption

Return ONLY the JSON, no other text.`)

	return sb.String()
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *Suggester) callAPI(prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     s.model,
		MaxTokens: 1024,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", anthropicAPI, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Content[0].Text, nil
}

func parseResponse(resp string) (*Suggestion, error) {
	// Clean up response - remove markdown code blocks if present
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var result Suggestion
	if err := json.Unmarshal([]byte(resp), &result); err != nil {
		return nil, fmt.Errorf("parse json: %w (response: %s)", err, resp)
	}
	if strings.TrimSpace(result.Narration) == "" {
		return nil, fmt.Errorf("empty narration in response")
	}

	return &result, nil
}
