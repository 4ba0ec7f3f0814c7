package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiEndpoint = "https://gemini.googleapis.com/v1/models/gemini-2.5-flash:generateContent"

// geminiSummarizer calls the Gemini generate-content API directly. The
// endpoint and credential are injected through configuration, never
// hard-coded at call sites.
type geminiSummarizer struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func newGeminiSummarizer(cfg SummarizerConfig) (Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}

	return &geminiSummarizer{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type geminiRequest struct {
	Contents string `json:"contents"`
}

type geminiResponse struct {
	Text string `json:"text"`
}

func (s *geminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	jsonBody, err := json.Marshal(geminiRequest{Contents: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("no summary returned")
	}

	return parsed.Text, nil
}
