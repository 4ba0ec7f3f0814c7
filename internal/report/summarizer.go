package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/TerminusTerminal/invest-desk/internal/api"
)

// Summarizer condenses report text through an external text-generation
// service. The report module depends on this capability, never on a
// concrete vendor.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizerConfig selects and configures a summarization provider.
type SummarizerConfig struct {
	// Provider is "office" for the backend pass-through endpoint or
	// "gemini" for a direct call to the Gemini API.
	Provider string
	// Endpoint overrides the provider's default URL.
	Endpoint string
	// APIKey authenticates direct provider calls.
	APIKey string
}

// NewSummarizer creates a summarizer for the configured provider. The
// backend client is used by the pass-through provider.
func NewSummarizer(cfg SummarizerConfig, client api.Requester) (Summarizer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "office":
		return &officeSummarizer{client: client}, nil
	case "gemini":
		return newGeminiSummarizer(cfg)
	default:
		return nil, fmt.Errorf("unsupported summarizer provider: %s", cfg.Provider)
	}
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Text string `json:"text"`
}

// officeSummarizer forwards text through the backend's summarize
// endpoint, which fronts the office's own provider credential.
type officeSummarizer struct {
	client api.Requester
}

func (s *officeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	var resp summarizeResponse
	if err := s.client.Post(ctx, "/reports/summarize", summarizeRequest{Text: text}, &resp); err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("no summary returned")
	}
	return resp.Text, nil
}
