package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/TerminusTerminal/invest-desk/internal/api"
)

// CardState tracks one card's summarization lifecycle. Each card is
// independent: a failure here never touches another card.
type CardState struct {
	Err     error
	Summary string
	Busy    bool
}

// Module fetches the report summary and manages per-card summaries.
type Module struct {
	client     api.Requester
	summarizer Summarizer
	logger     *slog.Logger

	mu     sync.Mutex
	states map[string]CardState
	cards  []Card

	Filter string
}

// New creates a report module over the given API client and summarizer.
func New(client api.Requester, summarizer Summarizer) *Module {
	return &Module{
		client:     client,
		summarizer: summarizer,
		logger:     slog.Default().With("component", "report"),
		states:     make(map[string]CardState),
	}
}

// Load fetches the summary and replaces the card set wholesale.
// Per-card summaries are reset; they describe the previous snapshot.
func (m *Module) Load(ctx context.Context) error {
	var raw json.RawMessage
	if err := m.client.Get(ctx, "/reports/summary", nil, &raw); err != nil {
		m.logger.Error("failed to fetch report summary", "error", err)
		m.replace(nil)
		return fmt.Errorf("failed to fetch report summary: %w", err)
	}

	m.replace(ParseSummary(raw))
	return nil
}

func (m *Module) replace(cards []Card) {
	m.mu.Lock()
	m.cards = cards
	m.states = make(map[string]CardState)
	m.mu.Unlock()
}

// Visible returns a snapshot of the cards whose key contains the
// filter text, case-insensitively.
func (m *Module) Visible() []Card {
	m.mu.Lock()
	defer m.mu.Unlock()

	filter := strings.ToLower(m.Filter)
	out := make([]Card, 0, len(m.cards))
	for _, card := range m.cards {
		if filter == "" || strings.Contains(strings.ToLower(card.Key), filter) {
			out = append(out, card)
		}
	}
	return out
}

// State returns the summarization state for a card key.
func (m *Module) State(key string) CardState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[key]
}

// Summarize condenses one card's value. Safe to call concurrently for
// different cards; each call only updates its own card's state. The
// result is recorded and also returned for direct display.
func (m *Module) Summarize(ctx context.Context, key string) (string, error) {
	card, ok := m.find(key)
	if !ok {
		return "", fmt.Errorf("no report card %q", key)
	}

	m.setState(key, CardState{Busy: true})

	summary, err := m.summarizer.Summarize(ctx, card.Value.Text())
	if err != nil {
		m.logger.Error("failed to summarize report card", "key", key, "error", err)
		m.setState(key, CardState{Err: err})
		return "", err
	}

	m.setState(key, CardState{Summary: summary})
	return summary, nil
}

func (m *Module) find(key string) (Card, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, card := range m.cards {
		if card.Key == key {
			return card, true
		}
	}
	return Card{}, false
}

func (m *Module) setState(key string, state CardState) {
	m.mu.Lock()
	m.states[key] = state
	m.mu.Unlock()
}
