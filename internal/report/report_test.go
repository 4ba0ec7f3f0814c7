package report

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TerminusTerminal/invest-desk/internal/api"
)

func TestParseSummary_Mapping(t *testing.T) {
	body := `{
		"total_allocated": 125000,
		"office_head": "R. Santos",
		"by_sector": {"agriculture": 3, "logistics": 7},
		"audited": true
	}`

	cards := ParseSummary([]byte(body))
	require.Len(t, cards, 4)

	// Cards are ordered by key.
	assert.Equal(t, "audited", cards[0].Key)
	assert.Equal(t, KindScalar, cards[0].Value.Kind)
	assert.Equal(t, "true", cards[0].Value.Scalar)

	assert.Equal(t, "by_sector", cards[1].Key)
	assert.Equal(t, KindObject, cards[1].Value.Kind)
	assert.Contains(t, cards[1].Value.Text(), `"agriculture": 3`)

	assert.Equal(t, "office_head", cards[2].Key)
	assert.Equal(t, "R. Santos", cards[2].Value.Scalar)

	assert.Equal(t, "total_allocated", cards[3].Key)
	assert.Equal(t, "125000", cards[3].Value.Scalar)
	assert.Equal(t, "TOTAL ALLOCATED", cards[3].Title())
}

func TestParseSummary_StatusRows(t *testing.T) {
	body := `[{"status":"Pending","total":4},{"status":"Approved","total":9}]`

	cards := ParseSummary([]byte(body))
	require.Len(t, cards, 2)
	assert.Equal(t, "Pending", cards[0].Key)
	assert.Equal(t, "4", cards[0].Value.Scalar)
}

func TestParseSummary_UnusableShapes(t *testing.T) {
	assert.Empty(t, ParseSummary([]byte(`"just a string"`)))
	assert.Empty(t, ParseSummary([]byte(`null`)))
	assert.Empty(t, ParseSummary([]byte(`{invalid`)))
}

// blockingSummarizer lets tests control when each summarize call
// finishes, keyed by input text.
type blockingSummarizer struct {
	release map[string]chan struct{}
	errs    map[string]error
}

func (s *blockingSummarizer) Summarize(_ context.Context, text string) (string, error) {
	if ch, ok := s.release[text]; ok {
		<-ch
	}
	if err := s.errs[text]; err != nil {
		return "", err
	}
	return "summary of " + text, nil
}

func newModuleWithCards(t *testing.T, summarizer Summarizer, body string) *Module {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)

	m := New(client, summarizer)
	require.NoError(t, m.Load(context.Background()))
	return m
}

func TestModule_SummarizeConcurrentCardsDoNotBlock(t *testing.T) {
	slowRelease := make(chan struct{})
	summarizer := &blockingSummarizer{
		release: map[string]chan struct{}{"slow-value": slowRelease},
		errs:    map[string]error{},
	}

	m := newModuleWithCards(t, summarizer, `{"fast":"fast-value","slow":"slow-value"}`)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = m.Summarize(context.Background(), "slow")
	}()

	// The fast card completes while the slow card is still in flight.
	fastDone := make(chan struct{})
	go func() {
		_, err := m.Summarize(context.Background(), "fast")
		assert.NoError(t, err)
		close(fastDone)
	}()

	select {
	case <-fastDone:
	case <-time.After(2 * time.Second):
		t.Fatal("fast card blocked behind slow card")
	}

	assert.Eventually(t, func() bool { return m.State("slow").Busy }, time.Second, 10*time.Millisecond)
	close(slowRelease)
	wg.Wait()

	assert.Equal(t, "summary of slow-value", m.State("slow").Summary)
	assert.Equal(t, "summary of fast-value", m.State("fast").Summary)
}

func TestModule_SummarizeFailureIsCardLocal(t *testing.T) {
	summarizer := &blockingSummarizer{
		errs: map[string]error{"bad-value": fmt.Errorf("provider unavailable")},
	}

	m := newModuleWithCards(t, summarizer, `{"good":"good-value","bad":"bad-value"}`)

	_, err := m.Summarize(context.Background(), "bad")
	require.Error(t, err)

	_, err = m.Summarize(context.Background(), "good")
	require.NoError(t, err)

	assert.Error(t, m.State("bad").Err)
	assert.Empty(t, m.State("bad").Summary)
	assert.NoError(t, m.State("good").Err)
	assert.Equal(t, "summary of good-value", m.State("good").Summary)
}

func TestModule_SummarizeUnknownCard(t *testing.T) {
	m := newModuleWithCards(t, &blockingSummarizer{}, `{"a":"1"}`)
	_, err := m.Summarize(context.Background(), "missing")
	assert.Error(t, err)
}

func TestModule_Visible(t *testing.T) {
	m := newModuleWithCards(t, &blockingSummarizer{}, `{"total_allocated":1,"total_investors":2,"office_head":"x"}`)

	assert.Len(t, m.Visible(), 3)

	m.Filter = "TOTAL"
	assert.Len(t, m.Visible(), 2)

	m.Filter = "nothing"
	assert.Empty(t, m.Visible())
}

func TestModule_ReloadDuringSummarize(t *testing.T) {
	m := newModuleWithCards(t, &blockingSummarizer{}, `{"total_allocated":1,"office_head":"x"}`)

	// A refresh must be safe while summaries and reads are in flight.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Load(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Summarize(context.Background(), "office_head")
			_ = m.Visible()
		}()
	}
	wg.Wait()

	assert.Len(t, m.Visible(), 2)
}

func TestOfficeSummarizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/summarize", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"text":"condensed"}`))
	}))
	defer srv.Close()

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)

	s, err := NewSummarizer(SummarizerConfig{Provider: "office"}, client)
	require.NoError(t, err)

	got, err := s.Summarize(context.Background(), "long report text")
	require.NoError(t, err)
	assert.Equal(t, "condensed", got)
}

func TestGeminiSummarizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"text":"condensed"}`))
	}))
	defer srv.Close()

	s, err := NewSummarizer(SummarizerConfig{Provider: "gemini", Endpoint: srv.URL, APIKey: "key-123"}, nil)
	require.NoError(t, err)

	got, err := s.Summarize(context.Background(), "long report text")
	require.NoError(t, err)
	assert.Equal(t, "condensed", got)
}

func TestNewSummarizer_Validation(t *testing.T) {
	_, err := NewSummarizer(SummarizerConfig{Provider: "gemini"}, nil)
	assert.Error(t, err)

	_, err = NewSummarizer(SummarizerConfig{Provider: "watson"}, nil)
	assert.Error(t, err)
}
