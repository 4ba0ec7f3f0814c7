package apply

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
)

func newFlowServer(t *testing.T, applicationPosts *atomic.Int32, lastBody *[]byte) *Flow {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/investors":
			_, _ = w.Write([]byte(`[{"id":3,"name":"Acme","email":"a@acme.test"}]`))
		case r.URL.Path == "/projects":
			_, _ = w.Write([]byte(`{"data":[{"id":7,"investor_id":3,"name":"Port Expansion"}]}`))
		case r.URL.Path == "/incentives":
			_, _ = w.Write([]byte(`[{"id":2,"title":"Tax Holiday"}]`))
		case r.URL.Path == "/applications" && r.Method == http.MethodPost:
			applicationPosts.Add(1)
			body, _ := io.ReadAll(r.Body)
			*lastBody = body
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)
	return New(client)
}

func TestFlow_LoadRefsGatesForm(t *testing.T) {
	var posts atomic.Int32
	var body []byte
	f := newFlowServer(t, &posts, &body)

	assert.Equal(t, StateLoading, f.State)
	require.NoError(t, f.LoadRefs(context.Background()))
	assert.Equal(t, StateReady, f.State)

	assert.Len(t, f.Investors, 1)
	assert.Len(t, f.Projects, 1)
	assert.Len(t, f.Incentives, 1)
}

func TestFlow_LoadRefsFailureKeepsFormDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/incentives" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := api.New(api.Config{BaseURL: srv.URL}, api.StaticToken("tok"))
	require.NoError(t, err)

	f := New(client)
	require.Error(t, f.LoadRefs(context.Background()))
	assert.Equal(t, StateLoading, f.State)

	err = f.Submit(context.Background())
	assert.Error(t, err)
}

func TestFlow_SubmitIssuesExactlyOnePost(t *testing.T) {
	var posts atomic.Int32
	var body []byte
	f := newFlowServer(t, &posts, &body)
	require.NoError(t, f.LoadRefs(context.Background()))

	f.Form = Form{InvestorID: 3, ProjectID: 7, IncentiveID: 2, RequestedAmount: 50000}
	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, int32(1), posts.Load())
	assert.Equal(t, StateSubmitted, f.State)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Len(t, sent, 4)
	assert.InDelta(t, 3, sent["investor_id"], 0)
	assert.InDelta(t, 7, sent["project_id"], 0)
	assert.InDelta(t, 2, sent["incentive_id"], 0)
	assert.InDelta(t, 50000, sent["requested_amount"], 0)
}

func TestFlow_ValidationBlocksSubmit(t *testing.T) {
	tests := []struct {
		name string
		form Form
	}{
		{name: "empty form", form: Form{}},
		{name: "missing incentive", form: Form{InvestorID: 3, ProjectID: 7, RequestedAmount: 100}},
		{name: "zero amount", form: Form{InvestorID: 3, ProjectID: 7, IncentiveID: 2}},
		{name: "negative amount", form: Form{InvestorID: 3, ProjectID: 7, IncentiveID: 2, RequestedAmount: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var posts atomic.Int32
			var body []byte
			f := newFlowServer(t, &posts, &body)
			require.NoError(t, f.LoadRefs(context.Background()))

			f.Form = tt.form
			err := f.Submit(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))
			assert.Zero(t, posts.Load())
			assert.Equal(t, StateReady, f.State)
		})
	}
}

func TestFlow_ResetAllowsAnotherSubmission(t *testing.T) {
	var posts atomic.Int32
	var body []byte
	f := newFlowServer(t, &posts, &body)
	require.NoError(t, f.LoadRefs(context.Background()))

	f.Form = Form{InvestorID: 3, ProjectID: 7, IncentiveID: 2, RequestedAmount: 50000}
	require.NoError(t, f.Submit(context.Background()))

	f.Reset()
	assert.Equal(t, StateReady, f.State)
	assert.Equal(t, Form{}, f.Form)
	// References survive the reset; no re-fetch is needed.
	assert.Len(t, f.Investors, 1)
}
