package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL}, StaticToken(token))
	require.NoError(t, err)
	return client
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}), "tok-abc")

	require.NoError(t, client.Get(context.Background(), "/investors", nil, nil))
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}), "")

	require.NoError(t, client.Get(context.Background(), "/investors", nil, nil))
	assert.False(t, hasAuth)
}

func TestClient_MutationsCarryRequestID(t *testing.T) {
	ids := make(map[string]string)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[r.Method] = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}), "tok")

	ctx := context.Background()
	require.NoError(t, client.Get(ctx, "/investors", nil, nil))
	require.NoError(t, client.Post(ctx, "/investors", map[string]string{"name": "x"}, nil))
	require.NoError(t, client.Put(ctx, "/investors/1", map[string]string{"name": "x"}, nil))
	require.NoError(t, client.Delete(ctx, "/incentives/1"))

	assert.Empty(t, ids[http.MethodGet])
	assert.NotEmpty(t, ids[http.MethodPost])
	assert.NotEmpty(t, ids[http.MethodPut])
	assert.NotEmpty(t, ids[http.MethodDelete])
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}), "tok")

	query := url.Values{"archived": {"true"}}
	require.NoError(t, client.Get(context.Background(), "/projects", query, nil))
	assert.Equal(t, "archived=true", gotQuery)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		want   error
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: common.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: common.ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, want: common.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, want: common.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}), "tok")

			err := client.Get(context.Background(), "/investors", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
		})
	}
}

func TestClient_New(t *testing.T) {
	_, err := New(Config{}, StaticToken(""))
	assert.Error(t, err)

	client, err := New(Config{BaseURL: "http://localhost:8080/"}, StaticToken(""))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
}

func TestGetList_NetworkError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), "tok")

	_, err := GetList[model.Investor](context.Background(), client, "/investors", nil)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"tok-xyz","user":{"name":"Ada"}}`))
	}), "")

	sess, err := Login(context.Background(), client, "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", sess.Token)
	assert.Equal(t, "Ada", sess.UserName)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), "")

	_, err := Login(context.Background(), client, "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestLogin_MissingToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"name":"Ada"}}`))
	}), "")

	_, err := Login(context.Background(), client, "ada@example.com", "secret")
	assert.Error(t, err)
}
