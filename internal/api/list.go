package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// listEnvelope matches the wrapper some endpoints put around their
// payload. The data field is kept raw so its shape can be inspected.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// UnmarshalList normalizes a list response body. Endpoints disagree on
// shape: some return a bare JSON array, others wrap it in an envelope
// with a data field. The envelope's data is preferred when present,
// the raw body is the fallback, and anything that is not array-shaped
// decodes to an empty slice.
func UnmarshalList[T any](body []byte) []T {
	if len(body) == 0 {
		return []T{}
	}

	candidate := json.RawMessage(body)

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		candidate = env.Data
	}

	var items []T
	if err := json.Unmarshal(candidate, &items); err != nil || items == nil {
		return []T{}
	}

	return items
}

// GetList fetches a collection endpoint and normalizes its response.
func GetList[T any](ctx context.Context, c Requester, path string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return UnmarshalList[T](raw), nil
}
