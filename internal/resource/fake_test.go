package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// fakeAPI implements api.Requester against an in-memory handler so
// module behavior can be tested without a network.
type fakeAPI struct {
	// handle serves a request; returning an empty body with nil error
	// is a 200 with no payload.
	handle func(method, path string, body []byte) (string, error)
	calls  []string
	bodies map[string][]byte
}

func newFakeAPI(handle func(method, path string, body []byte) (string, error)) *fakeAPI {
	return &fakeAPI{handle: handle, bodies: make(map[string][]byte)}
}

// respondWith builds a handler that always serves the same body.
func respondWith(body string) func(string, string, []byte) (string, error) {
	return func(_, _ string, _ []byte) (string, error) {
		return body, nil
	}
}

func (f *fakeAPI) record(method, path string, body any) ([]byte, error) {
	key := method + " " + path
	f.calls = append(f.calls, key)

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
		f.bodies[key] = raw
	}
	return raw, nil
}

func (f *fakeAPI) dispatch(method, path string, body any, out any) error {
	raw, err := f.record(method, path, body)
	if err != nil {
		return err
	}

	resp, err := f.handle(method, path, raw)
	if err != nil {
		return err
	}
	if out == nil || resp == "" {
		return nil
	}

	if rawOut, ok := out.(*json.RawMessage); ok {
		*rawOut = json.RawMessage(resp)
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return f.dispatch("GET", path, nil, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.dispatch("POST", path, body, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, body, out any) error {
	return f.dispatch("PUT", path, body, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string) error {
	return f.dispatch("DELETE", path, nil, nil)
}

var errBackendDown = fmt.Errorf("backend unreachable")

// failingAPI rejects every request.
func failingAPI() *fakeAPI {
	return newFakeAPI(func(_, _ string, _ []byte) (string, error) {
		return "", errBackendDown
	})
}
