package api

import (
	"context"
	"net/url"
)

// Requester is the verb-scoped JSON surface every module depends on.
// Tests substitute a fake; production code uses *Client.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}
