package main

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSpinner_AnimatesWhileBlocked(t *testing.T) {
	var buf bytes.Buffer
	err := withSpinner(&buf, "loading references", func() error {
		time.Sleep(300 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	// The spinner must have drawn at least once while fn was blocked.
	assert.Contains(t, buf.String(), "loading references")
}

func TestWithSpinner_ReturnsFnError(t *testing.T) {
	wantErr := errors.New("references unavailable")
	err := withSpinner(io.Discard, "loading references", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
