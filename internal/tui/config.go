package tui

import (
	"fmt"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/report"
	"github.com/TerminusTerminal/invest-desk/internal/session"
)

// Config holds the dependencies for the interactive browser.
type Config struct {
	// Client is the backend API client shared by every module.
	Client api.Requester

	// Session is the live credential. The API client reads it on every
	// request, so a login inside the browser takes effect immediately.
	Session *session.Session

	// Store persists the session across restarts. Optional; when nil,
	// logins last only for the process lifetime.
	Store *session.Store

	// Summarizer powers the report screen's per-card AI summaries.
	Summarizer report.Summarizer

	// ExportDir receives CSV exports. Defaults to the working directory.
	ExportDir string

	// Width and Height set the initial terminal size, mainly for tests.
	Width  int
	Height int
}

// Validate ensures all required dependencies are present.
func (c *Config) Validate() error {
	if c.Client == nil {
		return fmt.Errorf("api client is required")
	}
	if c.Session == nil {
		return fmt.Errorf("session is required")
	}
	if c.Summarizer == nil {
		return fmt.Errorf("summarizer is required")
	}
	return nil
}
