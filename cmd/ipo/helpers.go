package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/TerminusTerminal/invest-desk/internal/api"
	"github.com/TerminusTerminal/invest-desk/internal/common"
	"github.com/TerminusTerminal/invest-desk/internal/config"
	"github.com/TerminusTerminal/invest-desk/internal/report"
	"github.com/TerminusTerminal/invest-desk/internal/session"
)

// appContext bundles the dependencies every command needs: the shared
// API client, the live session, and the store that persists it.
type appContext struct {
	client  api.Requester
	session *session.Session
	store   *session.Store
}

func loadConfig() config.Config {
	cfg := config.Default()

	if url := viper.GetString("api.url"); url != "" {
		cfg.BaseURL = url
	}
	if timeout := viper.GetDuration("api.timeout"); timeout != 0 {
		cfg.Timeout = timeout
	}
	if path := viper.GetString("session.path"); path != "" {
		cfg.SessionPath = config.ExpandPath(path)
	}
	if provider := viper.GetString("summarizer.provider"); provider != "" {
		cfg.Summarizer.Provider = provider
	}
	if endpoint := viper.GetString("summarizer.endpoint"); endpoint != "" {
		cfg.Summarizer.Endpoint = endpoint
	}
	if key := viper.GetString("summarizer.api_key"); key != "" {
		cfg.Summarizer.APIKey = key
	}
	cfg.LogLevel = viper.GetString("logging.level")
	cfg.LogFormat = viper.GetString("logging.format")

	return cfg
}

// initApp builds the API client over the stored session. The session
// may be empty; commands that need a credential call requireSession.
func initApp() (*appContext, error) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	path := cfg.SessionPath
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
	}

	store := session.NewStore(path)
	sess, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, &sess)
	if err != nil {
		return nil, err
	}

	return &appContext{client: client, session: &sess, store: store}, nil
}

// requireSession guards commands that talk to protected endpoints.
func (a *appContext) requireSession() error {
	if !a.session.Active() {
		return common.NewUserError("You are not signed in. Run 'ipo login' first.", common.ErrUnauthorized)
	}
	return nil
}

func newSummarizer(client api.Requester) (report.Summarizer, error) {
	cfg := loadConfig()
	return report.NewSummarizer(report.SummarizerConfig{
		Provider: cfg.Summarizer.Provider,
		Endpoint: cfg.Summarizer.Endpoint,
		APIKey:   cfg.Summarizer.APIKey,
	}, client)
}

// exportDir is where CSV exports land. Defaults to the working directory.
func exportDir() string {
	return config.ExpandPath(viper.GetString("export.dir"))
}

// atoi and atof treat unparseable input as zero; module validation
// turns a zero into the user-facing required-field message.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}
