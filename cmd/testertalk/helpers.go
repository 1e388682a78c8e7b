package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"testertalk/internal/api"
	"testertalk/internal/config"
	"testertalk/internal/format"
	"testertalk/internal/logging"
	"testertalk/internal/session"
)

// app bundles the wired-up client stack every command needs.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	gate   *session.Gate
	logger *slog.Logger
}

// loadApp reads the config, initializes logging, opens the persistent
// session state and builds the API client. Flags override config
// values.
func loadApp() (*app, error) {
	path := rootFlags.config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.LogFormat = rootFlags.logFormat
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Init(level, cfg.LogFormat)

	server := rootFlags.server
	if server == "" {
		server = cfg.ServerURL
	}
	if server == "" {
		return nil, fmt.Errorf("no server configured: pass --server or set server_url in %s", path)
	}

	stateDir, err := cfg.ResolveStateDir()
	if err != nil {
		return nil, err
	}
	store := session.NewStore(stateDir)
	jar, err := session.OpenJar(store.CookiePath(), logging.New("session"))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}

	client, err := api.New(server,
		api.WithCookieJar(jar),
		api.WithTimeout(timeout),
		api.WithLogger(logging.New("api")),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		gate:   session.NewGate(client, store, logging.New("session")),
		logger: logging.New("cli"),
	}, nil
}

// tableMode picks the table rendering mode from the --markdown flag.
func tableMode() format.Mode {
	if rootFlags.markdown {
		return format.Markdown
	}
	return format.ASCII
}

// issueTable renders a list of issues as the standard listing table.
func issueTable(issues []api.Issue) string {
	tb := format.NewTable(tableMode())
	tb.Header("ID", "Severity", "Status", "Title", "Release", "Platform", "Score", "Age")
	now := time.Now()
	for _, issue := range issues {
		title := issue.TestcaseTitle
		if issue.HasVerifiedSolution {
			title = "✓ " + title
		}
		tb.Row(
			issue.ID,
			issue.Severity,
			issue.Status,
			title,
			issue.Release,
			issue.PlatformDisplay,
			format.Score(issue.Score),
			format.TimeAgo(issue.CreatedAt.Time(), now),
		)
	}
	tb.Columns(
		format.ColumnConfig{Number: 4, MaxWidth: 60},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
	)
	return tb.String()
}

// parseVoteDirection maps the CLI argument to a vote direction.
func parseVoteDirection(s string) (api.VoteDirection, error) {
	switch strings.ToLower(s) {
	case "up", "upvote", "+":
		return api.Upvote, nil
	case "down", "downvote", "-":
		return api.Downvote, nil
	}
	return "", fmt.Errorf("vote direction must be up or down, got %q", s)
}
