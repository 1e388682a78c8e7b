package api

import (
	"context"
	"fmt"
	"net/url"
)

// MetaScope provides the read-only metadata endpoints backing the
// filter and form dropdowns.
type MetaScope struct {
	client *Client
}

// Builds returns the known build names, newest first.
func (m *MetaScope) Builds(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/api/builds", m.client.baseURL)
	var builds []string
	if err := m.client.doJSON(ctx, "GET", u, "list builds", nil, &builds); err != nil {
		return nil, err
	}
	return builds, nil
}

// Targets returns the target names valid for a release. Targets are
// release-scoped, so the release is required.
func (m *MetaScope) Targets(ctx context.Context, release string) ([]string, error) {
	if release == "" {
		return nil, fmt.Errorf("list targets: release is required")
	}
	u := fmt.Sprintf("%s/api/targets/%s", m.client.baseURL, url.PathEscape(release))
	var targets []string
	if err := m.client.doJSON(ctx, "GET", u, "list targets", nil, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// Releases returns the known release numbers.
func (m *MetaScope) Releases(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/api/releases", m.client.baseURL)
	var releases []string
	if err := m.client.doJSON(ctx, "GET", u, "list releases", nil, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// Platforms returns the platform options as code/display pairs.
func (m *MetaScope) Platforms(ctx context.Context) ([]PlatformOption, error) {
	u := fmt.Sprintf("%s/api/platforms", m.client.baseURL)
	var platforms []PlatformOption
	if err := m.client.doJSON(ctx, "GET", u, "list platforms", nil, &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

// Tags returns every tag currently attached to at least one issue.
func (m *MetaScope) Tags(ctx context.Context) ([]Tag, error) {
	u := fmt.Sprintf("%s/api/tags", m.client.baseURL)
	var tags []Tag
	if err := m.client.doJSON(ctx, "GET", u, "list tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Health checks whether the server is reachable and serving.
func (m *MetaScope) Health(ctx context.Context) error {
	u := fmt.Sprintf("%s/api/health", m.client.baseURL)
	return m.client.doJSON(ctx, "GET", u, "health check", nil, nil)
}
