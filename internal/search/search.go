// Package search drives the filtered issue search: it holds the
// current filter values and debounces the requests they trigger, so a
// burst of keystrokes becomes one server call and slow responses never
// overwrite newer results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"testertalk/internal/api"
	"testertalk/internal/pathinfo"
)

// Field names accepted by FilterState.Set.
const (
	FieldSearch   = "search"
	FieldStatus   = "status"
	FieldSeverity = "severity"
	FieldBuild    = "build"
	FieldPlatform = "platform"
	FieldRelease  = "release"
	FieldTarget   = "target"
)

// FilterState holds the current filter values. Empty values mean
// "no filter" and are left out of the search payload entirely.
type FilterState struct {
	mu     sync.Mutex
	values map[string]string
	size   int
}

// NewFilterState returns an empty filter state. size caps the number
// of results requested per search; zero means the server default.
func NewFilterState(size int) *FilterState {
	return &FilterState{values: map[string]string{}, size: size}
}

// Set updates one filter field. Target names are only valid within
// their release, so changing the release drops a selected target
// unless it is also a target of the new release.
func (f *FilterState) Set(field, value string) error {
	switch field {
	case FieldSearch, FieldStatus, FieldSeverity, FieldBuild, FieldPlatform, FieldRelease, FieldTarget:
	default:
		return fmt.Errorf("unknown filter field %q", field)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if field == FieldRelease && f.values[FieldRelease] != value {
		if t := f.values[FieldTarget]; t != "" && !validTarget(value, t) {
			delete(f.values, FieldTarget)
		}
	}
	if value == "" {
		delete(f.values, field)
	} else {
		f.values[field] = value
	}
	return nil
}

func validTarget(release, target string) bool {
	for _, t := range pathinfo.TargetsForRelease(release) {
		if t == target {
			return true
		}
	}
	return false
}

// Get returns the current value of one filter field.
func (f *FilterState) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Reset clears every filter.
func (f *FilterState) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[string]string{}
}

// Active reports whether any filter is set.
func (f *FilterState) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.values) > 0
}

// Payload builds the search request for the current filters.
func (f *FilterState) Payload() api.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return api.SearchRequest{
		Search:   f.values[FieldSearch],
		Status:   f.values[FieldStatus],
		Severity: f.values[FieldSeverity],
		Build:    f.values[FieldBuild],
		Platform: f.values[FieldPlatform],
		Release:  f.values[FieldRelease],
		Target:   f.values[FieldTarget],
		Size:     f.size,
	}
}

// Debounce is how long to wait after the last filter change before
// searching.
const Debounce = 300 * time.Millisecond

// Result is delivered to the controller's callback when a search
// finishes. Gen identifies which filter state produced it.
type Result struct {
	Gen      uint64
	Response *api.SearchResponse
	Err      error
}

// Controller debounces filter changes into search calls. Every change
// bumps a generation counter; a response whose generation is no longer
// current is dropped, so out-of-order responses cannot clobber the
// results of newer filters.
type Controller struct {
	issues   *api.IssueScope
	state    *FilterState
	onResult func(Result)
	logger   *slog.Logger
	delay    time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewController returns a controller that searches through issues with
// the filters in state, delivering results to onResult. The callback
// runs on the searching goroutine.
func NewController(issues *api.IssueScope, state *FilterState, onResult func(Result), logger *slog.Logger) *Controller {
	return &Controller{
		issues:   issues,
		state:    state,
		onResult: onResult,
		logger:   logger,
		delay:    Debounce,
	}
}

// Update changes one filter field and schedules a debounced search.
func (c *Controller) Update(ctx context.Context, field, value string) error {
	if err := c.state.Set(field, value); err != nil {
		return err
	}
	c.schedule(ctx)
	return nil
}

// Refresh schedules a debounced search with the current filters,
// without changing them.
func (c *Controller) Refresh(ctx context.Context) {
	c.schedule(ctx)
}

// SearchNow runs a search immediately, bypassing the debounce, and
// returns the response. Any pending debounced search is cancelled. The
// result is also delivered to the callback unless a newer change has
// superseded it by the time the response arrives.
func (c *Controller) SearchNow(ctx context.Context) (*api.SearchResponse, error) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	resp, err := c.issues.Search(ctx, c.state.Payload())
	c.deliver(gen, resp, err)
	return resp, err
}

// Stop cancels any pending debounced search.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Controller) schedule(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.delay, func() {
		resp, err := c.issues.Search(ctx, c.state.Payload())
		c.deliver(gen, resp, err)
	})
}

// deliver passes the result to the callback unless its generation has
// been superseded.
func (c *Controller) deliver(gen uint64, resp *api.SearchResponse, err error) {
	c.mu.Lock()
	stale := gen != c.gen
	c.mu.Unlock()
	if stale {
		c.logger.Debug("dropping stale search response", "gen", gen)
		return
	}
	if c.onResult != nil {
		c.onResult(Result{Gen: gen, Response: resp, Err: err})
	}
}
