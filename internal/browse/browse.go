// Package browse is the interactive terminal browser for Tester Talk:
// a filterable issue list with a detail view for reading and acting on
// a single issue.
package browse

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"testertalk/internal/api"
	"testertalk/internal/pathinfo"
	"testertalk/internal/search"
	"testertalk/internal/session"
)

// View identifies which screen is active.
type View int

const (
	// ViewList shows the filterable issue list.
	ViewList View = iota
	// ViewDetail shows one issue with its comments.
	ViewDetail
)

// Focus identifies where keystrokes go.
type Focus int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList Focus = iota
	// FocusFilter means keystrokes go to the search input.
	FocusFilter
	// FocusDetail means navigation keys scroll the detail viewport.
	FocusDetail
	// FocusPrompt means keystrokes go to the one-line prompt used for
	// comments, CCR numbers and extra paths.
	FocusPrompt
)

// promptKind says what the prompt input is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptComment
	promptCCR
	promptAddPath
	promptRemovePath
)

// noticeFadeDelay is how long a status notice stays visible.
const noticeFadeDelay = 4 * time.Second

// debounceFireMsg is sent when the search debounce interval elapses.
// The generation identifies which filter change armed it; a fire whose
// generation is stale is ignored.
type debounceFireMsg struct {
	gen uint64
}

// searchResultMsg delivers a finished search. Stale generations are
// dropped so a slow response never overwrites newer results.
type searchResultMsg struct {
	gen  uint64
	resp *api.SearchResponse
	err  error
}

// issueLoadedMsg delivers the issue and its comments for the detail
// view, fetched concurrently.
type issueLoadedMsg struct {
	issue    *api.Issue
	comments []api.Comment
	err      error
}

// mutationResultMsg is sent when an asynchronous mutation completes.
// On success the issue and list are re-fetched from the server rather
// than patched locally.
type mutationResultMsg struct {
	notice string
	err    error
}

// noticeFadeMsg clears the status notice after a delay.
type noticeFadeMsg struct{}

// Model is the bubbletea model for the issue browser.
type Model struct {
	client  *api.Client
	gate    *session.Gate
	filters *search.FilterState
	keys    KeyMap
	logger  *slog.Logger

	view  View
	focus Focus

	filterInput textinput.Model
	promptInput textinput.Model
	prompt      promptKind

	gen     uint64
	issues  []api.Issue
	total   int
	cursor  int
	loading bool

	current       *api.Issue
	comments      []api.Comment
	commentCursor int
	detail        viewport.Model

	openID int // issue to open immediately, from a route argument

	notice   string
	isError  bool
	width    int
	height   int
	quitting bool
}

// New returns a browser model. If openID is non-zero the browser
// starts on that issue's detail view.
func New(client *api.Client, gate *session.Gate, pageSize, openID int, logger *slog.Logger) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "search title, path, description..."
	filterInput.CharLimit = 200

	promptInput := textinput.New()
	promptInput.CharLimit = 500

	return &Model{
		client:      client,
		gate:        gate,
		filters:     search.NewFilterState(pageSize),
		keys:        DefaultKeyMap,
		logger:      logger,
		filterInput: filterInput,
		promptInput: promptInput,
		detail:      viewport.New(0, 0),
		openID:      openID,
	}
}

// Init starts the first search, and the detail load when a route
// argument was given.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	cmds := []tea.Cmd{m.searchCmd(m.gen)}
	if m.openID > 0 {
		m.view = ViewDetail
		m.focus = FocusDetail
		cmds = append(cmds, m.loadIssueCmd(m.openID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 6
		return m, nil

	case debounceFireMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = true
		return m, m.searchCmd(msg.gen)

	case searchResultMsg:
		if msg.gen != m.gen {
			m.logger.Debug("dropping stale search response", "gen", msg.gen)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.issues = msg.resp.Issues
		m.total = msg.resp.Total
		if m.cursor >= len(m.issues) {
			m.cursor = max(0, len(m.issues)-1)
		}
		return m, nil

	case issueLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.view = ViewList
			m.focus = FocusList
			return m, m.fail(msg.err)
		}
		m.current = msg.issue
		m.comments = msg.comments
		if m.commentCursor >= len(m.comments) {
			m.commentCursor = max(0, len(m.comments)-1)
		}
		m.detail.SetContent(m.renderDetailContent())
		return m, nil

	case mutationResultMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		// Server state changed: re-fetch rather than patch locally.
		m.notice = msg.notice
		if m.notice == "" {
			m.notice = "done"
		}
		m.isError = false
		cmds := []tea.Cmd{m.fadeCmd()}
		if m.current != nil {
			cmds = append(cmds, m.loadIssueCmd(m.current.ID))
		}
		m.gen++
		cmds = append(cmds, m.searchCmd(m.gen))
		return m, tea.Batch(cmds...)

	case noticeFadeMsg:
		m.notice = ""
		m.isError = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The prompt and filter inputs swallow everything except their
	// control keys.
	switch m.focus {
	case FocusPrompt:
		return m.handlePromptKey(msg)
	case FocusFilter:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.view == ViewDetail {
			if m.commentCursor > 0 {
				m.commentCursor--
				m.detail.SetContent(m.renderDetailContent())
			}
		} else if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.view == ViewDetail {
			if m.commentCursor < len(m.comments)-1 {
				m.commentCursor++
				m.detail.SetContent(m.renderDetailContent())
			}
		} else if m.cursor < len(m.issues)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		if m.view == ViewDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.view == ViewList && m.cursor < len(m.issues) {
			m.view = ViewDetail
			m.focus = FocusDetail
			m.commentCursor = 0
			m.loading = true
			return m, m.loadIssueCmd(m.issues[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.view == ViewDetail {
			m.view = ViewList
			m.focus = FocusList
			m.current = nil
			m.comments = nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.view == ViewDetail && m.current != nil {
			m.loading = true
			return m, m.loadIssueCmd(m.current.ID)
		}
		m.gen++
		m.loading = true
		return m, m.searchCmd(m.gen)
	}

	if m.view == ViewList {
		return m.handleListKey(msg)
	}
	return m.handleDetailKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FilterActivate):
		m.focus = FocusFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.FilterClear):
		m.filters.Reset()
		m.filterInput.SetValue("")
		return m, m.scheduleSearch()

	case key.Matches(msg, m.keys.CycleStatus):
		next := cycle(statusOptions, m.filters.Get(search.FieldStatus))
		m.filters.Set(search.FieldStatus, next)
		return m, m.scheduleSearch()

	case key.Matches(msg, m.keys.CycleSeverity):
		next := cycle(severityOptions, m.filters.Get(search.FieldSeverity))
		m.filters.Set(search.FieldSeverity, next)
		return m, m.scheduleSearch()

	case key.Matches(msg, m.keys.CycleRelease):
		next := cycle(releaseOptions(), m.filters.Get(search.FieldRelease))
		// Changing the release also clears the target filter.
		m.filters.Set(search.FieldRelease, next)
		return m, m.scheduleSearch()
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	issue := m.current

	switch {
	case key.Matches(msg, m.keys.UpvoteIssue):
		return m, m.mutateCmd("", func(ctx context.Context, _ *api.User) error {
			_, err := m.client.Issues().Vote(ctx, issue.ID, api.Upvote)
			return err
		})

	case key.Matches(msg, m.keys.DownvoteIssue):
		return m, m.mutateCmd("", func(ctx context.Context, _ *api.User) error {
			_, err := m.client.Issues().Vote(ctx, issue.ID, api.Downvote)
			return err
		})

	case key.Matches(msg, m.keys.Comment):
		return m.openPrompt(promptComment, "comment: ")

	case key.Matches(msg, m.keys.Verify):
		if m.commentCursor >= len(m.comments) {
			return m, nil
		}
		comment := m.comments[m.commentCursor]
		// A resolved issue already has its verified solution.
		if issue.Status == api.StatusResolved {
			return m, m.notify("issue already has a verified solution")
		}
		return m, m.mutateCmd("", func(ctx context.Context, _ *api.User) error {
			_, err := m.client.Comments().Verify(ctx, comment.ID)
			return err
		})

	case key.Matches(msg, m.keys.MoveToCCR):
		if issue.Status == api.StatusResolved {
			return m, m.notify("resolved issues cannot be moved to CCR")
		}
		return m.openPrompt(promptCCR, "ccr number: ")

	case key.Matches(msg, m.keys.AddPath):
		return m.openPrompt(promptAddPath, "testcase path: ")

	case key.Matches(msg, m.keys.RemovePath):
		if len(issue.AdditionalTestcasePaths) == 0 {
			return m, m.notify("issue has no extra testcase paths")
		}
		return m.openPrompt(promptRemovePath, "path id to remove: ")
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.focus = FocusList
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filters.Set(search.FieldSearch, m.filterInput.Value())
	return m, tea.Batch(cmd, m.scheduleSearch())
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := m.promptInput.Value()
		kind := m.prompt
		m.closePrompt()
		return m, m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(kind promptKind, prompt string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.focus = FocusPrompt
	m.promptInput.Prompt = prompt
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptInput.Blur()
	if m.view == ViewDetail {
		m.focus = FocusDetail
	} else {
		m.focus = FocusList
	}
}

func (m *Model) submitPrompt(kind promptKind, value string) tea.Cmd {
	if value == "" || m.current == nil {
		return nil
	}
	issue := m.current
	switch kind {
	case promptComment:
		return m.mutateCmd("", func(ctx context.Context, _ *api.User) error {
			_, err := m.client.Issues().AddComment(ctx, issue.ID, value)
			return err
		})
	case promptCCR:
		return m.mutateCmd("", func(ctx context.Context, _ *api.User) error {
			_, err := m.client.Issues().MoveToCCR(ctx, issue.ID, value)
			return err
		})
	case promptAddPath:
		notice := "path added"
		if bucket, ok := pathinfo.ExtractBucketName(value); ok {
			notice = "path added, bucket tag " + bucket
		}
		return m.mutateCmd(notice, func(ctx context.Context, user *api.User) error {
			_, err := m.client.Issues().AddTestcasePath(ctx, issue.ID, value, user.Username)
			return err
		})
	case promptRemovePath:
		pathID, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || pathID <= 0 {
			return m.notify("path id must be a number")
		}
		return m.mutateCmd("path removed", func(ctx context.Context, _ *api.User) error {
			return m.client.Issues().RemoveTestcasePath(ctx, issue.ID, pathID)
		})
	}
	return nil
}

// scheduleSearch bumps the generation and arms the debounce timer.
func (m *Model) scheduleSearch() tea.Cmd {
	m.gen++
	gen := m.gen
	return tea.Tick(search.Debounce, func(time.Time) tea.Msg {
		return debounceFireMsg{gen: gen}
	})
}

func (m *Model) searchCmd(gen uint64) tea.Cmd {
	payload := m.filters.Payload()
	client := m.client
	return func() tea.Msg {
		resp, err := client.Issues().Search(context.Background(), payload)
		return searchResultMsg{gen: gen, resp: resp, err: err}
	}
}

// loadIssueCmd fetches the issue and its comments concurrently.
func (m *Model) loadIssueCmd(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())
		var issue *api.Issue
		var comments []api.Comment
		g.Go(func() error {
			var err error
			issue, err = client.Issues().Get(ctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			comments, err = client.Issues().Comments(ctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			return issueLoadedMsg{err: err}
		}
		return issueLoadedMsg{issue: issue, comments: comments}
	}
}

// mutateCmd runs a mutation behind the auth gate, passing the signed-in
// user to the operation.
func (m *Model) mutateCmd(notice string, op func(ctx context.Context, user *api.User) error) tea.Cmd {
	gate := m.gate
	return func() tea.Msg {
		ctx := context.Background()
		user, err := gate.Require(ctx)
		if err != nil {
			return mutationResultMsg{err: err}
		}
		return mutationResultMsg{notice: notice, err: op(ctx, user)}
	}
}

// notify shows a transient notice in the status bar.
func (m *Model) notify(text string) tea.Cmd {
	m.notice = text
	m.isError = false
	return m.fadeCmd()
}

// fail shows an error notice, preferring the server's own message.
func (m *Model) fail(err error) tea.Cmd {
	if msg := api.ServerMessage(err); msg != "" {
		m.notice = msg
	} else {
		m.notice = err.Error()
	}
	m.isError = true
	return m.fadeCmd()
}

func (m *Model) fadeCmd() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// cycle returns the option after current, wrapping back to "" (no
// filter) past the last one.
func cycle(options []string, current string) string {
	if current == "" {
		if len(options) == 0 {
			return ""
		}
		return options[0]
	}
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	return ""
}
