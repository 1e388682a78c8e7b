package browse

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"testertalk/internal/api"
	"testertalk/internal/session"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	client, err := api.New("http://127.0.0.1:1")
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gate := session.NewGate(client, session.NewStore(t.TempDir()), logger)
	return New(client, gate, 20, 0, logger)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in   string
		id   int
		ok   bool
	}{
		{"/issues/42", 42, true},
		{"/issues/1", 1, true},
		{"42", 42, true},
		{"/issues/", 0, false},
		{"/issues/abc", 0, false},
		{"/issues/42/comments", 0, false},
		{"/users/42", 0, false},
		{"0", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		id, ok := ParseRoute(tc.in)
		if id != tc.id || ok != tc.ok {
			t.Errorf("ParseRoute(%q) = (%d, %v), want (%d, %v)", tc.in, id, ok, tc.id, tc.ok)
		}
	}
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}
	if got := cycle(opts, ""); got != "a" {
		t.Errorf(`cycle from "" = %q, want "a"`, got)
	}
	if got := cycle(opts, "a"); got != "b" {
		t.Errorf(`cycle from "a" = %q, want "b"`, got)
	}
	// Past the last option the filter clears.
	if got := cycle(opts, "c"); got != "" {
		t.Errorf(`cycle from "c" = %q, want ""`, got)
	}
	if got := cycle(opts, "unknown"); got != "" {
		t.Errorf(`cycle from unknown = %q, want ""`, got)
	}
}

func TestUpdate_StaleSearchResultDropped(t *testing.T) {
	m := testModel(t)
	m.gen = 5
	m.issues = []api.Issue{{ID: 1, TestcaseTitle: "current"}}
	m.total = 1

	updated, _ := m.Update(searchResultMsg{
		gen:  4,
		resp: &api.SearchResponse{Issues: []api.Issue{{ID: 9, TestcaseTitle: "stale"}}, Total: 1},
	})
	got := updated.(*Model)
	if len(got.issues) != 1 || got.issues[0].ID != 1 {
		t.Errorf("stale response overwrote issues: %+v", got.issues)
	}

	updated, _ = got.Update(searchResultMsg{
		gen:  5,
		resp: &api.SearchResponse{Issues: []api.Issue{{ID: 2, TestcaseTitle: "fresh"}}, Total: 1},
	})
	got = updated.(*Model)
	if len(got.issues) != 1 || got.issues[0].ID != 2 {
		t.Errorf("fresh response not applied: %+v", got.issues)
	}
}

func TestUpdate_StaleDebounceFireIgnored(t *testing.T) {
	m := testModel(t)
	m.gen = 3

	_, cmd := m.Update(debounceFireMsg{gen: 2})
	if cmd != nil {
		t.Error("stale debounce fire should not trigger a search")
	}

	_, cmd = m.Update(debounceFireMsg{gen: 3})
	if cmd == nil {
		t.Error("current debounce fire should trigger a search")
	}
}

func TestUpdate_FilterKeysBumpGeneration(t *testing.T) {
	m := testModel(t)
	before := m.gen

	updated, cmd := m.Update(keyMsg("s"))
	m = updated.(*Model)
	if m.gen != before+1 {
		t.Errorf("gen = %d, want %d", m.gen, before+1)
	}
	if cmd == nil {
		t.Error("expected a debounce command")
	}
	if got := m.filters.Get("status"); got != "open" {
		t.Errorf("status filter = %q, want open", got)
	}
}

func TestUpdate_VerifyGuardOnResolvedIssue(t *testing.T) {
	m := testModel(t)
	m.view = ViewDetail
	m.focus = FocusDetail
	m.current = &api.Issue{ID: 5, Status: api.StatusResolved}
	m.comments = []api.Comment{
		{ID: 1, IsVerifiedSolution: false},
		{ID: 2, IsVerifiedSolution: true},
	}
	m.commentCursor = 0

	updated, _ := m.Update(keyMsg("V"))
	got := updated.(*Model)
	if got.notice != "issue already has a verified solution" {
		t.Errorf("notice = %q", got.notice)
	}

	// An open issue's comments may be verified.
	got.notice = ""
	got.current = &api.Issue{ID: 5, Status: api.StatusOpen}
	updated, cmd := got.Update(keyMsg("V"))
	got = updated.(*Model)
	if got.notice != "" {
		t.Errorf("unexpected notice: %q", got.notice)
	}
	if cmd == nil {
		t.Error("expected a mutation command on an open issue")
	}
}

func TestUpdate_MoveToCCRGuardOnResolvedIssue(t *testing.T) {
	m := testModel(t)
	m.view = ViewDetail
	m.focus = FocusDetail
	m.current = &api.Issue{ID: 5, Status: api.StatusResolved}

	updated, _ := m.Update(keyMsg("x"))
	got := updated.(*Model)
	if got.notice != "resolved issues cannot be moved to CCR" {
		t.Errorf("notice = %q", got.notice)
	}
	if got.focus == FocusPrompt {
		t.Error("prompt opened despite the resolved guard")
	}
}

func TestUpdate_MoveToCCROpensPromptOnOpenIssue(t *testing.T) {
	m := testModel(t)
	m.view = ViewDetail
	m.focus = FocusDetail
	m.current = &api.Issue{ID: 5, Status: api.StatusOpen}

	updated, _ := m.Update(keyMsg("x"))
	got := updated.(*Model)
	if got.focus != FocusPrompt || got.prompt != promptCCR {
		t.Errorf("expected ccr prompt, got focus=%v prompt=%v", got.focus, got.prompt)
	}
}

func TestUpdate_RemovePathPrompt(t *testing.T) {
	m := testModel(t)
	m.view = ViewDetail
	m.focus = FocusDetail
	m.current = &api.Issue{ID: 5, Status: api.StatusOpen}

	updated, _ := m.Update(keyMsg("X"))
	got := updated.(*Model)
	if got.notice != "issue has no extra testcase paths" {
		t.Errorf("notice = %q", got.notice)
	}
	if got.focus == FocusPrompt {
		t.Error("prompt opened for an issue without extra paths")
	}

	got.notice = ""
	got.current.AdditionalTestcasePaths = []api.TestcasePath{{ID: 11}}
	updated, _ = got.Update(keyMsg("X"))
	got = updated.(*Model)
	if got.focus != FocusPrompt || got.prompt != promptRemovePath {
		t.Errorf("expected remove-path prompt, got focus=%v prompt=%v", got.focus, got.prompt)
	}
}

func TestUpdate_BackReturnsToList(t *testing.T) {
	m := testModel(t)
	m.view = ViewDetail
	m.focus = FocusDetail
	m.current = &api.Issue{ID: 5}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(*Model)
	if got.view != ViewList || got.current != nil {
		t.Errorf("esc did not return to list: view=%v current=%+v", got.view, got.current)
	}
}
