package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"testertalk/internal/api"
	"testertalk/internal/format"
	"testertalk/internal/pathinfo"
	"testertalk/internal/search"
)

// Filter cycle orders. "" (no filter) is reached by wrapping past the
// last option.
var statusOptions = []string{
	string(api.StatusOpen),
	string(api.StatusInProgress),
	string(api.StatusResolved),
	string(api.StatusClosed),
	string(api.StatusCCR),
}

var severityOptions = []string{
	string(api.SeverityCritical),
	string(api.SeverityHigh),
	string(api.SeverityMedium),
	string(api.SeverityLow),
}

func releaseOptions() []string {
	return pathinfo.Releases()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	severityStyles = map[api.Severity]lipgloss.Style{
		api.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		api.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		api.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		api.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

// View renders the active screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.view == ViewDetail {
		b.WriteString(m.renderDetailHeader())
		b.WriteString(m.detail.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderListHeader())
		b.WriteString(m.renderList())
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderListHeader() string {
	var filters []string
	for _, f := range []struct{ field, label string }{
		{search.FieldStatus, "status"},
		{search.FieldSeverity, "severity"},
		{search.FieldRelease, "release"},
		{search.FieldTarget, "target"},
	} {
		if v := m.filters.Get(f.field); v != "" {
			filters = append(filters, fmt.Sprintf("%s=%s", f.label, v))
		}
	}

	line := titleStyle.Render("Tester Talk") + dimStyle.Render(fmt.Sprintf("  %d issues", m.total))
	if len(filters) > 0 {
		line += dimStyle.Render("  [" + strings.Join(filters, " ") + "]")
	}
	if m.loading {
		line += dimStyle.Render("  ...")
	}

	searchLine := m.filterInput.View()
	if m.focus != FocusFilter && m.filterInput.Value() == "" {
		searchLine = dimStyle.Render("press / to search")
	}
	return line + "\n" + searchLine + "\n\n"
}

func (m *Model) renderList() string {
	if len(m.issues) == 0 {
		if m.loading {
			return dimStyle.Render("loading...") + "\n"
		}
		return dimStyle.Render("no issues match the current filters") + "\n"
	}

	width := m.width
	if width <= 0 {
		width = 100
	}
	var b strings.Builder
	for i, issue := range m.issues {
		line := m.renderRow(issue, width)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow lays out one issue: id, severity, status, title, then the
// platform/release tail.
func (m *Model) renderRow(issue api.Issue, width int) string {
	sev := severityStyles[issue.Severity].Render(fmt.Sprintf("%-8s", issue.Severity))
	status := fmt.Sprintf("%-11s", issue.Status)
	tail := fmt.Sprintf(" %s/%s %s %s",
		issue.Release, issue.PlatformDisplay,
		format.Score(issue.Score),
		format.TimeAgo(issue.CreatedAt.Time(), time.Now()))

	titleWidth := width - 6 - 9 - 12 - len(tail)
	title := format.Truncate(issue.TestcaseTitle, max(titleWidth, 10))
	if issue.HasVerifiedSolution {
		title = verifiedStyle.Render("✓ ") + title
	}
	return fmt.Sprintf("#%-5d %s %s %s%s", issue.ID, sev, status, title, dimStyle.Render(tail))
}

func (m *Model) renderDetailHeader() string {
	if m.current == nil {
		return titleStyle.Render("loading...") + "\n\n"
	}
	issue := m.current
	line := titleStyle.Render(fmt.Sprintf("#%d %s", issue.ID, issue.TestcaseTitle))
	meta := fmt.Sprintf("%s · %s · %s · reported by %s %s",
		issue.Severity, issue.Status, issue.PlatformDisplay,
		issue.ReporterName, format.TimeAgo(issue.CreatedAt.Time(), time.Now()))
	return line + "\n" + dimStyle.Render(meta) + "\n\n"
}

// renderDetailContent builds the scrollable body: issue fields, extra
// paths, then the comment thread with the selection cursor.
func (m *Model) renderDetailContent() string {
	if m.current == nil {
		return ""
	}
	issue := m.current
	var b strings.Builder

	writeField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(dimStyle.Render(label+": ") + value + "\n")
	}
	writeField("path", issue.TestcasePath)
	writeField("release", issue.Release)
	writeField("build", issue.Build)
	writeField("target", issue.Target)
	writeField("test case ids", issue.TestCaseIDs)
	writeField("reviewer", issue.ReviewerName)
	writeField("ccr", issue.CCRNumber)
	writeField("tags", strings.Join(issue.Tags, ", "))
	writeField("score", format.Score(issue.Score))

	b.WriteString("\n" + issue.Description + "\n")
	if issue.AdditionalComments != "" {
		b.WriteString("\n" + dimStyle.Render(issue.AdditionalComments) + "\n")
	}

	if len(issue.AdditionalTestcasePaths) > 0 {
		b.WriteString("\n" + titleStyle.Render("also seen at") + "\n")
		for _, tp := range issue.AdditionalTestcasePaths {
			b.WriteString(fmt.Sprintf("  %s (%s/%s)\n", tp.Path, tp.Release, tp.PlatformDisplay))
		}
	}

	if len(issue.Attachments) > 0 {
		b.WriteString("\n" + titleStyle.Render("attachments") + "\n")
		for _, at := range issue.Attachments {
			b.WriteString(fmt.Sprintf("  %s (%s)\n", at.Filename, format.FileSize(at.FileSize)))
		}
	}

	b.WriteString("\n" + titleStyle.Render(fmt.Sprintf("comments (%d)", len(m.comments))) + "\n")
	for i, c := range m.comments {
		cursor := "  "
		if i == m.commentCursor {
			cursor = "> "
		}
		head := fmt.Sprintf("%s%s · %s · %s", cursor, c.CommenterName,
			format.Score(c.Score), format.TimeAgo(c.CreatedAt.Time(), time.Now()))
		if c.IsVerifiedSolution {
			head += verifiedStyle.Render("  ✓ verified solution")
		}
		b.WriteString(head + "\n")
		for _, line := range strings.Split(c.Content, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderStatusBar() string {
	if m.focus == FocusPrompt {
		return m.promptInput.View()
	}
	if m.notice != "" {
		if m.isError {
			return errorStyle.Render(m.notice)
		}
		return noticeStyle.Render(m.notice)
	}
	if m.view == ViewDetail {
		return dimStyle.Render("u/d vote · c comment · V verify · x ccr · a/X paths · R refresh · esc back · q quit")
	}
	return dimStyle.Render("/ search · s status · e severity · r release · ctrl+l clear · enter open · q quit")
}
