package format_test

import (
	"strings"
	"testing"
	"time"

	"testertalk/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("ID", "Title", "Severity")
	tb.Row(42, "timer drift on reboot", "High")
	tb.Row(43, "stale route entry", "Low")
	out := tb.String()

	if !strings.Contains(out, "ID") {
		t.Errorf("expected header 'ID' in output:\n%s", out)
	}
	if !strings.Contains(out, "timer drift on reboot") {
		t.Errorf("expected row content in output:\n%s", out)
	}
	// ASCII mode uses StyleLight box-drawing characters.
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Bucket", "Reviewer")
	tb.Row("BUCKET1", "reviewer1")
	out := tb.String()

	if !strings.Contains(out, "| Bucket") {
		t.Errorf("expected markdown header with '| Bucket':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestTable_FooterAndColumns(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Status", "Count")
	tb.Row("open", 12)
	tb.Row("resolved", 30)
	tb.Footer("TOTAL", 42)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "42") {
		t.Errorf("expected footer in output:\n%s", out)
	}
}

// --- Helper tests ---

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
		{"old falls back to date", now.Add(-40 * 24 * time.Hour), "2026-07-22"},
		{"zero", time.Time{}, "-"},
	}
	for _, tc := range tests {
		if got := format.TimeAgo(tc.t, now); got != tc.want {
			t.Errorf("%s: TimeAgo = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolutionTime(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		resolved time.Time
		want     string
	}{
		{"under an hour", created.Add(20 * time.Minute), "<1h"},
		{"hours", created.Add(5 * time.Hour), "5h"},
		{"days and hours", created.Add(50 * time.Hour), "2d 2h"},
		{"unresolved", time.Time{}, "-"},
		{"resolved before created", created.Add(-time.Hour), "-"},
	}
	for _, tc := range tests {
		if got := format.ResolutionTime(created, tc.resolved); got != tc.want {
			t.Errorf("%s: ResolutionTime = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tc := range tests {
		if got := format.FileSize(tc.in); got != tc.want {
			t.Errorf("FileSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScore(t *testing.T) {
	if got := format.Score(3); got != "+3" {
		t.Errorf("Score(3) = %q", got)
	}
	if got := format.Score(-2); got != "-2" {
		t.Errorf("Score(-2) = %q", got)
	}
	if got := format.Score(0); got != "0" {
		t.Errorf("Score(0) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := format.Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := format.Truncate("a very long testcase title", 10); got != "a very ..." {
		t.Errorf("Truncate long = %q", got)
	}
}
