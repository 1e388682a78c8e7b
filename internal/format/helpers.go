// Package format renders issues and related records for terminal
// output: tables plus the small display helpers shared by the CLI and
// the interactive browser.
package format

import (
	"fmt"
	"time"
)

// TimeAgo formats t relative to now: "just now", minutes, hours or
// days ago, falling back to the date for anything older than a month.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// ResolutionTime formats how long an issue stayed open, from report to
// verified solution.
func ResolutionTime(created, resolved time.Time) string {
	if created.IsZero() || resolved.IsZero() || resolved.Before(created) {
		return "-"
	}
	d := resolved.Sub(created)
	hours := int(d.Hours())
	switch {
	case hours < 1:
		return "<1h"
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	}
}

// FileSize formats an attachment size in B, KB or MB.
func FileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

// Score formats a vote score with an explicit sign for positives.
func Score(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
