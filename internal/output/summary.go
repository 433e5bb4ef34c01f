package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	modifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	unchangedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	hunkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

// Summary renders a human-readable run summary.
func Summary(s Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  Files processed: %d\n", s.Total)
	if s.Modified > 0 {
		fmt.Fprintf(&b, "  %s: %d\n", modifiedStyle.Render("Modified"), s.Modified)
	}
	if s.Unchanged > 0 {
		fmt.Fprintf(&b, "  %s: %d\n", unchangedStyle.Render("Unchanged"), s.Unchanged)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "  %s: %d\n", skippedStyle.Render("Skipped"), s.Skipped)
	}
	if s.Errors > 0 {
		fmt.Fprintf(&b, "  %s: %d\n", errorStyle.Render("Errors"), s.Errors)
	}
	return b.String()
}
