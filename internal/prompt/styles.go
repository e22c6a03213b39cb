package prompt

import (
	"fmt"
	"strings"

	"github.com/Bibi40k/sftp-logfetch/internal/wizard"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")

	titleStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	stepStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
)

const backLabel = "← Back"

// stepLabel returns "(n/m)", or "" when the flow has no step count.
func stepLabel(h wizard.Header) string {
	if h.TotalSteps <= 0 || h.Step <= 0 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", h.Step, h.TotalSteps)
}

func renderHeader(h wizard.Header, hints ...string) string {
	parts := []string{titleStyle.Render(h.Title)}
	if s := stepLabel(h); s != "" {
		parts = append(parts, stepStyle.Render(s))
	}
	line := strings.Join(parts, " ")
	if len(hints) > 0 {
		line += "  " + hintStyle.Render(strings.Join(hints, ", "))
	}
	return line
}

// formatPrompt builds the readline prompt for a text field.
func formatPrompt(label, message string, busy bool) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(label)
		b.WriteString(" ")
	}
	if message != "" {
		b.WriteString(errorStyle.Render("✗ " + message))
		b.WriteString(" ")
	}
	if busy {
		b.WriteString(stepStyle.Render("⋯ "))
	}
	b.WriteString("› ")
	return b.String()
}

// optionLabels returns the survey options for items, plus the back entry.
func optionLabels(items []wizard.Item, back bool) []string {
	labels := make([]string, 0, len(items)+1)
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	if back {
		labels = append(labels, backLabel)
	}
	return labels
}

// itemDescription joins the secondary texts shown next to an option.
func itemDescription(it wizard.Item) string {
	switch {
	case it.Description != "" && it.Detail != "":
		return it.Description + " · " + it.Detail
	case it.Description != "":
		return it.Description
	default:
		return it.Detail
	}
}

// activeIndex returns the index of the item matching active by label, or -1.
func activeIndex(items []wizard.Item, active *wizard.Item) int {
	if active == nil {
		return -1
	}
	for i, it := range items {
		if it.Label == active.Label {
			return i
		}
	}
	return -1
}
