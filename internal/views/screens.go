package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/dashd/internal/model"
)

const (
	chevronOpen   = "▾"
	chevronClosed = "▸"
)

type SectionData struct {
	Title    string
	Body     string
	Open     bool
	Selected bool
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

// RenderSections lays sections out top to bottom and reports the line each
// section header starts on, so callers can scroll a section into view.
func RenderSections(theme model.Theme, sections []SectionData) (string, []int) {
	styles := StylesFor(theme)
	var b strings.Builder
	offsets := make([]int, 0, len(sections))
	line := 0
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
			line++
		}
		offsets = append(offsets, line)

		cursor := " "
		titleStyle := styles.Section
		if s.Selected {
			cursor = ">"
			titleStyle = styles.Selected
		}
		chevron := chevronClosed
		if s.Open {
			chevron = chevronOpen
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, styles.Chevron.Render(chevron), titleStyle.Render(s.Title)))
		line++

		if s.Open && s.Body != "" {
			body := indent(s.Body, "    ")
			b.WriteString(body + "\n")
			line += strings.Count(body, "\n") + 1
		}
	}
	return strings.TrimSuffix(b.String(), "\n"), offsets
}

// RenderLoading shows placeholder rows while the document is fetched.
func RenderLoading(theme model.Theme, spinnerView string) string {
	styles := StylesFor(theme)
	var b strings.Builder
	b.WriteString(spinnerView + " loading your dashboard...\n")
	for i := 0; i < 3; i++ {
		b.WriteString(styles.Muted.Render("  ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░") + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
