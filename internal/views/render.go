package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/dashd/internal/model"
)

type AppData struct {
	Theme      model.Theme
	Header     string
	Title      string
	BulkAction string
	Body       string
	StatusLine string
	IsError    bool
	Palette    string
	Help       string
	Footer     string
}

type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Footer   lipgloss.Style
	Section  lipgloss.Style
	Selected lipgloss.Style
	Chevron  lipgloss.Style
	Muted    lipgloss.Style
}

// StylesFor picks colors for theme; ThemeSystem adapts to the terminal
// background.
func StylesFor(theme model.Theme) Styles {
	var accent, text, muted, border lipgloss.TerminalColor
	switch theme {
	case model.ThemeLight:
		accent, text, muted, border = lipgloss.Color("25"), lipgloss.Color("235"), lipgloss.Color("244"), lipgloss.Color("250")
	case model.ThemeDark:
		accent, text, muted, border = lipgloss.Color("12"), lipgloss.Color("252"), lipgloss.Color("8"), lipgloss.Color("238")
	default:
		accent = lipgloss.AdaptiveColor{Light: "25", Dark: "12"}
		text = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
		muted = lipgloss.AdaptiveColor{Light: "244", Dark: "8"}
		border = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
	}
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		Footer:   lipgloss.NewStyle().Foreground(muted),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Chevron:  lipgloss.NewStyle().Foreground(muted),
		Muted:    lipgloss.NewStyle().Foreground(muted),
	}
}

func RenderApp(data AppData) string {
	styles := StylesFor(data.Theme)

	lines := []string{styles.Header.Render(data.Header)}
	if data.Title != "" {
		lines = append(lines, styles.Title.Render(data.Title))
	}
	if data.BulkAction != "" {
		lines = append(lines, styles.Muted.Render("[a] "+data.BulkAction))
	}
	lines = append(lines, data.Body)
	if data.StatusLine != "" {
		status := styles.Status.Render(data.StatusLine)
		if data.IsError {
			status = styles.Error.Render(data.StatusLine)
		}
		lines = append(lines, status)
	}
	if data.Palette != "" {
		lines = append(lines, styles.Panel.Render(data.Palette))
	}
	if data.Help != "" {
		lines = append(lines, styles.Panel.Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, styles.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// MarkdownRenderer renders section bodies for one theme and width.
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

func NewMarkdownRenderer(theme model.Theme, width int) *MarkdownRenderer {
	if width < 20 {
		width = 20
	}
	style := glamour.WithAutoStyle()
	switch theme {
	case model.ThemeLight:
		style = glamour.WithStandardStyle("light")
	case model.ThemeDark:
		style = glamour.WithStandardStyle("dark")
	}
	term, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{term: term}
}

// Render falls back to the raw text when glamour cannot render it.
func (r *MarkdownRenderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if r == nil || r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
