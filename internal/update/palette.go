package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/commands"
	"github.com/sandeepkv93/dashd/internal/export"
	"github.com/sandeepkv93/dashd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, m.setStatus("command palette closed", false)
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Expand: func() (commands.Result, error) {
			m.setAll(true)
			return commands.Result{Message: "expanded all sections"}, nil
		},
		Collapse: func() (commands.Result, error) {
			m.setAll(false)
			return commands.Result{Message: "collapsed all sections"}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			if !m.hasSection(a.Title) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no section titled %q", a.Title)}
			}
			m.toggleSection(a.Title)
			return commands.Result{Message: fmt.Sprintf("toggled %s", a.Title)}, nil
		},
		Refresh: func() (commands.Result, error) {
			follow = m.startFetch()
			return commands.Result{Message: "refreshing dashboard"}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			next := m.Session.Theme.Next()
			if a.Name != "" {
				next = model.ParseTheme(a.Name)
			}
			m.setTheme(next)
			return commands.Result{Message: "theme: " + string(next)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			format, err := export.ParseFormat(a.Format)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			follow = m.exportCmd(format)
			return commands.Result{Message: "exporting " + string(format)}, nil
		},
	})
	if err != nil {
		return m, m.setStatus(err.Error(), true)
	}
	return m, tea.Batch(follow, m.setStatus(res.Message, false))
}

func (m Model) hasSection(title string) bool {
	for _, s := range m.Sections {
		if s.Title == title {
			return true
		}
	}
	return false
}
