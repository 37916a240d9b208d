package update

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/export"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/views"
	"go.uber.org/zap"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startFetch()}
	if tick := m.refreshTick(); tick != nil {
		cmds = append(cmds, tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.body.Width = typed.Width
		m.body.Height = m.bodyHeight()
		m.markdown = views.NewMarkdownRenderer(m.Session.Theme, m.contentWidth())
		m.renderBodies()
		return m, nil
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case DocumentLoadedMsg:
		if !m.seq.IsCurrent(typed.Seq) {
			m.deps.Logger.Debug("discarding superseded dashboard response",
				zap.Uint64("seq", typed.Seq), zap.Uint64("latest", m.seq.Latest()))
			return m, nil
		}
		m.applyDocument(typed.Result)
		m.deps.Logger.Info("dashboard loaded",
			zap.Uint64("seq", typed.Seq),
			zap.Int("sections", len(m.Sections)),
			zap.Bool("failed", typed.Result.Failed))
		return m, nil
	case RefreshMsg:
		return m, m.startFetch()
	case refreshTickMsg:
		return m, tea.Batch(m.startFetch(), m.refreshTick())
	case ToggleSectionMsg:
		m.toggleSection(typed.Title)
		return m, nil
	case SetAllMsg:
		m.setAll(typed.Open)
		return m, nil
	case SetStatusMsg:
		return m, m.setStatus(typed.Text, typed.IsError)
	case clearStatusMsg:
		if typed.seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.deps.Logger.Error("app error", zap.Error(typed.Err))
			return m, m.setStatus(typed.Err.Error(), true)
		}
		return m, nil
	case ExportDoneMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			text := typed.Err.Error()
			if errors.Is(typed.Err, export.ErrEmptyDocument) {
				text = export.MessageEmptyDocument
			}
			m.deps.Logger.Warn("export failed", zap.Error(typed.Err))
			return m, m.setStatus(text, true)
		}
		m.deps.Logger.Info("exported dashboard", zap.String("path", typed.Result.Path))
		return m, m.setStatus(typed.Result.Message(), false)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Down, "down":
		m.moveCursor(1)
		return m, nil
	case m.Keys.Up, "up":
		m.moveCursor(-1)
		return m, nil
	case "pgdown", "pgup":
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	case m.Keys.Toggle, " ":
		section, ok := m.currentSection()
		if !ok || m.Loading {
			return m, nil
		}
		m.toggleSection(section.Title)
		state := "collapsed"
		if m.Collapse.IsOpen(section.Title) {
			state = "expanded"
		}
		return m, m.setStatus(fmt.Sprintf("%s %s", section.Title, state), false)
	case m.Keys.BulkToggle:
		if len(m.Collapse) == 0 || m.Loading {
			return m, nil
		}
		if m.toggleAll() {
			return m, m.setStatus("expanded all sections", false)
		}
		return m, m.setStatus("collapsed all sections", false)
	case m.Keys.Refresh:
		cmd := m.startFetch()
		return m, tea.Batch(cmd, m.setStatus("refreshing dashboard", false))
	case m.Keys.Theme:
		m.setTheme(m.Session.Theme.Next())
		return m, m.setStatus("theme: "+string(m.Session.Theme), false)
	case m.Keys.SaveMD:
		return m, m.exportCmd(export.FormatMarkdown)
	case m.Keys.SavePDF:
		return m, tea.Batch(m.exportCmd(export.FormatPDF), m.setStatus("rendering pdf...", false))
	}
	return m, nil
}

func (m Model) refreshTick() tea.Cmd {
	if m.deps.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.deps.RefreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

// exportCmd treats a failed load as having nothing to export. A refresh in
// flight still exports the document on screen.
func (m Model) exportCmd(format export.Format) tea.Cmd {
	doc := m.Markdown
	if m.Failed {
		doc = ""
	}
	req := export.Request{
		Markdown: doc,
		UserName: m.Session.UserName,
		Dir:      m.deps.ExportDir,
		Format:   format,
	}
	exporter := m.deps.Exporter
	return func() tea.Msg {
		res, err := exporter.Export(req)
		return ExportDoneMsg{Result: res, Err: err}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := ""
	if m.Loading && len(m.Sections) == 0 {
		body = views.RenderLoading(m.Session.Theme, m.loadSpinner.View())
	} else {
		body = m.body.View()
	}

	bulk := ""
	if len(m.Collapse) > 0 {
		bulk = model.BulkActionLabel(m.Collapse)
	}

	return views.RenderApp(views.AppData{
		Theme:      m.Session.Theme,
		Header:     m.headerLine(),
		Title:      DashboardTitle,
		BulkAction: bulk,
		Body:       body,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Palette:    views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		Help:       m.renderHelpIfVisible(),
		Footer: fmt.Sprintf("keys: %s/%s move | %s toggle | %s all | %s refresh | %s theme | %s md | %s pdf | %s cmd | %s help | %s quit",
			m.Keys.Down, m.Keys.Up, m.Keys.Toggle, m.Keys.BulkToggle, m.Keys.Refresh, m.Keys.Theme,
			m.Keys.SaveMD, m.Keys.SavePDF, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) headerLine() string {
	parts := []string{"dashd"}
	if name := strings.TrimSpace(m.Session.UserName); name != "" {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, initials(name)))
	}
	parts = append(parts, "theme: "+string(m.Session.Theme))
	if m.Loading && len(m.Sections) > 0 {
		parts = append(parts, m.loadSpinner.View()+" refreshing")
	}
	return strings.Join(parts, " | ")
}
