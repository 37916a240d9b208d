package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/source"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/views"
	"go.uber.org/zap"
)

const persistTimeout = 2 * time.Second

// startFetch supersedes any fetch still in flight.
func (m *Model) startFetch() tea.Cmd {
	seq := m.seq.Next()
	m.Loading = true
	fetcher := m.deps.Fetcher
	userID := m.Session.UserID
	logger := m.deps.Logger
	fetch := func() tea.Msg {
		if fetcher == nil {
			return DocumentLoadedMsg{Seq: seq, Result: source.Result{Markdown: source.MessageLoadFailed, Failed: true}}
		}
		res := source.Resolve(context.Background(), fetcher, userID)
		if res.Err != nil {
			logger.Warn("dashboard load failed", zap.Uint64("seq", seq), zap.Error(res.Err))
		}
		return DocumentLoadedMsg{Seq: seq, Result: res}
	}
	return tea.Batch(m.loadSpinner.Tick, fetch)
}

// applyDocument installs a freshly loaded document. A failed load shows the
// fallback text as one open section and leaves the persisted state alone.
func (m *Model) applyDocument(res source.Result) {
	m.Loading = false
	m.Markdown = res.Markdown
	m.Failed = res.Failed
	m.Sections = model.SplitSections(res.Markdown)

	if res.Failed {
		m.Collapse = model.Reconcile(m.Sections, nil)
	} else {
		previous := m.loadPersistedState()
		m.Collapse = model.Reconcile(m.Sections, previous)
		m.persist()
	}
	m.clampCursor()
	m.renderBodies()
}

func (m *Model) toggleSection(title string) {
	m.Collapse = model.Toggle(m.Collapse, title)
	m.persist()
	m.syncBody()
}

func (m *Model) setAll(open bool) {
	m.Collapse = model.SetAll(m.Collapse, open)
	m.persist()
	m.syncBody()
}

// toggleAll collapses everything when any section is open, otherwise
// expands everything.
func (m *Model) toggleAll() bool {
	open := !model.AnyOpen(m.Collapse)
	m.setAll(open)
	return open
}

func (m *Model) setTheme(theme model.Theme) {
	m.Session.Theme = theme
	if m.deps.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := storage.SaveTheme(ctx, m.deps.Store, theme); err != nil {
			m.deps.Logger.Warn("persist theme failed", zap.Error(err))
		}
	}
	m.markdown = views.NewMarkdownRenderer(theme, m.contentWidth())
	m.renderBodies()
}

func (m *Model) loadPersistedState() model.CollapseState {
	if m.deps.Store == nil {
		return model.CollapseState{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	state, err := storage.LoadCollapseState(ctx, m.deps.Store)
	if err != nil {
		m.deps.Logger.Warn("ignoring persisted collapse state", zap.Error(err))
	}
	return state
}

// persist is best effort: a failed write only costs the remembered layout.
func (m *Model) persist() {
	if m.deps.Store == nil || m.Failed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := storage.SaveCollapseState(ctx, m.deps.Store, m.Collapse); err != nil {
		m.deps.Logger.Warn("persist collapse state failed", zap.Error(err))
	}
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Sections) {
		m.Cursor = len(m.Sections) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) currentSection() (model.Section, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Sections) {
		return model.Section{}, false
	}
	return m.Sections[m.Cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.Sections) == 0 {
		return
	}
	m.Cursor += delta
	m.clampCursor()
	m.syncBody()
}

// renderBodies re-renders every section with glamour. It runs only when the
// document, theme or width changes.
func (m *Model) renderBodies() {
	m.rendered = make([]string, len(m.Sections))
	for i, s := range m.Sections {
		m.rendered[i] = m.markdown.Render(s.Content)
	}
	m.syncBody()
}

func (m *Model) syncBody() {
	data := make([]views.SectionData, 0, len(m.Sections))
	for i, s := range m.Sections {
		body := ""
		if i < len(m.rendered) {
			body = m.rendered[i]
		}
		data = append(data, views.SectionData{
			Title:    s.Title,
			Body:     body,
			Open:     m.Collapse.IsOpen(s.Title),
			Selected: i == m.Cursor,
		})
	}
	content, offsets := views.RenderSections(m.Session.Theme, data)
	m.offsets = offsets
	m.body.SetContent(content)
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.Cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.Cursor]
	if top < m.body.YOffset {
		m.body.SetYOffset(top)
		return
	}
	if top >= m.body.YOffset+m.body.Height {
		m.body.SetYOffset(top - m.body.Height + 1)
	}
}

func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isError}
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}
