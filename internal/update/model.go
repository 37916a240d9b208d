package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/dashd/internal/export"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/source"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/views"
	"go.uber.org/zap"
)

const (
	DashboardTitle = "Your Personalized Dashboard"
	statusTTL      = 3 * time.Second
	defaultWidth   = 80
	defaultHeight  = 24
	// header, title, bulk action, status and footer lines around the body
	chromeLines = 7
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Down       string
	Up         string
	Toggle     string
	BulkToggle string
	Refresh    string
	Theme      string
	SaveMD     string
	SavePDF    string
	Palette    string
	Help       string
	Quit       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps are the collaborators the dashboard talks to.
type Deps struct {
	Store           storage.KV
	Fetcher         source.Fetcher
	Exporter        *export.Exporter
	Logger          *zap.Logger
	ExportDir       string
	RefreshInterval time.Duration
}

// Session is externally owned identity and display preference.
type Session struct {
	UserID   string
	UserName string
	Theme    model.Theme
}

type Model struct {
	Session     Session
	Markdown    string
	Failed      bool
	Loading     bool
	Sections    []model.Section
	Collapse    model.CollapseState
	Cursor      int
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	deps      Deps
	seq       *source.Sequencer
	statusSeq int
	width     int
	height    int
	rendered  []string
	offsets   []int
	// Bubble components used for rich TUI controls
	loadSpinner  spinner.Model
	body         viewport.Model
	commandInput textinput.Model
	helpModel    help.Model
	markdown     *views.MarkdownRenderer
}

type DocumentLoadedMsg struct {
	Seq    uint64
	Result source.Result
}

type RefreshMsg struct{}

type refreshTickMsg struct{}

type ToggleSectionMsg struct {
	Title string
}

type SetAllMsg struct {
	Open bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type clearStatusMsg struct {
	seq int
}

type AppErrorMsg struct {
	Err error
}

type ExportDoneMsg struct {
	Result export.Result
	Err    error
}

func DefaultKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Down:       "j",
		Up:         "k",
		Toggle:     "enter",
		BulkToggle: "a",
		Refresh:    "r",
		Theme:      "t",
		SaveMD:     "m",
		SavePDF:    "p",
		Palette:    "/",
		Help:       "?",
		Quit:       "q",
	}
}

func NewModel(deps Deps, session Session) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Exporter == nil {
		deps.Exporter = export.New(nil)
	}
	if !session.Theme.IsValid() {
		session.Theme = model.ThemeSystem
	}
	m := Model{
		Session:  session,
		Loading:  true,
		Collapse: make(model.CollapseState),
		Keys:     DefaultKeys(),
		deps:     deps,
		seq:      &source.Sequencer{},
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.initBubbleComponents()
	m.markdown = views.NewMarkdownRenderer(m.Session.Theme, m.contentWidth())
	return m
}

func (m *Model) initBubbleComponents() {
	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.body = viewport.New(m.width, m.bodyHeight())
}

func (m Model) contentWidth() int {
	return m.width - 6
}

func (m Model) bodyHeight() int {
	h := m.height - chromeLines
	if h < 3 {
		h = 3
	}
	return h
}
