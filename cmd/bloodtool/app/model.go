// Package app is the root bubbletea model of the bloodtool interface. It owns
// the document and the store; pages only emit submit messages.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bloodtool/cmd/bloodtool/ui"
	"bloodtool/internal/config"
	"bloodtool/internal/conflict"
	"bloodtool/internal/forms"
	"bloodtool/internal/logging"
	"bloodtool/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Page identifies a sidebar entry.
type Page int

const (
	PageHome Page = iota
	PageCompany
	PageTransport
	PageConflict
)

var pageTitles = []string{"Home", "Medical Logistics Company", "Transport Info", "Conflict Prediction"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageTitles) {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return pageTitles[p]
}

// Success texts shown after a save.
const (
	CompanySavedText   = "Medical Logistics Company info saved!"
	TransportSavedText = "Transport data saved!"
	EntryAddedText     = "Data added successfully!"
)

// Watcher delivers change notifications for the data file.
type Watcher interface {
	Events() <-chan struct{}
	Done() <-chan struct{}
}

// Options wires a Model.
type Options struct {
	Workspace string
	Config    *config.Config
	Store     store.Store
	Document  *forms.Document
	Watcher   Watcher // optional
}

type (
	// persistedMsg reports the outcome of saving a staged document.
	persistedMsg struct {
		doc  *forms.Document
		text string
		err  error
	}
	reloadedMsg struct {
		doc *forms.Document
		err error
	}
	fileChangedMsg struct{}
	exportedMsg    struct {
		path  string
		count int
		err   error
	}
)

// Model is the root bubbletea model.
type Model struct {
	ctx       context.Context
	cfg       *config.Config
	workspace string
	store     store.Store
	watcher   Watcher
	doc       *forms.Document

	styles ui.Styles
	layout ui.LayoutConfig
	menu   ui.Menu

	home      ui.HomePageModel
	company   ui.CompanyPageModel
	transport ui.TransportPageModel
	conflict  ui.ConflictPageModel

	status    string
	statusErr bool
	saving    bool
}

// New builds the root model from opts. A nil document starts empty.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	doc := opts.Document
	if doc == nil {
		doc = forms.NewDocument()
	}
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))

	m := Model{
		ctx:       context.Background(),
		cfg:       cfg,
		workspace: opts.Workspace,
		store:     opts.Store,
		watcher:   opts.Watcher,
		doc:       doc,
		styles:    styles,
		menu:      ui.NewMenu("Main Menu", pageTitles...),
		home:      ui.NewHomePageModel(styles),
		company:   ui.NewCompanyPageModel(styles, cfg.Forms.MaxPlatoons),
		transport: ui.NewTransportPageModel(styles, cfg.Forms.MaxTransports, cfg.Forms.MaxDeliveryDates),
		conflict:  ui.NewConflictPageModel(styles, cfg.Forms.MaxDayRanges, cfg.Storage.ExportFile),
	}
	m.loadPages()
	m.resize(ui.MinimumTerminalWidth, ui.MinimumTerminalHeight)
	return m
}

// Document returns the committed document.
func (m Model) Document() *forms.Document { return m.doc }

// Page returns the active page.
func (m Model) Page() Page { return Page(m.menu.Active) }

// Status returns the footer status line.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m *Model) loadPages() {
	m.home.Load(m.doc.Home)
	m.company.Load(m.doc.Company)
	m.transport.Load(m.doc.Transport)
	m.conflict.SetEntries(m.doc.Entries)
}

func (m *Model) resize(w, h int) {
	m.layout = ui.NewLayoutConfig(w, h)
	cw, ch := m.layout.ContentWidth(), m.layout.ContentHeight()
	m.home.SetSize(cw, ch)
	m.company.SetSize(cw, ch)
	m.transport.SetSize(cw, ch)
	m.conflict.SetSize(cw, ch)
}

// Init starts cursor blinking and the file watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watchCmd())
}

func (m Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		select {
		case <-w.Events():
			return fileChangedMsg{}
		case <-w.Done():
			return nil
		}
	}
}

func (m Model) reloadCmd() tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		doc, err := s.Load(ctx)
		return reloadedMsg{doc: doc, err: err}
	}
}

// saveCmd persists a staged copy. The model adopts it only on success.
func (m Model) saveCmd(next *forms.Document, text string) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		if s == nil {
			return persistedMsg{doc: next, text: text, err: fmt.Errorf("no store configured")}
		}
		return persistedMsg{doc: next, text: text, err: s.Save(ctx, next)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	path := config.Resolve(m.workspace, m.cfg.Storage.ExportFile)
	entries := m.doc.Clone().Entries
	return func() tea.Msg {
		err := store.ExportEntries(path, entries)
		return exportedMsg{path: path, count: len(entries), err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := logging.Get(logging.CategoryUI)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.menu.Next()
			return m, nil
		case "ctrl+p":
			m.menu.Prev()
			return m, nil
		case "alt+1", "alt+2", "alt+3", "alt+4":
			m.menu.Select(int(key[len(key)-1] - '1'))
			return m, nil
		case "ctrl+e":
			if len(m.doc.Entries) == 0 {
				m.setStatus("No stored user data to export.", true)
				return m, nil
			}
			return m, m.exportCmd()
		}
		return m.updatePage(msg)

	case ui.HomeSubmitted:
		next := m.doc.Clone()
		next.Home = msg.Home
		text := "Saved."
		if msg.Home.UserName != "" {
			text = fmt.Sprintf("Welcome, %s!", msg.Home.UserName)
		}
		return m.stage(next, text)

	case ui.CompanySubmitted:
		next := m.doc.Clone()
		next.Company = msg.Company
		return m.stage(next, CompanySavedText)

	case ui.TransportSubmitted:
		next := m.doc.Clone()
		next.Transport = msg.Transport
		return m.stage(next, TransportSavedText)

	case ui.ConflictSubmitted:
		next := m.doc.Clone()
		next.AppendEntry(msg.Plan)
		log.Info("conflict assessment accepted",
			zap.Int("simulation_days", msg.Plan.SimulationDays),
			zap.Int("ranges", len(msg.Plan.Ranges)))
		return m.stage(next, EntryAddedText)

	case persistedMsg:
		m.saving = false
		if msg.err != nil {
			log.Error("save failed", zap.Error(msg.err))
			m.setStatus("Save failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.doc = msg.doc
		m.conflict.SetEntries(m.doc.Entries)
		m.setStatus(msg.text, false)
		return m, nil

	case fileChangedMsg:
		log.Debug("data file changed on disk")
		return m, tea.Batch(m.reloadCmd(), m.watchCmd())

	case reloadedMsg:
		if msg.err != nil {
			log.Warn("reload failed", zap.Error(msg.err))
			m.setStatus("Reload failed: "+msg.err.Error(), true)
			return m, nil
		}
		if m.saving || sameDocument(m.doc, msg.doc) {
			return m, nil
		}
		m.doc = msg.doc
		m.loadPages()
		m.setStatus("Reloaded data from disk.", false)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Exported %d entries to %s", msg.count, msg.path), false)
		return m, nil
	}

	return m.updatePage(msg)
}

// stage saves next in the background; the current document stays until the
// save succeeds.
func (m Model) stage(next *forms.Document, text string) (tea.Model, tea.Cmd) {
	m.saving = true
	return m, m.saveCmd(next, text)
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Page() {
	case PageHome:
		m.home, cmd = m.home.Update(msg)
	case PageCompany:
		m.company, cmd = m.company.Update(msg)
	case PageTransport:
		m.transport, cmd = m.transport.Update(msg)
	case PageConflict:
		m.conflict, cmd = m.conflict.Update(msg)
	}
	return m, cmd
}

// View renders the header, sidebar, active page and footer.
func (m Model) View() string {
	header := m.styles.Header.Width(m.layout.TerminalWidth).Render("ONR Blood Management Support Tool")

	var page string
	switch m.Page() {
	case PageHome:
		page = m.home.View()
	case PageCompany:
		page = m.company.View()
	case PageTransport:
		page = m.transport.View()
	case PageConflict:
		page = m.conflict.View()
	}

	sidebar := m.menu.View(m.styles, m.layout.SidebarWidth(), m.layout.ContentHeight())
	content := m.styles.Content.Width(m.layout.ContentWidth()).Render(page)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	status := m.styles.Muted.Render("ready")
	if m.status != "" {
		if m.statusErr {
			status = m.styles.Error.Render(m.status)
		} else {
			status = m.styles.Success.Render(m.status)
		}
	}
	help := m.styles.Footer.Render("tab/shift+tab: field • ctrl+n/ctrl+p or alt+1..4: page • ctrl+c: quit")

	return strings.Join([]string{header, body, status, help}, "\n")
}

// Entries returns the committed accepted log.
func (m Model) Entries() []conflict.Plan { return m.doc.Entries }

func sameDocument(a, b *forms.Document) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}
