// Package tui is the interactive viewer: a filterable events table, the
// event selection checklist, reload, export and copy-to-clipboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hejijunhao/seclog/internal/engine/filter"
	"github.com/hejijunhao/seclog/internal/export"
	"github.com/hejijunhao/seclog/internal/model"
	"github.com/hejijunhao/seclog/internal/pipeline"
)

const (
	defaultTableHeight = 15
	chromeHeight       = 12
	minTableHeight     = 3
)

// DefaultFormats matches the three exports the viewer has always offered.
var DefaultFormats = []string{"txt", "xlsx", "pdf"}

// Session is the part of *pipeline.Session the viewer drives.
type Session interface {
	Load(ctx context.Context) (pipeline.LoadResult, error)
	Abort() bool
	Enable(code uint32)
	Disable(code uint32)
	IsEnabled(code uint32) bool
	CatalogEntries() []model.CatalogEntry
	Apply(c filter.Criteria) []model.ClassifiedEvent
	Rows() []export.Row
}

// Options configures the viewer.
type Options struct {
	Channel   string
	ExportDir string
	Formats   []string // defaults to DefaultFormats
	Criteria  filter.Criteria
}

type screen int

const (
	screenEvents screen = iota
	screenSelection
)

type focus int

const (
	focusSearch focus = iota
	focusFrom
	focusTo
	focusTable
	focusCount
)

// Model is the bubbletea model for the viewer.
type Model struct {
	ctx     context.Context
	session Session
	opts    Options

	screen  screen
	focused focus
	search  textinput.Model
	from    textinput.Model
	to      textinput.Model
	table   table.Model

	entries   []model.CatalogEntry
	cursor    int
	listStart int
	height    int

	loading bool
	canCopy bool
	status  string
	err     error
	now     func() time.Time
	styles  styles
}

// New builds a viewer over s. ctx bounds every load it starts.
func New(ctx context.Context, s Session, opts Options) *Model {
	if len(opts.Formats) == 0 {
		opts.Formats = DefaultFormats
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	m := &Model{
		ctx:     ctx,
		session: s,
		opts:    opts,
		search:  newInput("search", 30),
		from:    newInput("DD-MM-YYYY", 10),
		to:      newInput("DD-MM-YYYY", 10),
		table:   newTable(),
		entries: s.CatalogEntries(),
		height:  defaultTableHeight,
		canCopy: !clipboard.Unsupported,
		now:     time.Now,
		styles:  newStyles(),
	}
	m.from.CharLimit = len(model.DateLayout)
	m.to.CharLimit = len(model.DateLayout)
	m.search.SetValue(opts.Criteria.Search)
	if !opts.Criteria.Start.IsZero() {
		m.from.SetValue(opts.Criteria.Start.Format(model.DateLayout))
	}
	if !opts.Criteria.End.IsZero() {
		m.to.SetValue(opts.Criteria.End.Format(model.DateLayout))
	}
	m.search.Focus()
	return m
}

// Run starts the viewer on the alternate screen and blocks until it exits.
func Run(ctx context.Context, s Session, opts Options) error {
	p := tea.NewProgram(New(ctx, s, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startLoad())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case loadedMsg:
		return m.handleLoaded(msg)
	case exportedMsg:
		return m.handleExported(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m.updateFocused(msg)
}

func (m *Model) resize(width, height int) {
	h := height - chromeHeight
	if h < minTableHeight {
		h = minTableHeight
	}
	m.height = h
	m.table.SetHeight(h)
	m.table.SetWidth(width - 4)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.loading {
			m.session.Abort()
		}
		return m, tea.Quit
	case "esc":
		if m.loading {
			m.session.Abort()
			m.status = "aborting load..."
			return m, nil
		}
		if m.screen == screenSelection {
			m.screen = screenEvents
			return m, nil
		}
		return m, tea.Quit
	case "ctrl+r":
		return m, m.startLoad()
	case "ctrl+e":
		return m.startExport()
	case "ctrl+y":
		m.copySelected()
		return m, nil
	case "ctrl+t":
		m.toggleScreen()
		return m, nil
	}

	if m.screen == screenSelection {
		m.handleChecklistKey(msg.String())
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m, m.setFocus((m.focused + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focused + focusCount - 1) % focusCount)
	}

	next, cmd := m.updateFocused(msg)
	if m.focused != focusTable {
		m.applyFilter()
	}
	return next, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusFrom:
		m.from, cmd = m.from.Update(msg)
	case focusTo:
		m.to, cmd = m.to.Update(msg)
	case focusTable:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focused = f
	m.search.Blur()
	m.from.Blur()
	m.to.Blur()
	m.table.Blur()

	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusFrom:
		return m.from.Focus()
	case focusTo:
		return m.to.Focus()
	default:
		m.table.Focus()
		return nil
	}
}

func (m *Model) toggleScreen() {
	if m.screen == screenEvents {
		m.screen = screenSelection
		return
	}
	m.screen = screenEvents
}

// applyFilter re-runs the filter from the input boxes. A malformed date
// keeps the previous view and reports the problem.
func (m *Model) applyFilter() {
	c, err := m.criteria()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.setRows(export.Rows(m.session.Apply(c)))
}

func (m *Model) criteria() (filter.Criteria, error) {
	start, errFrom := filter.ParseDate(m.from.Value())
	end, errTo := filter.ParseDate(m.to.Value())
	if err := errors.Join(errFrom, errTo); err != nil {
		return filter.Criteria{}, err
	}
	return filter.Criteria{Search: m.search.Value(), Start: start, End: end}, nil
}

func (m *Model) setRows(rows []export.Row) {
	tr := make([]table.Row, len(rows))
	for i, r := range rows {
		tr[i] = table.Row{
			strconv.Itoa(r.Index),
			strconv.FormatUint(uint64(r.Code), 10),
			r.Date,
			r.Time,
			r.Pattern,
		}
	}
	m.table.SetRows(tr)
	if len(tr) > 0 && m.table.Cursor() >= len(tr) {
		m.table.SetCursor(len(tr) - 1)
	}
}

func (m *Model) startLoad() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.err = nil
	m.status = fmt.Sprintf("reading %s log...", m.opts.Channel)
	return loadCmd(m.ctx, m.session)
}

func (m *Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.applyFilter()

	res := msg.res
	switch {
	case msg.err == nil:
		m.status = fmt.Sprintf("%d events kept of %d read in %s", res.Kept, res.Read, res.Duration.Round(time.Millisecond))
	case pipeline.IsConnectionError(msg.err):
		m.err = msg.err
		m.status = "previous results kept"
	default:
		m.err = msg.err
		m.status = fmt.Sprintf("partial load: %d events kept of %d read", res.Kept, res.Read)
	}
	return m, nil
}

func (m *Model) startExport() (tea.Model, tea.Cmd) {
	rows := m.session.Rows()
	if len(rows) == 0 {
		m.status = "nothing to export"
		return m, nil
	}
	m.status = fmt.Sprintf("exporting %d rows...", len(rows))
	return m, exportCmd(rows, m.opts.ExportDir, m.opts.Formats, m.now())
}

func (m *Model) handleExported(msg exportedMsg) (tea.Model, tea.Cmd) {
	m.err = msg.err
	if len(msg.paths) > 0 {
		m.status = "exported " + strings.Join(msg.paths, ", ")
	} else {
		m.status = "export failed"
	}
	return m, nil
}

func (m *Model) copySelected() {
	row := m.table.SelectedRow()
	if row == nil {
		return
	}
	if !m.canCopy {
		m.status = "clipboard unavailable"
		return
	}
	if err := clipboard.WriteAll(strings.Join(row, "\t")); err != nil {
		m.status = "failed to copy to clipboard"
		return
	}
	m.status = "row copied to clipboard"
}

func (m *Model) View() string {
	var b strings.Builder

	title := m.styles.title.Render("seclog")
	if m.opts.Channel != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, m.styles.help.Render(" · "+m.opts.Channel))
	}
	b.WriteString(title + "\n\n")

	if m.screen == screenSelection {
		b.WriteString(m.renderChecklist())
	} else {
		b.WriteString(m.renderEvents())
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.styles.hint.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}
	b.WriteString(m.styles.help.Render(m.helpLine()))

	return m.styles.app.Render(b.String())
}

func (m *Model) renderEvents() string {
	inputs := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.label.Render("Search "), m.search.View(), "  ",
		m.styles.label.Render("From "), m.from.View(), "  ",
		m.styles.label.Render("To "), m.to.View(),
	)
	return inputs + "\n\n" + m.table.View()
}

func (m *Model) helpLine() string {
	if m.screen == screenSelection {
		return "↑/↓ move • space toggle • a all • n none • ctrl+t events • ctrl+r reload • esc back"
	}
	return "tab focus • ctrl+r reload • ctrl+e export • ctrl+y copy • ctrl+t selection • esc quit"
}
