// Package tui implements the full-screen interactive explorer.
//
// The model follows the standard bubbletea shape: all state lives on Model,
// Update handles one message at a time, and View renders from state alone.
// Do not access model state from outside the bubbletea event loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eladbash/jdx/internal/config"
	"github.com/eladbash/jdx/internal/eval"
	"github.com/eladbash/jdx/internal/history"
	"github.com/eladbash/jdx/internal/jsonval"
	"github.com/eladbash/jdx/internal/query"
	"github.com/eladbash/jdx/internal/schema"
	"github.com/eladbash/jdx/internal/suggest"
)

// viewState selects what the main pane shows.
type viewState int

const (
	viewResult viewState = iota
	viewSchema
)

// Model is the bubbletea model for the explorer.
type Model struct {
	root      jsonval.Value
	inputPath string
	cfg       config.Config
	store     *history.Store

	input    textinput.Model
	viewport viewport.Model

	// Evaluation state, recomputed on every keystroke.
	result     eval.Result
	evalErr    error
	candidates []suggest.Candidate
	completion string // ghost suffix shown after the cursor

	// History navigation (most recent first).
	histEntries []string
	histPos     int // -1 when not navigating

	view     viewState
	status   string
	width    int
	height   int
	ready    bool
	quitting bool

	styles styles
}

type styles struct {
	title      lipgloss.Style
	prompt     lipgloss.Style
	ghost      lipgloss.Style
	candidates lipgloss.Style
	errText    lipgloss.Style
	statusBar  lipgloss.Style
}

func newStyles(monochrome bool) styles {
	if monochrome {
		plain := lipgloss.NewStyle()
		return styles{
			title:      plain.Bold(true),
			prompt:     plain,
			ghost:      plain.Faint(true),
			candidates: plain.Faint(true),
			errText:    plain.Bold(true),
			statusBar:  plain.Reverse(true),
		}
	}
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		ghost:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		candidates: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		errText:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		statusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
	}
}

// New builds an explorer model. store may be nil; history features are then
// disabled.
func New(root jsonval.Value, inputPath string, cfg config.Config, store *history.Store) Model {
	ti := textinput.New()
	ti.Placeholder = ".path[0] :transform"
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		root:      root,
		inputPath: inputPath,
		cfg:       cfg,
		store:     store,
		input:     ti,
		histPos:   -1,
		styles:    newStyles(cfg.Display.Monochrome),
	}
	m.loadHistory()
	m.evaluate()
	return m
}

// Init starts the file watcher.
func (m Model) Init() tea.Cmd {
	return watchFile(m.inputPath)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := 5 // title, input, candidates, status, spacing
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.refreshViewport()
		return m, nil

	case fileChangedMsg:
		root, err := loadFile(m.inputPath)
		if err != nil {
			m.status = fmt.Sprintf("reload failed: %v", err)
		} else {
			m.root = root
			m.status = "file reloaded"
			m.evaluate()
		}
		return m, watchFile(m.inputPath)

	case watchErrMsg:
		m.status = fmt.Sprintf("watch error: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.completion != "" {
			m.input.SetValue(m.input.Value() + m.completion)
			m.input.CursorEnd()
			m.evaluate()
		}
		return m, nil

	case "enter":
		m.recordHistory()
		return m, nil

	case "up":
		m.navigateHistory(1)
		return m, nil

	case "down":
		m.navigateHistory(-1)
		return m, nil

	case "ctrl+s":
		if m.view == viewSchema {
			m.view = viewResult
		} else {
			m.view = viewSchema
		}
		m.refreshViewport()
		return m, nil

	case "ctrl+y":
		m.copyResult()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.histPos = -1
	m.evaluate()
	return m, cmd
}

// evaluate recomputes the result, candidates, and ghost completion for the
// current input.
func (m *Model) evaluate() {
	expr := m.input.Value()
	m.evalErr = nil
	m.status = ""

	res, err := eval.Run(m.root, expr)
	if err != nil {
		m.evalErr = err
		m.candidates = nil
		m.completion = ""
		m.refreshViewport()
		return
	}
	m.result = res
	m.updateSuggestions(expr)
	m.refreshViewport()
}

// updateSuggestions fills candidates and the ghost completion from the keys
// available at the current position. Suggestions stay off inside a transform
// chain.
func (m *Model) updateSuggestions(expr string) {
	m.candidates = nil
	m.completion = ""

	path, chain := eval.SplitExpr(expr)
	if chain != "" {
		return
	}

	frag := query.LastKeyword(path)

	var pool []string
	switch {
	case m.result.Value != nil && frag == "":
		pool = query.AvailableKeys(m.result.Value)
	default:
		pool = query.AvailableKeys(m.result.Parent)
	}
	if len(pool) == 0 {
		return
	}

	cands := suggest.Candidates(pool, frag)
	if max := m.cfg.Display.MaxCandidates; max > 0 && len(cands) > max {
		cands = cands[:max]
	}
	m.candidates = cands

	if suffix, _, ok := suggest.Completion(pool, frag); ok {
		m.completion = suffix
	}
}

// refreshViewport re-renders the main pane content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMain())
	m.viewport.GotoTop()
}

func (m *Model) renderMain() string {
	if m.evalErr != nil {
		return m.styles.errText.Render(m.evalErr.Error())
	}

	if m.result.Value == nil {
		keys := query.AvailableKeys(m.result.Parent)
		msg := "no match"
		if len(keys) > 0 {
			msg += "\navailable: " + strings.Join(keys, ", ")
		}
		return m.styles.errText.Render(msg)
	}

	if m.view == viewSchema {
		return schema.Format(schema.Infer(m.result.Value, m.cfg.Display.SchemaMaxSamples), 0)
	}
	return jsonval.EncodeIndent(m.result.Value)
}

func (m *Model) copyResult() {
	if m.result.Value == nil {
		m.status = "nothing to copy"
		return
	}
	if err := clipboard.WriteAll(jsonval.EncodeIndent(m.result.Value)); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = "copied to clipboard"
}

func (m *Model) loadHistory() {
	if m.store == nil {
		return
	}
	entries, err := m.store.Recent(context.Background(), 0)
	if err != nil {
		return
	}
	m.histEntries = make([]string, len(entries))
	for i, e := range entries {
		m.histEntries[i] = e.Query
	}
}

func (m *Model) recordHistory() {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" || m.store == nil {
		return
	}
	if err := m.store.AddQuery(context.Background(), expr); err != nil {
		m.status = fmt.Sprintf("history save failed: %v", err)
		return
	}
	m.histEntries = append([]string{expr}, removeString(m.histEntries, expr)...)
	m.histPos = -1
	m.status = "saved to history"
}

// navigateHistory moves through recorded queries. dir 1 goes further back,
// dir -1 forward toward the live input.
func (m *Model) navigateHistory(dir int) {
	if len(m.histEntries) == 0 {
		return
	}
	pos := m.histPos + dir
	if pos < -1 {
		pos = -1
	}
	if pos >= len(m.histEntries) {
		pos = len(m.histEntries) - 1
	}
	m.histPos = pos
	if pos == -1 {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.histEntries[pos])
	}
	m.input.CursorEnd()
	m.evaluate()
}

func removeString(list []string, s string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// View renders the full screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.title.Render(fmt.Sprintf("jdx - %s", m.inputPath)))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	if m.completion != "" {
		b.WriteString(m.styles.ghost.Render(m.completion))
	}
	b.WriteString("\n")

	b.WriteString(m.renderCandidates())
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatus())

	return b.String()
}

func (m Model) renderCandidates() string {
	if len(m.candidates) == 0 {
		return ""
	}
	names := make([]string, len(m.candidates))
	for i, c := range m.candidates {
		names[i] = c.Text
	}
	return m.styles.candidates.Render(strings.Join(names, "  "))
}

func (m Model) renderStatus() string {
	mode := "result"
	if m.view == viewSchema {
		mode = "schema"
	}
	left := fmt.Sprintf(" %s | depth %d ", mode, m.result.Depth)
	help := "tab complete | ctrl+s schema | ctrl+y copy | esc quit"
	if m.status != "" {
		help = m.status
	}
	return m.styles.statusBar.Render(left + "| " + help)
}
