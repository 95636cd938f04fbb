// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package wizard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"go.uber.org/zap"
)

const sidebarWidth = 24

type analysisDoneMsg struct{}

type deployLineMsg string

type deployDoneMsg struct{}

// Model is the root bubbletea model for the wizard.
type Model struct {
	flow   *Flow
	opts   Options
	logger *zap.Logger

	width  int
	height int

	cursor  int // category row or field row
	visited map[string]bool

	sidebarFocused bool
	sidebarCursor  int

	editing bool
	input   textinput.Model
	errMsg  string

	analyzing bool
	analysis  *Analysis
	spin      spinner.Model

	deployLog    []string
	deployCh     <-chan string
	cancelDeploy context.CancelFunc

	report   string
	viewport viewport.Model

	crash     string
	cancelled bool
	confirmed bool
}

// NewModel creates a wizard model. A preselected category skips the
// category screen.
func NewModel(opts Options) (Model, error) {
	opts = opts.withDefaults()
	ti := textinput.New()
	ti.CharLimit = 120
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		flow:    NewFlow(opts.Flavor, WithLogger(opts.Logger)),
		opts:    opts,
		logger:  opts.Logger,
		visited: make(map[string]bool),
		input:   ti,
		spin:    sp,
	}
	if opts.Category != "" {
		if err := m.flow.SelectCategory(opts.Category); err != nil {
			return Model{}, err
		}
		m.revalidate()
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update recovers from panics in the wizard and replaces the whole UI with
// a reload prompt.
func (m Model) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("wizard crashed", zap.Any("panic", r), zap.Stack("stack"))
			}
			if m.cancelDeploy != nil {
				m.cancelDeploy()
			}
			m.crash = fmt.Sprint(r)
			next, cmd = m, tea.Quit
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = max(m.height-4, 5)
		return m, nil

	case spinner.TickMsg:
		if !m.analyzing && m.flow.Phase() != PhaseDeploying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case analysisDoneMsg:
		return m.finishAnalysis()

	case deployLineMsg:
		m.deployLog = append(m.deployLog, string(msg))
		return m, waitDeploy(m.deployCh)

	case deployDoneMsg:
		return m.finishDeploy()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		if msg.String() == "q" && m.flow.Phase() != PhaseSummary {
			return m.quit()
		}
		if msg.String() == "s" && m.flow.Phase() == PhaseSteps {
			m.sidebarFocused = !m.sidebarFocused
			m.sidebarCursor = m.flow.Index()
			return m, nil
		}
		if m.sidebarFocused {
			return m.updateSidebar(msg)
		}
	}

	switch m.flow.Phase() {
	case PhaseCategorySelect:
		return m.updateCategory(msg)
	case PhaseSteps:
		return m.updateStep(msg)
	case PhaseSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

// View renders the current phase. A panic while rendering shows the reload
// prompt instead.
func (m Model) View() (out string) {
	if m.crash != "" {
		return m.viewCrash()
	}
	defer func() {
		if r := recover(); r != nil {
			out = errorStyle.Render(ErrCrashed.Error()) + "\n"
		}
	}()

	switch m.flow.Phase() {
	case PhaseCategorySelect:
		return m.viewCategory()
	case PhaseSteps:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " "+m.viewStep())
	case PhaseDeploying:
		return m.viewDeploy()
	case PhaseSummary:
		return m.viewSummary()
	}
	return ""
}

// Cancelled returns true if the user quit before the summary.
func (m Model) Cancelled() bool { return m.cancelled }

// Confirmed returns true if the user closed the summary screen.
func (m Model) Confirmed() bool { return m.confirmed }

// Crashed returns true if the model recovered from a panic.
func (m Model) Crashed() bool { return m.crash != "" }

// Flow exposes the underlying flow.
func (m Model) Flow() *Flow { return m.flow }

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancelDeploy != nil {
		m.cancelDeploy()
	}
	m.cancelled = m.flow.Phase() != PhaseSummary
	return m, tea.Quit
}

func (m *Model) revalidate() {
	if m.flow.Phase() != PhaseSteps {
		return
	}
	if _, err := m.flow.Revalidate(); err != nil {
		m.logger.Debug("revalidate", zap.Error(err))
	}
}

// --- Category Step ---

func (m Model) updateCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	cats := preset.Categories()
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(cats)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if idx := int(key.String()[0]-'0') - 1; idx < len(cats) {
			m.cursor = idx
		}
	case "enter", " ":
		if err := m.flow.SelectCategory(cats[m.cursor]); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.cursor = 0
		m.revalidate()
	}
	return m, nil
}

func (m Model) viewCategory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TokenSim — What are you tokenizing?"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s wizard. Each category seeds sensible defaults you can change later.", m.flow.Flavor())))
	b.WriteString("\n\n")

	for i, p := range preset.Presets {
		prefix := "  "
		label := fmt.Sprintf("%d. %-12s", i+1, p.Category)
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		b.WriteString(prefix + label + " " + dimStyle.Render(p.Description) + "\n")
	}

	if len(m.opts.Projects) > 0 {
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Live projects (%s)", m.opts.ProjectsOrigin)))
		b.WriteString("\n")
		for i, p := range m.opts.Projects {
			if i == 5 {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.opts.Projects)-5)) + "\n")
				break
			}
			b.WriteString(fmt.Sprintf("  %-32s %-14s %5.1f%% funded\n",
				truncate(p.Title, 32), truncate(p.Location, 14), p.FundedPct()))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ to move, Enter to select, q to quit"))
	return b.String()
}

// --- Wizard Steps ---

func (m Model) currentFields() []Field {
	spec, ok := m.flow.CurrentSpec()
	if !ok || m.flow.Tabs() == nil {
		return nil
	}
	return spec.Fields(m.flow.Tabs().Active().ID)
}

func (m Model) updateStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	fields := m.currentFields()
	m.errMsg = ""

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
	case "enter", " ", "right", "l":
		if m.cursor >= len(fields) {
			return m, nil
		}
		f := fields[m.cursor]
		if f.ReadOnly {
			return m, nil
		}
		switch f.Kind {
		case KindChoice, KindBool:
			if err := m.flow.Update(f.Section, f.Key, f.Cycle(m.flow.Snapshot())); err != nil {
				m.errMsg = err.Error()
			}
			m.revalidate()
		default:
			if key.String() != "enter" {
				return m, nil
			}
			m.editing = true
			m.input.SetValue(f.Display(m.flow.Snapshot()))
			m.input.Placeholder = placeholder(f)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case "tab":
		cur, _ := m.flow.Current()
		if err := m.flow.NextTab(); err != nil {
			if errors.Is(err, ErrStepInvalid) {
				m.errMsg = "Complete the required fields of this step first."
			} else {
				m.errMsg = err.Error()
			}
			return m, nil
		}
		m.cursor = 0
		if m.flow.Phase() == PhaseDeploying {
			m.visited[cur.ID] = true
			return m.startDeploy()
		}
		if next, _ := m.flow.Current(); next.ID != cur.ID {
			m.visited[cur.ID] = true
		}
		m.revalidate()
	case "shift+tab", "esc":
		if err := m.flow.PrevTab(); err != nil {
			m.errMsg = err.Error()
		}
		m.cursor = 0
		m.revalidate()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		tabs := m.flow.Tabs().Tabs()
		if idx := int(key.String()[0]-'0') - 1; idx < len(tabs) {
			m.flow.Tabs().Sync(tabs[idx].ID)
			m.cursor = 0
		}
	case "a":
		if m.analyzing {
			return m, nil
		}
		m.analyzing = true
		return m, tea.Batch(m.spin.Tick, tea.Tick(m.opts.AnalysisDelay, func(time.Time) tea.Msg {
			return analysisDoneMsg{}
		}))
	}
	return m, nil
}

func placeholder(f Field) string {
	switch f.Kind {
	case KindNumber:
		return "e.g. 1,250,000"
	case KindList:
		if len(f.Options) > 0 {
			return strings.Join(f.Options, ", ")
		}
		return "comma separated"
	}
	return f.Label
}

func (m Model) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.currentFields()
	switch key.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		if m.cursor >= len(fields) {
			m.editing = false
			return m, nil
		}
		f := fields[m.cursor]
		v, err := f.Parse(m.input.Value())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		if err := m.flow.Update(f.Section, f.Key, v); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.editing = false
		m.input.Blur()
		m.revalidate()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) finishAnalysis() (tea.Model, tea.Cmd) {
	m.analyzing = false
	a, err := m.flow.RunAnalysis()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.analysis = &a
	m.revalidate()
	return m, nil
}

func (m Model) viewStep() string {
	var b strings.Builder
	cur, _ := m.flow.Current()
	steps := m.flow.Steps()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Step %d/%d — %s %s", m.flow.Index()+1, len(steps), cur.Icon, cur.Label)))
	if p, ok := preset.Lookup(m.flow.Category()); ok && p.IsOptional(preset.StepID(cur.ID)) {
		b.WriteString(" " + dimStyle.Render("(optional)"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	sn := m.flow.Snapshot()
	fields := m.currentFields()
	for i, f := range fields {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		val := f.Display(sn)
		switch {
		case m.editing && i == m.cursor:
			val = m.input.View()
		case val == "":
			val = dimStyle.Render("—")
		case f.ReadOnly:
			val = dimStyle.Render(val)
		default:
			val = selectedStyle.Render(val)
		}
		hint := ""
		if i == m.cursor && !m.editing && (f.Kind == KindChoice || f.Kind == KindList) {
			if opts := f.Choices(sn); len(opts) > 0 {
				hint = "\n    " + dimStyle.Render(wrapWords(opts, "    ", m.contentWidth()-4))
			}
		}
		b.WriteString(fmt.Sprintf("%s%-26s %s%s\n", prefix, f.Label+":", val, hint))
	}

	if m.analyzing {
		b.WriteString("\n" + m.spin.View() + " Analyzing project...\n")
	} else if m.analysis != nil && cur.ID == string(preset.StepAsset) {
		lo, _ := m.analysis.Range.Low.Float64()
		hi, _ := m.analysis.Range.High.Float64()
		b.WriteString("\n" + subtitleStyle.Render(m.analysis.Headline) + "\n")
		b.WriteString(fmt.Sprintf("Estimated range: %s – %s\n", FormatNumber(lo), FormatNumber(hi)))
	}

	b.WriteString(m.renderSummaryCard(cur))

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	status := dimStyle.Render("incomplete")
	if m.flow.Valid() {
		status = successStyle.Render("ready")
	}
	help := "↑/↓ move, Enter edit, Tab next, Esc back, 1-9 tab, a analyze, s sidebar, q quit"
	if m.editing {
		help = "Enter to save, Esc to cancel"
	}
	b.WriteString(helpStyle.Render(help) + "  " + status)
	return b.String()
}

func (m Model) renderTabs() string {
	nav := m.flow.Tabs()
	if nav == nil {
		return ""
	}
	var parts []string
	for i, t := range nav.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t.Label)
		if i == nav.Index() {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSummaryCard(cur preset.StepDescriptor) string {
	spec, ok := Spec(preset.StepID(cur.ID))
	if !ok || spec.Summary == nil {
		return ""
	}
	fields := spec.Summary(m.flow.Snapshot())
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", dimStyle.Render(k), fields[k]))
	}
	return "\n" + cardStyle.Render(strings.Join(lines, "\n")) + "\n"
}

// --- Sidebar Navigation ---

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, s := range m.flow.Steps() {
		prefix := "  "
		if m.sidebarFocused && m.sidebarCursor == i {
			prefix = cursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%d. %s", i+1, s.Label)
		var line string
		switch {
		case i == m.flow.Index():
			line = prefix + sidebarActiveStyle.Render(">> "+label)
		case m.visited[s.ID]:
			line = prefix + sidebarVisitedStyle.Render(label+" ✓")
		default:
			line = prefix + dimStyle.Render(label)
		}
		b.WriteString(line + "\n")
	}
	style := sidebarStyle
	if m.sidebarFocused {
		style = sidebarFocusedStyle
	}
	return style.Render(b.String())
}

// updateSidebar handles keys when the sidebar is focused. Only steps up to
// the current one can be selected.
func (m Model) updateSidebar(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	steps := m.flow.Steps()
	switch key.String() {
	case "up", "k":
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
	case "down", "j":
		if m.sidebarCursor < len(steps)-1 {
			m.sidebarCursor++
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if idx := int(key.String()[0]-'0') - 1; idx < len(steps) {
			m.sidebarCursor = idx
		}
	case "enter":
		if err := m.flow.JumpTo(m.sidebarCursor); err != nil {
			m.errMsg = "Finish the current step before jumping ahead."
		} else {
			m.cursor = 0
			m.revalidate()
		}
		m.sidebarFocused = false
	case "esc":
		m.sidebarFocused = false
	}
	return m, nil
}

// --- Deploy ---

func (m Model) startDeploy() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelDeploy = cancel
	m.deployLog = nil
	m.deployCh = Deploy(ctx, DeployLines(m.flow.Snapshot()), m.opts.DeployDelay)
	return m, tea.Batch(m.spin.Tick, waitDeploy(m.deployCh))
}

func waitDeploy(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return deployDoneMsg{}
		}
		return deployLineMsg(line)
	}
}

func (m Model) finishDeploy() (tea.Model, tea.Cmd) {
	if m.cancelDeploy != nil {
		m.cancelDeploy()
		m.cancelDeploy = nil
	}
	if m.flow.Phase() != PhaseDeploying {
		return m, nil
	}
	if err := m.flow.DeployDone(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	in := ReportFromFlow(m.flow, true)
	in.SessionID = m.opts.SessionID
	in.Author = m.opts.Author
	m.report = Report(in)
	rendered, err := RenderReport(m.report, m.contentWidth())
	if err != nil {
		m.logger.Debug("rendering report", zap.Error(err))
		rendered = m.report
	}
	m.viewport = viewport.New(m.contentWidth(), max(m.height-4, 10))
	m.viewport.SetContent(rendered)
	return m, nil
}

func (m Model) viewDeploy() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Deploying " + m.flow.Snapshot()[state.ProjectInfo].String("name")))
	b.WriteString("\n\n")
	for _, line := range m.deployLog {
		b.WriteString(successStyle.Render("✓ ") + line + "\n")
	}
	b.WriteString(m.spin.View() + " working...\n")
	b.WriteString(helpStyle.Render("Simulation only, nothing is deployed. q to abort"))
	return b.String()
}

// --- Summary ---

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "q":
			m.confirmed = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Simulation complete"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString(helpStyle.Render("↑/↓ to scroll, Enter or q to finish"))
	return b.String()
}

func (m Model) viewCrash() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Something went wrong."))
	b.WriteString("\n\n")
	b.WriteString(ErrCrashed.Error())
	b.WriteString("\n")
	return b.String()
}

// --- Helpers ---

// contentWidth returns the available width for step content, accounting for sidebar.
func (m Model) contentWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 40 {
		w = 40
	}
	return w
}

// wrapWords joins words with ", " and wraps to maxWidth, indenting
// continuation lines with the given indent string.
func wrapWords(words []string, indent string, maxWidth int) string {
	if maxWidth < 20 {
		maxWidth = 20
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		item := w
		if i < len(words)-1 {
			item += ","
		}
		if lineLen > 0 && lineLen+1+len(item) > maxWidth {
			b.WriteString("\n" + indent)
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(item)
		lineLen += len(item)
	}
	return b.String()
}

// truncate cuts s to max terminal cells, ending in an ellipsis when cut.
func truncate(s string, max int) string {
	return ansi.Truncate(s, max, "…")
}
