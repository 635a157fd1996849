package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// browseDoc is one document entry in the browser.
type browseDoc struct {
	ID    string
	Title string
	Body  string // empty when browsing a saved run
}

// browseCluster is one cluster entry in the browser.
type browseCluster struct {
	Label int
	Terms []string // empty when browsing a saved run
	Docs  []browseDoc
}

// browseData is everything the browser shows.
type browseData struct {
	Source   string // corpus path or "run <id> (<corpus>)"
	Clusters []browseCluster
}

// browseView enumerates the browser screens.
type browseView int

const (
	// clustersView lists the clusters.
	clustersView browseView = iota
	// docsView lists the documents of the selected cluster.
	docsView
	// docView shows one document.
	docView
)

// browseKeyMap binds the browser keys.
type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Filter, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Back, k.Filter, k.Quit},
	}
}

// defaultBrowseKeys returns the browser key bindings.
func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseModel is the Bubble Tea model for the cluster browser.
type browseModel struct {
	data  browseData
	keys  browseKeyMap
	help  help.Model
	theme Theme

	view      browseView
	cursor    int // selected cluster in clustersView
	docCursor int // selected document in docsView
	filter    textinput.Model
	filtering bool

	width  int
	height int
}

// newBrowseModel creates the browser over the given data.
func newBrowseModel(data browseData) browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter by id or title"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	return browseModel{
		data:   data,
		keys:   defaultBrowseKeys(),
		help:   help.New(),
		theme:  DefaultTheme(),
		filter: ti,
	}
}

// Init implements tea.Model.
func (m browseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.filtering {
		// Forward cursor blink and other component messages.
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for the active view.
func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m = m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m = m.moveCursor(1)
	case key.Matches(msg, m.keys.Enter):
		m = m.drillDown()
	case key.Matches(msg, m.keys.Back):
		m = m.goBack()
	case key.Matches(msg, m.keys.Filter):
		if m.view == docsView {
			m.filtering = true
			return m, m.filter.Focus()
		}
	}
	return m, nil
}

// handleFilterKey routes keys to the filter input while it is focused.
func (m browseModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.docCursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.docCursor = 0
	return m, cmd
}

// moveCursor moves the selection in the active list, clamping at both ends.
func (m browseModel) moveCursor(delta int) browseModel {
	switch m.view {
	case clustersView:
		m.cursor = clamp(m.cursor+delta, 0, len(m.data.Clusters)-1)
	case docsView:
		m.docCursor = clamp(m.docCursor+delta, 0, len(m.filteredDocs())-1)
	case docView:
		// No cursor on the document page.
	}
	return m
}

// clamp bounds v to [lo, hi], collapsing to lo when the range is empty.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// drillDown opens the selection: a cluster opens its document list, a
// document opens its detail page.
func (m browseModel) drillDown() browseModel {
	switch m.view {
	case clustersView:
		if len(m.data.Clusters) == 0 {
			return m
		}
		m.view = docsView
		m.docCursor = 0
		m.filter.SetValue("")
	case docsView:
		docs := m.filteredDocs()
		if len(docs) == 0 || m.docCursor >= len(docs) {
			return m
		}
		m.view = docView
	case docView:
		// Already at the deepest page.
	}
	return m
}

// goBack returns to the previous screen.
func (m browseModel) goBack() browseModel {
	switch m.view {
	case docView:
		m.view = docsView
	case docsView:
		m.view = clustersView
		m.filter.SetValue("")
		m.filtering = false
	case clustersView:
		// Top level.
	}
	return m
}

// selectedCluster returns the cluster under the cursor.
func (m browseModel) selectedCluster() browseCluster {
	if m.cursor >= len(m.data.Clusters) {
		return browseCluster{}
	}
	return m.data.Clusters[m.cursor]
}

// filteredDocs returns the selected cluster's documents matching the
// filter query, case-insensitively, against id and title.
func (m browseModel) filteredDocs() []browseDoc {
	docs := m.selectedCluster().Docs
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		return docs
	}

	var out []browseDoc
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.ID), query) || strings.Contains(strings.ToLower(d.Title), query) {
			out = append(out, d)
		}
	}
	return out
}

// View implements tea.Model.
func (m browseModel) View() string {
	var body string
	switch m.view {
	case docsView:
		body = m.renderDocs()
	case docView:
		body = m.renderDoc()
	default:
		body = m.renderClusters()
	}
	return m.renderHeader() + "\n\n" + body + "\n" + m.help.View(m.keys)
}

// renderHeader renders the title bar.
func (m browseModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("corral browse")
	source := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.data.Source)
	return title + "  " + source
}

// renderClusters renders the cluster list.
func (m browseModel) renderClusters() string {
	if len(m.data.Clusters) == 0 {
		return "No clusters.\n"
	}

	var b strings.Builder
	for i, c := range m.data.Clusters {
		line := fmt.Sprintf("Cluster %d  %d documents", c.Label, len(c.Docs))
		if len(c.Terms) > 0 {
			line += "  " + strings.Join(c.Terms, " ")
		}
		b.WriteString(m.renderLine(line, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDocs renders the document list for the selected cluster.
func (m browseModel) renderDocs() string {
	var b strings.Builder
	c := m.selectedCluster()
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Cluster %d", c.Label)))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	docs := m.filteredDocs()
	if len(docs) == 0 {
		b.WriteString("No matching documents.\n")
		return b.String()
	}
	for i, d := range docs {
		line := fmt.Sprintf("%-10s %s", d.ID, truncateTitle(d.Title, 70))
		b.WriteString(m.renderLine(line, i == m.docCursor && !m.filtering))
		b.WriteString("\n")
	}
	return b.String()
}

// renderDoc renders a single document page.
func (m browseModel) renderDoc() string {
	docs := m.filteredDocs()
	if m.docCursor >= len(docs) {
		return "No document selected.\n"
	}
	d := docs[m.docCursor]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render("id " + d.ID))
	b.WriteString("\n\n")
	if d.Body == "" {
		b.WriteString("Document bodies are not stored with saved runs.\n")
		b.WriteString("Browse with --corpus to read them.\n")
	} else {
		b.WriteString(wrapBody(d.Body, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLine renders one list line, highlighting the selection.
func (m browseModel) renderLine(line string, selected bool) string {
	if !selected {
		return "  " + line
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Secondary).Render("> " + line)
}

// wrapBody wraps text to the window width with a small margin.
func wrapBody(s string, width int) string {
	if width <= 0 {
		width = 80
	}
	return lipgloss.NewStyle().Width(width - 4).Render(s)
}
