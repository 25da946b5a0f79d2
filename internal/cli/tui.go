package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/view"
)

// Node styles by derived flag, in priority order.
var (
	nodeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	nodeFocusedStyle  = lipgloss.NewStyle().Underline(true).Foreground(colorWhite)
	nodePathStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	nodeHoveredStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	nodeDimmedStyle   = lipgloss.NewStyle().Foreground(colorDim)
	nodeDecisionStyle = lipgloss.NewStyle().Foreground(colorWhite)
	nodeEntityStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	maxLabelWidth = 18
	chromeLines   = 4 // header, detail, search, help
)

// placedNode is one node projected onto the terminal grid.
type placedNode struct {
	id    string
	label string
	col   int
	row   int
}

// exploreModel is the bubbletea model for the interactive graph explorer.
// All interaction semantics live in view.State; the model only translates
// terminal events and draws.
type exploreModel struct {
	st   *view.State
	opts layout.Options

	width  int
	height int

	searching bool
	query     string
}

// newExploreModel creates the explorer over an initialized interaction
// state.
func newExploreModel(st *view.State, opts layout.Options) exploreModel {
	return exploreModel{st: st, opts: opts, width: 100, height: 30}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

// updateSearch consumes all key events while the search input has focus.
// Nothing is forwarded to the interaction state until the query commits.
func (m exploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.st.Search(m.query)
	case "esc":
		m.searching = false
		m.query = ""
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
		}
	}
	return m, nil
}

func (m exploreModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.st.HandleKey(view.KeyUp)
	case "down", "j":
		m.st.HandleKey(view.KeyDown)
	case "left", "h":
		m.st.HandleKey(view.KeyLeft)
	case "right", "l":
		m.st.HandleKey(view.KeyRight)
	case "tab":
		m.st.HandleKey(view.KeyTab)
	case "shift+tab":
		m.st.HandleKey(view.KeyShiftTab)
	case "home":
		m.st.HandleKey(view.KeyHome)
	case "end":
		m.st.HandleKey(view.KeyEnd)
	case "enter":
		m.st.HandleKey(view.KeyEnter)
	case " ":
		m.st.HandleKey(view.KeySpace)
	case "esc":
		if m.st.Pathfinding() {
			m.st.SetPathfinding(false)
		} else {
			m.st.HandleKey(view.KeyEscape)
		}
	case "p":
		m.st.SetPathfinding(!m.st.Pathfinding())
	case "/":
		m.searching = true
		m.query = ""
	case "n":
		m.st.FindNext()
	case "c":
		m.st.ClearFilters()
		m.st.Search("")
	case "1":
		m.switchAlgorithm(layout.AlgorithmForce)
	case "2":
		m.switchAlgorithm(layout.AlgorithmCluster)
	case "3":
		m.switchAlgorithm(layout.AlgorithmHierarchy)
	case "4":
		m.switchAlgorithm(layout.AlgorithmRadial)
	}
	return m, nil
}

func (m exploreModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	hit := m.nodeAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if hit == "" {
			m.st.HoverLeave()
		} else {
			m.st.HoverEnter(hit)
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && hit != "" {
			m.st.Click(hit)
		}
	}
	return m, nil
}

// switchAlgorithm recomputes positions for the current snapshot and swaps
// the layout in place; selection, focus, and filters survive the switch.
func (m exploreModel) switchAlgorithm(name string) {
	if m.st.Layout().Algorithm == name {
		return
	}
	m.st.SetLayout(layout.Compute(m.st.Snapshot(), name, m.opts))
}

// =============================================================================
// Projection
// =============================================================================

// placeNodes scales layout positions onto the canvas grid. Labels keep their
// left edge at the projected center, clipped to the canvas.
func (m exploreModel) placeNodes() []placedNode {
	snap := m.st.Snapshot()
	result := m.st.Layout()
	canvasW, canvasH := m.canvasSize()
	if len(snap.Nodes) == 0 || canvasW < maxLabelWidth || canvasH < 1 {
		return nil
	}

	minX, minY := result.Positions[snap.Nodes[0].ID].X, result.Positions[snap.Nodes[0].ID].Y
	maxX, maxY := minX, minY
	for _, n := range snap.Nodes {
		x, y := result.Center(n)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	placed := make([]placedNode, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		x, y := result.Center(n)
		col := int((x - minX) / spanX * float64(canvasW-maxLabelWidth))
		row := int((y - minY) / spanY * float64(canvasH-1))
		placed = append(placed, placedNode{
			id:    n.ID,
			label: clipLabel(n.Label),
			col:   col,
			row:   row,
		})
	}
	return placed
}

func (m exploreModel) canvasSize() (w, h int) {
	return m.width, m.height - chromeLines
}

// nodeAt hit-tests a terminal cell against the projected node labels.
// Row 0 of the canvas sits below the header line.
func (m exploreModel) nodeAt(x, y int) string {
	row := y - 1
	for _, p := range m.placeNodes() {
		if p.row == row && x >= p.col && x < p.col+len([]rune(p.label)) {
			return p.id
		}
	}
	return ""
}

func clipLabel(label string) string {
	r := []rune(label)
	if len(r) <= maxLabelWidth {
		return label
	}
	return string(r[:maxLabelWidth-1]) + "…"
}

// =============================================================================
// View
// =============================================================================

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.canvasView())
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(m.searchView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m exploreModel) headerView() string {
	snap := m.st.Snapshot()
	header := StyleTitle.Render("decklog") +
		StyleDim.Render(fmt.Sprintf("  %s · %d nodes · %d edges",
			m.st.Layout().Algorithm, len(snap.Nodes), len(snap.Edges)))
	if m.st.Pathfinding() {
		header += "  " + StyleWarning.Render("pathfinding")
	}
	return header
}

func (m exploreModel) canvasView() string {
	_, canvasH := m.canvasSize()
	nodeFlags, _ := m.st.Flags()

	// Per-row segment lists; later segments skip cells already drawn so
	// overlapping labels stay readable.
	rows := make([]string, canvasH)
	occupied := make([]int, canvasH) // rightmost drawn column per row
	for i := range occupied {
		occupied[i] = -1
	}

	for _, p := range m.placeNodes() {
		if p.row < 0 || p.row >= canvasH {
			continue
		}
		col := p.col
		if col <= occupied[p.row] {
			col = occupied[p.row] + 2
		}
		width := len([]rune(p.label))
		if col+width > m.width {
			continue
		}
		pad := col - (occupied[p.row] + 1)
		rows[p.row] += strings.Repeat(" ", pad) + m.styleNode(p, nodeFlags[p.id])
		occupied[p.row] = col + width - 1
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m exploreModel) styleNode(p placedNode, f view.NodeFlags) string {
	n, _ := m.st.Snapshot().Node(p.id)
	style := nodeEntityStyle
	if n.IsDecision() {
		style = nodeDecisionStyle
	}
	switch {
	case f.IsDimmed:
		style = nodeDimmedStyle
	case f.IsSelected:
		style = nodeSelectedStyle
	case f.IsOnPath:
		style = nodePathStyle
	case f.IsHovered:
		style = nodeHoveredStyle
	case f.IsFocused:
		style = nodeFocusedStyle
	}
	if f.IsFocused && !f.IsSelected {
		style = style.Underline(true)
	}
	return style.Render(p.label)
}

func (m exploreModel) detailView() string {
	if path := m.st.Path(); len(path.NodeIDs) > 0 {
		labels := make([]string, len(path.NodeIDs))
		for i, id := range path.NodeIDs {
			n, _ := m.st.Snapshot().Node(id)
			labels[i] = n.Label
		}
		return StyleDim.Render("path: ") +
			StyleValue.Render(strings.Join(labels, " → ")) +
			StyleDim.Render(fmt.Sprintf(" (%d hops)", path.Hops()))
	}

	id := m.st.SelectedID()
	if id == "" {
		id = m.st.FocusedID()
	}
	if id == "" {
		return StyleDim.Render("no node focused")
	}
	n, ok := m.st.Snapshot().Node(id)
	if !ok {
		return ""
	}
	detail := StyleValue.Render(n.Label) +
		StyleDim.Render(fmt.Sprintf("  %s · %d connections", n.Kind, m.st.Adjacency().Degree(id)))
	if scope := n.Field(view.FieldScope); scope != "" {
		detail += StyleDim.Render(" · " + scope)
	}
	return detail
}

func (m exploreModel) searchView() string {
	if m.searching {
		return StyleValue.Render("/" + m.query + "▌")
	}
	if q := m.st.SearchQuery(); q != "" {
		return StyleDim.Render(fmt.Sprintf("search %q: %d matches (n: next)", q, len(m.st.SearchMatches())))
	}
	return ""
}

func (m exploreModel) helpView() string {
	return StyleDim.Render("arrows/tab focus · enter select · p path · / search · 1-4 layout · q quit")
}
