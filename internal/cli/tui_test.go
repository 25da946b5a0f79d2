package cli

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/pkg/graph"
	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/view"
)

func testExploreModel(t *testing.T) exploreModel {
	t.Helper()
	snap := graph.NewSnapshot(
		[]graph.Node{
			{ID: "d1", Kind: graph.KindDecision, Label: "Use Postgres", Size: graph.SizeForKind(graph.KindDecision)},
			{ID: "d2", Kind: graph.KindDecision, Label: "Adopt Kafka", Size: graph.SizeForKind(graph.KindDecision)},
			{ID: "e1", Kind: graph.KindEntity, Label: "PostgreSQL", Size: graph.SizeForKind(graph.KindEntity)},
		},
		[]graph.Edge{
			{ID: "x1", Source: "d1", Target: "e1", Relationship: graph.RelInvolves, Weight: 1},
			{ID: "x2", Source: "d2", Target: "e1", Relationship: graph.RelInvolves, Weight: 1},
		},
	)
	logger := charmlog.New(io.Discard)
	opts := layout.Options{Logger: logger}
	st := view.New(snap, layout.Compute(snap, layout.AlgorithmForce, opts), logger)
	return newExploreModel(st, opts)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m exploreModel, msgs ...tea.Msg) exploreModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(exploreModel)
		if !ok {
			t.Fatalf("Update returned %T, want exploreModel", next)
		}
	}
	return m
}

func TestExplore_TabFocusAndSelect(t *testing.T) {
	m := testExploreModel(t)

	m = update(t, m, key("tab"))
	if m.st.FocusedID() != "d1" {
		t.Errorf("focused = %q, want d1", m.st.FocusedID())
	}

	m = update(t, m, key("enter"))
	if m.st.SelectedID() != "d1" {
		t.Errorf("selected = %q, want d1", m.st.SelectedID())
	}

	m = update(t, m, key("esc"))
	if m.st.SelectedID() != "" {
		t.Error("esc should clear selection")
	}
	if m.st.FocusedID() != "d1" {
		t.Error("esc should leave focus on first press")
	}
}

func TestExplore_SearchConsumesKeys(t *testing.T) {
	m := testExploreModel(t)

	// "/" opens search; subsequent letters go to the query, not navigation.
	m = update(t, m, key("/"), key("k"), key("a"), key("f"), key("k"), key("a"))
	if m.st.FocusedID() != "" {
		t.Errorf("typing in search moved focus to %q", m.st.FocusedID())
	}
	if m.query != "kafka" {
		t.Errorf("query = %q, want kafka", m.query)
	}

	m = update(t, m, key("enter"))
	if m.searching {
		t.Error("enter should commit the search")
	}
	if m.st.FocusedID() != "d2" {
		t.Errorf("search should focus the match, got %q", m.st.FocusedID())
	}
}

func TestExplore_SearchEscapeCancels(t *testing.T) {
	m := testExploreModel(t)
	m = update(t, m, key("/"), key("x"), key("esc"))
	if m.searching || m.query != "" {
		t.Error("esc should cancel search input")
	}
	if m.st.SearchQuery() != "" {
		t.Error("cancelled search should not reach the state")
	}
}

func TestExplore_PathfindingToggle(t *testing.T) {
	m := testExploreModel(t)

	m = update(t, m, key("p"))
	if !m.st.Pathfinding() {
		t.Fatal("p should enable pathfinding")
	}

	m = update(t, m, key("esc"))
	if m.st.Pathfinding() {
		t.Error("esc should leave pathfinding mode")
	}
}

func TestExplore_AlgorithmSwitchKeepsSelection(t *testing.T) {
	m := testExploreModel(t)
	m = update(t, m, key("tab"), key("enter"))

	m = update(t, m, key("4"))
	if got := m.st.Layout().Algorithm; got != layout.AlgorithmRadial {
		t.Errorf("algorithm = %q, want radial", got)
	}
	if m.st.SelectedID() != "d1" {
		t.Error("selection should survive an algorithm switch")
	}
}

func TestExplore_ViewRendersNodes(t *testing.T) {
	m := testExploreModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	for _, label := range []string{"Use Postgres", "Adopt Kafka", "PostgreSQL"} {
		if !strings.Contains(out, label) {
			t.Errorf("view missing node label %q", label)
		}
	}
	if !strings.Contains(out, "force") {
		t.Error("view should show the active algorithm")
	}
}

func TestExplore_MouseHover(t *testing.T) {
	m := testExploreModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	placed := m.placeNodes()
	if len(placed) == 0 {
		t.Fatal("no nodes placed")
	}
	p := placed[0]

	m = update(t, m, tea.MouseMsg{X: p.col, Y: p.row + 1, Action: tea.MouseActionMotion})
	if m.st.HoveredID() != p.id {
		t.Errorf("hovered = %q, want %q", m.st.HoveredID(), p.id)
	}

	m = update(t, m, tea.MouseMsg{X: 0, Y: m.height - 1, Action: tea.MouseActionMotion})
	if m.st.HoveredID() != "" {
		t.Error("moving off nodes should clear hover")
	}
}
