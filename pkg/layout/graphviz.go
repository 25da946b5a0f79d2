package layout

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mlorenzen/decklog/pkg/graph"
)

// pointsPerUnit converts Graphviz inches to layout units.
const pointsPerUnit = 72.0

// GraphvizLayerizer implements Layerizer with the Graphviz dot engine.
//
// The snapshot is serialized to DOT (nodes in sorted-ID order so the input,
// and therefore dot's output, is deterministic), laid out, and read back via
// the machine-readable "plain" output format. Node boxes are registered as
// fixed sizes so dot avoids overlap; dot's internal cycle breaking makes
// cyclic relationship structures safe.
type GraphvizLayerizer struct{}

// NewGraphvizLayerizer creates the default dot-backed layerizer.
func NewGraphvizLayerizer() *GraphvizLayerizer {
	return &GraphvizLayerizer{}
}

// Layerize computes ranked box-center positions for every node.
func (l *GraphvizLayerizer) Layerize(ctx context.Context, s *graph.Snapshot, opts HierarchyOptions) (map[string]Position, error) {
	dot := buildDOT(s, opts)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format("plain"), &buf); err != nil {
		return nil, fmt.Errorf("dot layout: %w", err)
	}

	centers, err := parsePlain(buf.String())
	if err != nil {
		return nil, err
	}
	for _, n := range s.Nodes {
		if _, ok := centers[n.ID]; !ok {
			return nil, fmt.Errorf("dot layout returned no position for node %s", n.ID)
		}
	}
	return centers, nil
}

// buildDOT serializes the snapshot for the dot engine. Spacing options are
// converted from layout units to the inches Graphviz expects.
func buildDOT(s *graph.Snapshot, opts HierarchyOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.direction())
	fmt.Fprintf(&buf, "  ranksep=%.3f;\n", opts.rankSep()/pointsPerUnit)
	fmt.Fprintf(&buf, "  nodesep=%.3f;\n", opts.nodeSep()/pointsPerUnit)
	buf.WriteString("  node [shape=box, fixedsize=true];\n\n")

	for _, id := range s.SortedNodeIDs() {
		n, _ := s.Node(id)
		fmt.Fprintf(&buf, "  %q [width=%.3f, height=%.3f];\n",
			n.ID, n.Size.Width/pointsPerUnit, n.Size.Height/pointsPerUnit)
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// parsePlain reads Graphviz "plain" output:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	...
//
// Coordinates are box centers in inches with the origin bottom-left, so the
// y axis is flipped against the graph height on the way in.
func parsePlain(out string) (map[string]Position, error) {
	centers := make(map[string]Position)
	graphHeight := 0.0

	for _, line := range strings.Split(out, "\n") {
		fields, err := plainFields(line)
		if err != nil {
			return nil, fmt.Errorf("parse plain output: %w", err)
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed graph line: %q", line)
			}
			graphHeight, err = strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("graph height: %w", err)
			}
		case "node":
			if len(fields) < 4 {
				return nil, fmt.Errorf("malformed node line: %q", line)
			}
			x, errX := strconv.ParseFloat(fields[2], 64)
			y, errY := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("node coordinates in %q", line)
			}
			centers[fields[1]] = Position{
				X: x * pointsPerUnit,
				Y: (graphHeight - y) * pointsPerUnit,
			}
		}
	}
	return centers, nil
}

// plainFields splits a plain-format line on spaces, honoring the quoting
// Graphviz applies to names containing whitespace.
func plainFields(line string) ([]string, error) {
	var fields []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			end := 1
			for end < len(rest) && (rest[end] != '"' || rest[end-1] == '\\') {
				end++
			}
			if end >= len(rest) {
				return nil, fmt.Errorf("unterminated quote in %q", line)
			}
			unquoted, err := strconv.Unquote(rest[:end+1])
			if err != nil {
				unquoted = rest[1:end]
			}
			fields = append(fields, unquoted)
			rest = strings.TrimLeft(rest[end+1:], " ")
			continue
		}
		next := strings.IndexByte(rest, ' ')
		if next == -1 {
			fields = append(fields, rest)
			break
		}
		fields = append(fields, rest[:next])
		rest = strings.TrimLeft(rest[next+1:], " ")
	}
	return fields, nil
}
