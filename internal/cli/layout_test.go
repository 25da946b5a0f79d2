package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mlorenzen/decklog/internal/server"
	aerr "github.com/mlorenzen/decklog/pkg/errors"
	"github.com/mlorenzen/decklog/pkg/layout"
)

const testSnapshotJSON = `{
  "nodes": [
    {"id": "d1", "type": "decision", "label": "Use Postgres"},
    {"id": "e1", "type": "entity", "label": "PostgreSQL"}
  ],
  "edges": [
    {"id": "x", "source": "d1", "target": "e1", "relationship": "INVOLVES"}
  ]
}`

func TestRunLayout_WritesRenderContract(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(input, []byte(testSnapshotJSON), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel))
	if err := runLayout(ctx, input, "", layout.AlgorithmCluster, "", true, 0, 0); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "graph.layout.json"))
	if err != nil {
		t.Fatalf("expected default output file: %v", err)
	}
	var contract server.RenderGraph
	if err := json.Unmarshal(data, &contract); err != nil {
		t.Fatal(err)
	}
	if contract.Algorithm != layout.AlgorithmCluster {
		t.Errorf("algorithm = %q, want cluster", contract.Algorithm)
	}
	if len(contract.Nodes) != 2 || len(contract.Edges) != 1 {
		t.Errorf("contract = %d nodes / %d edges, want 2/1", len(contract.Nodes), len(contract.Edges))
	}
	if contract.Nodes[0].Width == 0 {
		t.Error("contract nodes missing bounding boxes")
	}
}

func TestRunLayout_MissingInput(t *testing.T) {
	ctx := withLogger(context.Background(), newLogger(io.Discard, log.InfoLevel))
	err := runLayout(ctx, "/does/not/exist.json", "", "", "", true, 0, 0)
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if !aerr.Is(err, aerr.ErrCodeSnapshotNotFound) {
		t.Errorf("err = %v, want SNAPSHOT_NOT_FOUND", err)
	}
}
