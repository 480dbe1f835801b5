package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/procflow/pkg/graph"
)

// WriteJSON encodes a graph as indented JSON and writes it to w.
// Nil Nodes or Edges are written as null. The output can be re-imported
// with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	if g == nil {
		return fmt.Errorf("encode: nil graph")
	}
	return writeIndented(w, toGraphDoc(g))
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// WriteProcedure encodes a procedure document as indented JSON.
func WriteProcedure(p *graph.Procedure, w io.Writer) error {
	if p == nil {
		return fmt.Errorf("encode: nil procedure")
	}
	return writeIndented(w, toProcedureDoc(p))
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
