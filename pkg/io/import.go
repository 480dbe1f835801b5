package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/procflow/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON only fails on malformed JSON; it performs no schema checks.
// Missing "nodes" or "edges" arrays leave the corresponding slice nil so
// that validation can report them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data graphDoc
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromGraphDoc(&data), nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadProcedure decodes a procedure document from r.
func ReadProcedure(r io.Reader) (*graph.Procedure, error) {
	var data procedureDoc
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromProcedureDoc(data), nil
}
