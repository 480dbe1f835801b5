// Package store persists procedure documents.
//
// A [Store] fetches a procedure by ID and persists accepted edits as a new
// edited graph plus a commit. [FileStore] keeps one JSON document per
// procedure in a directory; [MemoryStore] is for tests and one-shot runs.
// Both hand out deep copies, so callers may modify returned procedures
// freely.
package store

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
)

// ErrNotFound is returned (wrapped) when a procedure does not exist.
var ErrNotFound = stderrors.New("procedure not found")

// Store is the persistence boundary of the round-trip pipeline.
type Store interface {
	// Fetch returns the procedure with the given ID.
	Fetch(ctx context.Context, id string) (*graph.Procedure, error)
	// Persist stores g as the edited graph of procedure id and appends
	// commit to its history. A procedure that does not exist yet is created
	// with g as its original graph. It returns the updated procedure.
	Persist(ctx context.Context, id string, g *graph.Graph, commit graph.Commit) (*graph.Procedure, error)
	// Put creates or replaces a whole procedure document.
	Put(ctx context.Context, p *graph.Procedure) error
	// List returns all procedures ordered by ID.
	List(ctx context.Context) ([]*graph.Procedure, error)
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrCodeProcedureNotFound, ErrNotFound, "procedure %s", id)
}

// applyCommit records g and commit on p, creating p when it is nil.
func applyCommit(p *graph.Procedure, id string, g *graph.Graph, commit graph.Commit) *graph.Procedure {
	if p == nil {
		p = &graph.Procedure{ID: id, Name: g.ProcedureName, Original: g.Clone()}
	} else {
		p.Edited = g.Clone()
	}
	p.Commits = append(p.Commits, commit)
	return p
}
