// Package pipeline runs the notation round trip against a procedure store.
//
// Loading fetches a procedure and encodes its current graph as notation
// text for editing. Applying takes edited text back through four stages:
//
//  1. Check: line-level syntax check of the text
//  2. Decode: text to graph
//  3. Validate: schema and referential integrity of the graph
//  4. Persist: store the graph as the new edited graph with a commit
//
// A failure in any stage stops the run before anything is persisted, so
// the previously accepted graph stays current. Errors from the check and
// validate stages carry every itemised message as details (see
// [errors.GetDetails]).
//
// # Usage
//
//	runner := pipeline.NewRunner(st, logger)
//	text, _, err := runner.Load(ctx, "initial-registration", notation.DefaultOptions())
//	...
//	res, err := runner.Apply(ctx, "initial-registration", edited, pipeline.NewCommit("Fix trigger", ""))
//	if err != nil {
//	    for _, msg := range errors.GetDetails(err) {
//	        fmt.Println(msg)
//	    }
//	}
//
// [errors.GetDetails]: github.com/matzehuels/procflow/pkg/errors.GetDetails
package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/notation"
)

// Result is the outcome of a successful [Runner.Apply].
type Result struct {
	Procedure *graph.Procedure // procedure as stored after the commit
	Graph     *graph.Graph     // decoded graph
	Commit    graph.Commit
	Report    notation.Report // what the decoder tolerated
	Stats     Stats
}

// Stats holds per-stage timings and graph size.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	CheckTime    time.Duration
	DecodeTime   time.Duration
	ValidateTime time.Duration
	PersistTime  time.Duration
}

// NewCommit returns a commit with a fresh ID stamped with the current time.
func NewCommit(title, message string) graph.Commit {
	return graph.Commit{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Time:    time.Now().UTC(),
	}
}
