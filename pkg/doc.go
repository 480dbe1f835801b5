// Package pkg provides the core libraries for procflow.
//
// # Overview
//
// procflow converts the state machines of 3GPP procedures between a JSON
// graph model and a flowchart text notation that engineers edit by hand.
// The pkg directory is organized into these areas:
//
//  1. [graph] - The procedure graph model and stored procedure documents
//  2. [notation] - Encoder, lenient and strict decoders, line checker,
//     formatter and line diff for the flowchart notation
//  3. [validate] - Schema and referential checks for graphs and raw JSON
//  4. [io] - JSON wire format for graphs and procedure documents
//  5. [store] - Procedure persistence (file and in-memory)
//  6. [pipeline] - The edit round trip (check, decode, validate, persist)
//  7. [render/nodelink] - Graphviz DOT export
//
// # Architecture
//
// The typical data flow through procflow:
//
//	graph JSON ([io])
//	       ↓
//	[notation.Encode] → notation text → hand edits
//	       ↓
//	[notation.Check] → [notation.Decode] → [validate.Graph]
//	       ↓
//	[store] (edited graph + commit)
//
// # Quick Start
//
// Encode a graph and read it back:
//
//	import (
//	    "github.com/matzehuels/procflow/pkg/io"
//	    "github.com/matzehuels/procflow/pkg/notation"
//	)
//
//	g, _ := io.ImportJSON("registration.json")
//	text, _ := notation.Encode(g, notation.DefaultOptions())
//	back := notation.Decode(text)
//
// Round-trip an edit against a store:
//
//	st, _ := store.NewFileStore("")
//	runner := pipeline.NewRunner(st, nil)
//	text, _, _ := runner.Load(ctx, "initial-registration", notation.DefaultOptions())
//	res, err := runner.Apply(ctx, "initial-registration", edited, pipeline.NewCommit("Fix trigger", ""))
//
// # Observability
//
// Conversion and pipeline stages report through the hook interfaces in
// [observability]. The default hooks are no-ops; the CLI installs hooks
// that log through charmbracelet/log.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/graph
// [notation]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/notation
// [validate]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/validate
// [io]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/pipeline
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/render/nodelink
// [observability]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/observability
//
// [notation.Encode]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/notation#Encode
// [notation.Check]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/notation#Check
// [notation.Decode]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/notation#Decode
// [validate.Graph]: https://pkg.go.dev/github.com/matzehuels/procflow/pkg/validate#Graph
package pkg
