// Package io provides JSON import and export for procedure graphs and
// procedure documents.
//
// # Graph Format
//
//	{
//	  "procedure_name": "Initial Registration",
//	  "direction": "LR",
//	  "nodes": [
//	    {"id": "5GMM-DEREGISTERED", "type": "state", "description": "UE is not registered",
//	     "section_reference": "5.5.1.2", "text_reference": "..."},
//	    {"id": "REGISTRATION REQUEST", "type": "event", "description": "UE sends request"}
//	  ],
//	  "edges": [
//	    {"from": "5GMM-DEREGISTERED", "to": "REGISTRATION REQUEST",
//	     "type": "trigger", "description": "UE initiates registration"}
//	  ]
//	}
//
// Optional node fields are entity and properties (a string map). Edges
// written by older tools may name their source with from_node; it is read
// as from.
//
// Reading does not validate. A document without a nodes or edges array
// decodes to a graph with a nil slice, which [validate.Graph] reports.
// Use [validate.JSON] on the raw bytes to also catch mistyped fields.
//
// # Procedure Format
//
// A procedure document wraps the extracted graph, the latest edited graph
// and the commit history:
//
//	{
//	  "id": "initial-registration",
//	  "name": "Initial Registration",
//	  "entity": "UE",
//	  "document": "TS 24.501",
//	  "section": "5.5.1.2",
//	  "original_graph": {...},
//	  "edited_graph": {...},
//	  "commits": [{"id": "...", "title": "...", "message": "...", "time": "2026-01-02T15:04:05Z"}]
//	}
//
// [validate.Graph]: github.com/matzehuels/procflow/pkg/validate.Graph
// [validate.JSON]: github.com/matzehuels/procflow/pkg/validate.JSON
package io
