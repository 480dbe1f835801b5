// Package notation converts procedure graphs to and from flowchart diagram
// notation, and checks notation text written by hand.
//
// # Overview
//
// The notation is a Mermaid-style flowchart with metadata comments:
//
//	flowchart LR
//	    %% Procedure: Initial Registration
//	    classDef state fill:#f9f,stroke:#333
//	    classDef event fill:#bbf,stroke:#333
//
//	    A["5GMM-DEREGISTERED"]:::state
//	    %% Type: state
//	    %% Description: UE is not registered
//	    B(("REGISTRATION REQUEST")):::event
//	    %% Type: event
//	    %% Description: UE sends REGISTRATION REQUEST
//	    A -->|"UE initiates registration"| B
//	    %% Type: trigger
//	    %% Description: UE initiates registration
//
// States use square brackets, events use double parentheses. Labels (A, B,
// ..., Z, AA, ...) are assigned by node position for one document only; the
// node ID inside the brackets carries identity.
//
// # Operations
//
//   - [Encode]: graph to text. Deterministic for a given graph and [Options].
//   - [Decode], [DecodeWithReport]: text to graph, best effort, never fails.
//   - [DecodeStrict]: like Decode but reports unrecognized lines.
//   - [Check]: exhaustive line-numbered syntax check for user-authored text.
//   - [Format], [Diff]: editor helpers.
//
// # Leniency
//
// The encoder and decoder share one policy: unresolved references are
// tolerated and reported, never fatal. The encoder skips edges whose
// endpoint has no node (logged and counted through observability hooks);
// the decoder keeps an edge whose label was never defined, using the raw
// label as the node ID, and lists it in [Report.UnresolvedLabels]. The
// validators are where such graphs are rejected.
//
// # Concurrency
//
// All functions are pure and hold no package-level mutable state, so they
// are safe to call concurrently on independent inputs.
package notation
