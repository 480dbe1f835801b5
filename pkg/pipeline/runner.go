package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/notation"
	"github.com/matzehuels/procflow/pkg/observability"
	"github.com/matzehuels/procflow/pkg/store"
	"github.com/matzehuels/procflow/pkg/validate"
)

// Runner executes the round trip against a store.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner; concurrent applies to the same procedure are serialised only as
// far as the store serialises them.
type Runner struct {
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. If st is nil, an empty MemoryStore is used.
// If logger is nil, log.Default() is used.
func NewRunner(st store.Store, logger *log.Logger) *Runner {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: st, Logger: logger}
}

// Load fetches procedure id and encodes its current graph.
// The procedure name is used as the graph's procedure name when the graph
// has none.
func (r *Runner) Load(ctx context.Context, id string, opts notation.Options) (string, *graph.Procedure, error) {
	p, err := r.Store.Fetch(ctx, id)
	if err != nil {
		return "", nil, err
	}
	g := p.Current().Clone()
	if g == nil {
		return "", nil, errors.New(errors.ErrCodeInvalidGraph, "procedure %s has no graph", id)
	}
	if g.ProcedureName == "" {
		g.ProcedureName = p.Name
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	text, err := notation.Encode(g, opts)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", id, err)
	}
	r.Logger.Debug("loaded procedure", "id", id, "nodes", len(g.Nodes), "edges", len(g.Edges), "commits", len(p.Commits))
	return text, p, nil
}

// Apply checks, decodes, validates and persists edited notation text as
// the new graph of procedure id. Nothing is persisted unless every stage
// succeeds. A commit without ID or time is completed like [NewCommit].
func (r *Runner) Apply(ctx context.Context, id, text string, commit graph.Commit) (res *Result, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnApplyStart(ctx, id)
	defer func() { hooks.OnApplyComplete(ctx, id, time.Since(start), err) }()

	if err := errors.ValidateProcedureID(id); err != nil {
		return nil, err
	}
	if commit.ID == "" {
		fresh := NewCommit(commit.Title, commit.Message)
		commit.ID = fresh.ID
		if commit.Time.IsZero() {
			commit.Time = fresh.Time
		}
	} else if commit.Time.IsZero() {
		commit.Time = time.Now().UTC()
	}
	res = &Result{Commit: commit}

	// Stage 1: Check
	stageStart := time.Now()
	if checked := notation.Check(text); !checked.Valid {
		r.Logger.Warn("syntax check failed", "id", id, "errors", len(checked.Errors))
		return nil, checked.Err()
	}
	res.Stats.CheckTime = time.Since(stageStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Decode
	stageStart = time.Now()
	g, report := notation.DecodeWithReport(text)
	res.Graph, res.Report = g, report
	res.Stats.DecodeTime = time.Since(stageStart)
	res.Stats.NodeCount, res.Stats.EdgeCount = len(g.Nodes), len(g.Edges)
	r.Logger.Debug("decoded notation",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"coercions", report.Coercions,
		"duration", res.Stats.DecodeTime)

	// Stage 3: Validate
	stageStart = time.Now()
	if validated := validate.Graph(g); !validated.Valid {
		r.Logger.Warn("graph validation failed", "id", id, "errors", len(validated.Errors))
		return nil, validated.Err()
	}
	res.Stats.ValidateTime = time.Since(stageStart)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Persist
	stageStart = time.Now()
	p, err := r.Store.Persist(ctx, id, g, commit)
	if err != nil {
		return nil, fmt.Errorf("persist %s: %w", id, err)
	}
	res.Procedure = p
	res.Stats.PersistTime = time.Since(stageStart)
	hooks.OnPersist(ctx, id, commit.ID)

	r.Logger.Info("applied edit",
		"id", id,
		"commit", commit.ID,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", time.Since(start))
	return res, nil
}
