package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procflow/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Applied edit to registration (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports conversion and pipeline events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnEncode(nodes, edges, skipped int, d time.Duration) {
	h.logger.Debug("encoded graph", "nodes", nodes, "edges", edges, "skipped", skipped, "duration", d)
}

func (h *logHooks) OnDecode(nodes, edges, coerced int, d time.Duration) {
	h.logger.Debug("decoded notation", "nodes", nodes, "edges", edges, "coerced", coerced, "duration", d)
}

func (h *logHooks) OnCoercion(kind, raw string) {
	h.logger.Warn("unknown type, using default", "kind", kind, "value", raw)
}

func (h *logHooks) OnCheck(errorCount int, d time.Duration) {
	h.logger.Debug("checked notation", "errors", errorCount, "duration", d)
}

func (h *logHooks) OnValidate(errorCount int, d time.Duration) {
	h.logger.Debug("validated graph", "errors", errorCount, "duration", d)
}

func (h *logHooks) OnApplyStart(_ context.Context, id string) {
	h.logger.Debug("applying edit", "id", id)
}

func (h *logHooks) OnApplyComplete(_ context.Context, id string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("apply failed", "id", id, "duration", d, "err", err)
		return
	}
	h.logger.Debug("apply complete", "id", id, "duration", d)
}

func (h *logHooks) OnPersist(_ context.Context, id, commitID string) {
	h.logger.Debug("persisted procedure", "id", id, "commit", commitID)
}

var (
	_ observability.ConvertHooks  = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
)
