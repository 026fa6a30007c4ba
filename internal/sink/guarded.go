package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Guarded wraps the primary sink with bounded retries and a local fallback.
// An extracted batch is never silently discarded: when the primary keeps
// failing, the batch is diverted to the fallback and the run continues, with
// the failure logged loudly for the operator.
type Guarded struct {
	primary  Sink
	fallback Sink
	retries  int
	backoff  time.Duration
	logger   *slog.Logger
}

var _ Sink = (*Guarded)(nil)

func NewGuarded(primary, fallback Sink, logger *slog.Logger) *Guarded {
	return &Guarded{
		primary:  primary,
		fallback: fallback,
		retries:  2,
		backoff:  3 * time.Second,
		logger:   logger,
	}
}

func (g *Guarded) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	var err error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(g.backoff)
		}
		if err = g.primary.EnsureWorksheet(ctx, worksheet, header); err == nil {
			return nil
		}
		g.logger.Warn("ensure worksheet failed", "worksheet", worksheet, "attempt", attempt+1, "error", err)
	}
	return fmt.Errorf("could not ensure worksheet %s: %w", worksheet, err)
}

func (g *Guarded) AppendRows(ctx context.Context, worksheet string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	var err error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(g.backoff)
		}
		if err = g.primary.AppendRows(ctx, worksheet, rows); err == nil {
			return nil
		}
		g.logger.Warn("append failed", "worksheet", worksheet, "attempt", attempt+1, "error", err)
	}

	g.logger.Error("primary sink gave up, diverting batch to local fallback",
		"worksheet", worksheet, "rows", len(rows), "error", err)
	if fbErr := g.fallback.AppendRows(ctx, worksheet, rows); fbErr != nil {
		return fmt.Errorf("primary sink failed (%v) and fallback failed: %w", err, fbErr)
	}
	return nil
}
