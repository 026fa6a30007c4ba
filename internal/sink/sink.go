package sink

import (
	"context"
	"errors"
)

// Sink is the append-only row store the pipeline flushes into, keyed by
// worksheet name. Implementations must treat rows as opaque flat tuples.
type Sink interface {
	// EnsureWorksheet creates the worksheet with the given header row if it
	// does not exist yet. Idempotent.
	EnsureWorksheet(ctx context.Context, worksheet string, header []string) error
	// AppendRows appends one batch of rows to the named worksheet.
	AppendRows(ctx context.Context, worksheet string, rows [][]any) error
}

// Multi fans every write out to all sinks, e.g. Google Sheets plus a
// Postgres archive. All sinks are attempted even when an earlier one fails;
// the joined error carries every failure.
type Multi []Sink

var _ Sink = Multi(nil)

func (m Multi) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.EnsureWorksheet(ctx, worksheet, header))
	}
	return errors.Join(errs...)
}

func (m Multi) AppendRows(ctx context.Context, worksheet string, rows [][]any) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.AppendRows(ctx, worksheet, rows))
	}
	return errors.Join(errs...)
}
