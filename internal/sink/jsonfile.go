package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FileSink writes each batch as a timestamped JSON file. It backs the
// Guarded wrapper: batches the primary sink rejected land here instead of
// being discarded.
type FileSink struct {
	dir    string
	logger *slog.Logger
}

var _ Sink = (*FileSink)(nil)

func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	return &FileSink{dir: dir, logger: logger}
}

func (f *FileSink) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	return os.MkdirAll(f.dir, 0755)
}

func (f *FileSink) AppendRows(ctx context.Context, worksheet string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create fallback directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", worksheet, time.Now().Format("2006-01-02_15-04-05.000"))
	path := filepath.Join(f.dir, filename)

	data, err := json.MarshalIndent(rows, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}

	f.logger.Info("batch saved locally", "path", path, "rows", len(rows))
	return nil
}
