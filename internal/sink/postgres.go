package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSink archives every flushed row alongside the spreadsheet, so the
// raw extraction history survives manual sheet edits.
type PostgresSink struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

var _ Sink = (*PostgresSink)(nil)

func NewPostgresSink(ctx context.Context, connString string, logger *slog.Logger) (*PostgresSink, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PostgresSink{db: pool, logger: logger}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSink) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scrape_rows (
			id BIGSERIAL PRIMARY KEY,
			worksheet TEXT NOT NULL,
			row JSONB NOT NULL,
			appended_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create scrape_rows table: %w", err)
	}
	return nil
}

// EnsureWorksheet is satisfied by the migration; worksheets are just a key
// column here.
func (s *PostgresSink) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	return nil
}

func (s *PostgresSink) AppendRows(ctx context.Context, worksheet string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode row for %s: %w", worksheet, err)
		}
		batch.Queue("INSERT INTO scrape_rows (worksheet, row) VALUES ($1, $2)", worksheet, data)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()
	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to archive rows for %s: %w", worksheet, err)
		}
	}

	return nil
}

func (s *PostgresSink) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
