package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"go-placement-automation/internal/config"
	"go-placement-automation/internal/extract"
	"go-placement-automation/internal/sink"
)

func main() {
	fmt.Println("📄 Testing persistence sink...")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()
	ctx := context.Background()

	if cfg.SheetKey == "" {
		log.Fatal("GOOGLE_SHEET_KEY is required for the sink smoke test")
	}

	s, err := sink.NewSheetsSink(ctx, cfg.CredentialsFile, cfg.SheetKey, logger)
	if err != nil {
		log.Fatalf("Failed to connect to Google Sheets: %v", err)
	}

	worksheet := "sink_smoke_test"
	if err := s.EnsureWorksheet(ctx, worksheet, extract.PPOHeader); err != nil {
		log.Fatalf("Failed to ensure worksheet: %v", err)
	}
	fmt.Printf("✅ Worksheet %q ready\n", worksheet)

	row := []any{"Smoke Test Co", 0, time.Now().Format(extract.TimestampLayout)}
	if err := s.AppendRows(ctx, worksheet, [][]any{row}); err != nil {
		log.Fatalf("Failed to append row: %v", err)
	}
	fmt.Println("✅ Appended one row")
	fmt.Println("✨ Test complete!")
}
