package browser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotDebugger captures full-page screenshots when a page traversal
// fails, so a broken run leaves evidence of what the portal looked like.
type ScreenshotDebugger struct {
	outputDir string
	logger    *slog.Logger
}

func NewScreenshotDebugger(logger *slog.Logger) *ScreenshotDebugger {
	dir := filepath.Join(".", "logs", "screenshots")
	os.MkdirAll(dir, 0755)
	return &ScreenshotDebugger{
		outputDir: dir,
		logger:    logger,
	}
}

func (s *ScreenshotDebugger) Capture(page playwright.Page, name string) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		s.logger.Warn("failed to capture screenshot", "name", name, "error", err)
		return err
	}

	s.logger.Info("screenshot saved", "path", path)
	return nil
}
