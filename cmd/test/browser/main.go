package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"go-placement-automation/internal/browser"
	"go-placement-automation/internal/config"
)

func main() {
	fmt.Println("🌐 Testing browser manager and portal login...")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Load()

	//create playwright manager (headful so the login can be watched)
	pm, err := browser.NewPlaywright(false)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()
	fmt.Println("✅ Playwright started")

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()
	fmt.Println("✅ Browser context created")

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	fmt.Println("🔑 Logging in to the portal...")
	if err := browser.Login(page, cfg.PortalURL, cfg.Username, cfg.Password); err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Println("✅ Login OK, year selector present")

	cookies, err := browser.CaptureSession(browserCtx)
	if err != nil {
		log.Fatalf("Failed to capture session: %v", err)
	}
	fmt.Printf("🍪 Captured %d session cookies\n", len(cookies))

	debugger := browser.NewScreenshotDebugger(logger)
	debugger.Capture(page, "login-smoke")
	fmt.Println("✨ Test complete!")
}
