package main

import (
	"fmt"

	"go-placement-automation/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Portal URL: %s\n", cfg.PortalURL)
	fmt.Printf("   Years: %v\n", cfg.Years)
	fmt.Printf("   Mode: %s, Shape: %s\n", cfg.Mode, cfg.Shape)
	fmt.Printf("   Job Worksheet: %s\n", cfg.JobWorksheet)
	fmt.Printf("   PPO Worksheet: %s\n", cfg.PPOWorksheet)
	fmt.Printf("   Settle Delay: %dms\n", cfg.SettleDelayMs)
	fmt.Printf("   Worker Fraction: %.2f\n", cfg.WorkerFraction)
}
