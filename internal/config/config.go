// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	PortalURL string `yaml:"portal_url" env:"PORTAL_URL"`
	Username  string `yaml:"-" env:"TPUSERNAME"`
	Password  string `yaml:"-" env:"PASSWORD"`

	//Placement years to traverse, e.g. "2025-26"
	Years []string `yaml:"years"`

	//Google Sheets destination
	SheetKey        string `yaml:"-" env:"GOOGLE_SHEET_KEY"`
	CredentialsFile string `yaml:"credentials_file"`
	JobWorksheet    string `yaml:"job_worksheet"`
	PPOWorksheet    string `yaml:"ppo_worksheet"`

	//Optional archival sink (Postgres). Empty disables it.
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"`

	//Pipeline strategies
	Mode  string `yaml:"mode"`  // "sequential" | "pooled"
	Shape string `yaml:"shape"` // "consolidated" | "exploded"

	//Fraction of CPUs used as pool size in pooled mode
	WorkerFraction float64 `yaml:"worker_fraction"`

	//Settle delay (ms) after year selection / pagination, because the
	//listing table is repainted asynchronously after the container appears
	SettleDelayMs int `yaml:"settle_delay_ms"`

	Headless bool `yaml:"headless"`

	//Optional run-status notifications
	TelegramToken  string `yaml:"-" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"-" env:"TELEGRAM_CHAT_ID"`

	//Local fallback path for batches the primary sink rejected
	FallbackDir string `yaml:"fallback_dir"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{Headless: true}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if v := os.Getenv("PORTAL_URL"); v != "" {
		cfg.PortalURL = v
	}
	cfg.Username = os.Getenv("TPUSERNAME")
	cfg.Password = os.Getenv("PASSWORD")
	cfg.SheetKey = os.Getenv("GOOGLE_SHEET_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if len(cfg.Years) == 0 {
		cfg.Years = []string{"2025-26"}
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = "credentials.json"
	}
	if cfg.JobWorksheet == "" {
		cfg.JobWorksheet = "scraped_data_25"
	}
	if cfg.PPOWorksheet == "" {
		cfg.PPOWorksheet = "ppo_data_25"
	}
	if cfg.Mode == "" {
		cfg.Mode = "sequential"
	}
	if cfg.Shape == "" {
		cfg.Shape = "consolidated"
	}
	if cfg.WorkerFraction <= 0 || cfg.WorkerFraction > 1 {
		cfg.WorkerFraction = 0.75
	}
	if cfg.SettleDelayMs == 0 {
		cfg.SettleDelayMs = 2000
	}
	if cfg.FallbackDir == "" {
		cfg.FallbackDir = "logs"
	}

	//Validate required fields
	if cfg.PortalURL == "" {
		log.Fatal("PORTAL_URL is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		log.Fatal("TPUSERNAME and PASSWORD are required")
	}
	if cfg.Mode != "sequential" && cfg.Mode != "pooled" {
		log.Fatalf("Invalid mode %q: must be \"sequential\" or \"pooled\"", cfg.Mode)
	}
	if cfg.Shape != "consolidated" && cfg.Shape != "exploded" {
		log.Fatalf("Invalid shape %q: must be \"consolidated\" or \"exploded\"", cfg.Shape)
	}

	return cfg
}
