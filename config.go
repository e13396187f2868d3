package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Values load in three layers:
// built-in defaults, then an optional YAML file, then environment
// variables, each overriding the one before it.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DatabaseDSN string `yaml:"database_dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
	JWTSecret   string `yaml:"jwt_secret"`

	Operator struct {
		Username     string `yaml:"username"`
		PasswordHash string `yaml:"password_hash"`
	} `yaml:"operator"`

	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	ScoresInterval      time.Duration `yaml:"scores_interval"`
	PropsInterval       time.Duration `yaml:"props_interval"`
	CatalogRefresh      time.Duration `yaml:"catalog_refresh"`
	HTTPTimeout         time.Duration `yaml:"http_timeout"`

	SoccerCompetitions []string `yaml:"soccer_competitions"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	RedisAddr string `yaml:"redis_addr"`
	WatchDir  string `yaml:"watch_dir"`
	UploadDir string `yaml:"upload_dir"`
}

func defaultConfig() *Config {
	cfg := &Config{
		ListenAddr:          ":8081",
		AutoMigrate:         true,
		ConfidenceThreshold: 0.75,
		ScoresInterval:      60 * time.Second,
		PropsInterval:       20 * time.Second,
		CatalogRefresh:      24 * time.Hour,
		HTTPTimeout:         15 * time.Second,
		UploadDir:           "uploads",
	}
	cfg.Operator.Username = "operator"
	return cfg
}

// LoadConfig builds the runtime config. A missing file is not an error;
// defaults plus environment cover the minimal deployment.
func LoadConfig(path string) (*Config, error) {
	loadDotEnv()
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-insecure-secret-change" // development fallback
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		cfg.AutoMigrate = !(lv == "false" || lv == "0" || lv == "no")
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("OPERATOR_USERNAME"); v != "" {
		cfg.Operator.Username = v
	}
	if v := os.Getenv("OPERATOR_PASSWORD_HASH"); v != "" {
		cfg.Operator.PasswordHash = v
	}
	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("WATCH_DIR"); v != "" {
		cfg.WatchDir = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
