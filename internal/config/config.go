package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	SignalsBaseURL string
	RedisURL       string
	DatabaseURL    string

	CacheTTLSecs      int
	PollSecs          int
	ViewRetentionDays int

	HTTPPort int
	APIKey   string

	SSHPort        int
	SSHHostKeyPath string

	ChainRPCURL     string
	ContractAddress string
	ChainFrom       string

	TelegramBotToken string
}

func Load() *Config {
	cfg := &Config{
		SignalsBaseURL:   os.Getenv("SIGNALS_API_BASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		APIKey:           os.Getenv("API_KEY"),
		ChainRPCURL:      os.Getenv("CHAIN_RPC_URL"),
		ContractAddress:  os.Getenv("CONTRACT_ADDRESS"),
		ChainFrom:        os.Getenv("CHAIN_FROM_ADDRESS"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.SignalsBaseURL == "" {
		log.Println("Warning: SIGNALS_API_BASE_URL not set, using hosted default")
		cfg.SignalsBaseURL = "https://farcaster.maxxit.ai"
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, view tracking disabled")
	}
	if cfg.ContractAddress == "" {
		log.Println("Warning: CONTRACT_ADDRESS not set, chain features disabled")
	}

	cfg.CacheTTLSecs = 60
	if v := os.Getenv("SIGNALS_CACHE_TTL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	cfg.PollSecs = 60
	if v := os.Getenv("SIGNALS_POLL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollSecs = n
		}
	}

	cfg.ViewRetentionDays = 90
	if v := strings.TrimSpace(os.Getenv("VIEW_RETENTION_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ViewRetentionDays = n
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/signals_host_key"
	}

	return cfg
}
