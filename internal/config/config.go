package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the CLI and HTTP service.
type Config struct {
	Server ServerConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	MaxUploadMB int
	StaticDir   string
}

type LogConfig struct {
	Level  string
	Format string
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("STATEMENT_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("STATEMENT_PORT", 8080),
			MaxUploadMB: getEnvAsInt("STATEMENT_MAX_UPLOAD_MB", 32),
			StaticDir:   getEnv("STATEMENT_STATIC_DIR", ""),
		},
		Log: LogConfig{
			Level:  getEnv("STATEMENT_LOG_LEVEL", "info"),
			Format: getEnv("STATEMENT_LOG_FORMAT", "console"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("STATEMENT_PORT out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("STATEMENT_MAX_UPLOAD_MB must be positive, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
