package commands

import (
	"context"

	"github.com/insightdelivered/bank-statement-tool/internal/config"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the loaded config, or defaults when the root pre-run did not execute.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, MaxUploadMB: 32},
		Log:    config.LogConfig{Level: "info", Format: "console"},
	}
}
