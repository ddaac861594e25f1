// internal/workers/verdict/generate-verdict/config.go
package generateverdict

import (
	"greenbridge-workers/internal/common/config"
)

type Config struct {
	Gemini config.GeminiConfig
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Gemini: cfg.APIs.Gemini,
	}
}
