// internal/workers/onboarding/classify-business/config.go
package classifybusiness

import "time"

// Classification is pure; the struct exists for consistency across workers.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
