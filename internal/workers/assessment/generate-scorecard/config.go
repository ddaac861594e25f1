// internal/workers/assessment/generate-scorecard/config.go
package generatescorecard

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
