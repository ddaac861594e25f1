// internal/workers/assessment/estimate-carbon/config.go
package estimatecarbon

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
