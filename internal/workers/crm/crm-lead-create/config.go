// internal/workers/crm/crm-lead-create/config.go
package crmleadcreate

import "time"

type Config struct {
	Enabled    bool
	APIKey     string
	OAuthToken string
	LeadSource string
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Enabled:    true,
		LeadSource: "GreenBridge Assessment",
		Timeout:    30 * time.Second,
	}
}
