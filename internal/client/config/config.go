package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/factkeeper/internal/timex"
)

// Config holds runtime settings for factctl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the admin gRPC endpoint.
//   - Password: admin password; prompted for when empty.
//   - Timeout: per-command deadline.
type Config struct {
	ServerEndpointAddr string        `env:"FACTCTL_SERVER"`
	Password           string        `env:"FACTCTL_PASSWORD"`
	Timeout            time.Duration `env:"FACTCTL_TIMEOUT"`
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	Timeout            *timex.Duration `json:"timeout"`
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Timeout = 10 * time.Second
}

// Load applies defaults, then the JSON file at path (if any), then the
// environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}
