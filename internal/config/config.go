package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"
)

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Completion CompletionConfig `json:"completion"`
	Deployment DeploymentConfig `json:"deployment"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

// CompletionConfig configures the text-completion backend.
type CompletionConfig struct {
	Endpoint  string `json:"endpoint"`
	APIKey    string `json:"api_key"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	TimeoutS  int    `json:"timeout_s"`
}

// DeploymentConfig configures the hosting backend.
type DeploymentConfig struct {
	Endpoint string `json:"endpoint"`
	Token    string `json:"token"`
	TeamID   string `json:"team_id,omitempty"`
}

// Timeout returns the completion request timeout.
func (c CompletionConfig) Timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutS) * time.Second
}

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Load reads a JSON config file and substitutes environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Substitute ${VAR} and ${VAR:default} with environment values.
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	var cfg Config
	if err := json.Unmarshal([]byte(resolved), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns a configuration built purely from the environment,
// used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, LogLevel: "info"},
		Completion: CompletionConfig{
			Endpoint:  "https://api.anthropic.com/v1",
			APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
			Model:     "claude-3-5-haiku-20241022",
			MaxTokens: 4096,
		},
		Deployment: DeploymentConfig{
			Endpoint: "https://api.vercel.com",
			Token:    os.Getenv("VERCEL_TOKEN"),
		},
	}
}
