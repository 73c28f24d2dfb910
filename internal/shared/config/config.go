package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// Config holds application configuration.
type Config struct {
	Env                string        `koanf:"env"`
	Port               string        `koanf:"port"`
	CORSAllowOrigin    []string      `koanf:"cors_allow_origins"`
	LogLevel           string        `koanf:"log_level"`
	LogFormat          string        `koanf:"log_format"`
	MetricsEnabled     bool          `koanf:"metrics_enabled"`
	JitterSeed         uint64        `koanf:"jitter_seed"`
	ConsensusProviders []string      `koanf:"consensus_providers"`
	ConsensusTimeout   time.Duration `koanf:"consensus_timeout"`
	ReadTimeout        time.Duration `koanf:"read_timeout"`
	WriteTimeout       time.Duration `koanf:"write_timeout"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
}

// envKeys maps supported environment variables to config keys.
var envKeys = map[string]string{
	"ENV":                 "env",
	"PORT":                "port",
	"CORS_ALLOW_ORIGINS":  "cors_allow_origins",
	"LOG_LEVEL":           "log_level",
	"LOG_FORMAT":          "log_format",
	"METRICS_ENABLED":     "metrics_enabled",
	"JITTER_SEED":         "jitter_seed",
	"CONSENSUS_PROVIDERS": "consensus_providers",
	"CONSENSUS_TIMEOUT":   "consensus_timeout",
	"READ_TIMEOUT":        "read_timeout",
	"WRITE_TIMEOUT":       "write_timeout",
	"SHUTDOWN_TIMEOUT":    "shutdown_timeout",
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Env:              "dev",
		Port:             "8000",
		CORSAllowOrigin:  []string{"https://dmappex.com", "http://localhost:3000", "*"},
		LogLevel:         "info",
		LogFormat:        "json",
		MetricsEnabled:   true,
		ConsensusTimeout: 8 * time.Second,
		ReadTimeout:      15 * time.Second,
		WriteTimeout:     30 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Load layers defaults, an optional YAML file and environment variables.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values the server cannot start with.
func (c Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimPrefix(c.Port, ":"))
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.ConsensusTimeout <= 0 {
		return fmt.Errorf("consensus_timeout must be positive, got %s", c.ConsensusTimeout)
	}
	return nil
}

func (c *Config) normalize() {
	c.Env = normalizeEnv(c.Env)
	c.Port = strings.TrimSpace(c.Port)
	c.CORSAllowOrigin = splitAndTrim(c.CORSAllowOrigin)
	c.ConsensusProviders = splitAndTrim(c.ConsensusProviders)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// envTransform keeps known variables only; empty values fall back to lower layers.
func envTransform(key, value string) (string, interface{}) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return envKeys[key], value
}

func findConfigFile() string {
	if path := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// splitAndTrim flattens comma-joined entries and drops blanks.
func splitAndTrim(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, p := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
