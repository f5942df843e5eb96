package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client node
type Config struct {
	Gateway   GatewayConfig
	Shell     ShellConfig
	Session   SessionConfig
	Cache     CacheConfig
	Tokens    TokensConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	DemoMode  bool
}

// GatewayConfig holds remote API configuration
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ShellConfig holds the local rendering-contract server configuration
type ShellConfig struct {
	Host string
	Port int
}

// SessionConfig holds view state machine tuning
type SessionConfig struct {
	// LoadingDelay keeps the loading indicator visible after a transition
	// settles so fast responses do not flicker.
	LoadingDelay time.Duration
}

// CacheConfig holds Redis response-cache configuration
type CacheConfig struct {
	URL     string
	Enabled bool
	TTL     time.Duration
}

// TokensConfig holds token store configuration
type TokensConfig struct {
	Path string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("RADIY")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.radiy")
	viper.AddConfigPath("/etc/radiy")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Gateway: GatewayConfig{
			BaseURL: getString("api_base_url", "http://127.0.0.1:8080/api/v1"),
			Timeout: getDuration("api_timeout", 15*time.Second),
		},
		Shell: ShellConfig{
			Host: getString("shell_host", "127.0.0.1"),
			Port: getInt("shell_port", 3000),
		},
		Session: SessionConfig{
			LoadingDelay: getDuration("loading_delay", 700*time.Millisecond),
		},
		Cache: CacheConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
			TTL:     getDuration("cache_ttl", 30*time.Second),
		},
		Tokens: TokensConfig{
			Path: getString("token_path", defaultTokenPath()),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", false),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "radiy-client"),
		},
		DemoMode: getBool("demo_mode", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("api_base_url", "http://127.0.0.1:8080/api/v1")
	viper.SetDefault("shell_host", "127.0.0.1")
	viper.SetDefault("shell_port", 3000)
	viper.SetDefault("loading_delay", "700ms")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("service_name", "radiy-client")
	viper.SetDefault("demo_mode", false)
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".radiy-tokens.json"
	}
	return home + "/.radiy/tokens.json"
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	if val := os.Getenv("RADIY_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("RADIY_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("RADIY_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if val := os.Getenv("RADIY_" + toEnvKey(key)); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	result := ""
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r == '-' || r == '_' {
			result += "_"
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !c.DemoMode && c.Gateway.BaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}
	if c.Shell.Port <= 0 || c.Shell.Port > 65535 {
		return fmt.Errorf("shell_port must be between 1 and 65535")
	}
	if c.Session.LoadingDelay < 0 {
		return fmt.Errorf("loading_delay must not be negative")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive when cache is enabled")
	}
	if c.Tokens.Path == "" {
		return fmt.Errorf("token_path is required")
	}
	return nil
}
