package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	API        APIConfig        `mapstructure:"api"`
	List       ListConfig       `mapstructure:"list"`
	ImageProxy ImageProxyConfig `mapstructure:"image_proxy"`
	Log        LogConfig        `mapstructure:"log"`
	Session    SessionConfig    `mapstructure:"session"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Env         string   `mapstructure:"env"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	RateLimit   int      `mapstructure:"rate_limit"`
}

// APIConfig points at the Broker Adda backend
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListConfig holds list page defaults
type ListConfig struct {
	PageSize           int           `mapstructure:"page_size"`
	SearchDebounce     time.Duration `mapstructure:"search_debounce"`
	LeadSearchDebounce time.Duration `mapstructure:"lead_search_debounce"`
}

// ImageProxyConfig holds image proxy settings
type ImageProxyConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	AllowedHosts []string      `mapstructure:"allowed_hosts"`
	MaxBytes     int64         `mapstructure:"max_bytes"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LogConfig selects the logger backend and level
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// SessionConfig holds admin session settings
type SessionConfig struct {
	CookieName   string `mapstructure:"cookie_name"`
	CookieMaxAge int    `mapstructure:"cookie_max_age"`
	TokenFile    string `mapstructure:"token_file"`
}

// DefaultUserAgent is sent by the image proxy; some CDNs refuse unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultAllowedHosts are image hosts the dashboard loads directly.
var DefaultAllowedHosts = []string{
	"localhost:5000/uploads",
	"www.w3schools.com",
	"static.vecteezy.com",
	"img.freepik.com",
	"images.unsplash.com",
}

// Load reads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("ADDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables used by hosting platforms
	_ = v.BindEnv("server.port", "ADDA_SERVER_PORT", "PORT")
	_ = v.BindEnv("api.base_url", "ADDA_API_BASE_URL", "ADDA_API_URL", "NEXT_PUBLIC_API_URL")
	_ = v.BindEnv("server.cors_origins", "ADDA_SERVER_CORS_ORIGINS", "CORS_ALLOWED_ORIGINS")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.Server.CORSOrigins = splitList(config.Server.CORSOrigins)
	config.ImageProxy.AllowedHosts = splitList(config.ImageProxy.AllowedHosts)

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("list.page_size", 10)
	v.SetDefault("list.search_debounce", 500*time.Millisecond)
	v.SetDefault("list.lead_search_debounce", 800*time.Millisecond)
	v.SetDefault("image_proxy.user_agent", DefaultUserAgent)
	v.SetDefault("image_proxy.allowed_hosts", DefaultAllowedHosts)
	v.SetDefault("image_proxy.max_bytes", 10<<20)
	v.SetDefault("image_proxy.timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", "slog")
	v.SetDefault("session.cookie_name", "adminToken")
	v.SetDefault("session.cookie_max_age", 7*24*3600)
	v.SetDefault("session.token_file", "~/.adda-admin/token")
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("ADDA_API_URL is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive")
	}
	if c.List.SearchDebounce <= 0 || c.List.LeadSearchDebounce <= 0 {
		return fmt.Errorf("list search debounce intervals must be positive")
	}
	if c.ImageProxy.MaxBytes <= 0 {
		return fmt.Errorf("image_proxy.max_bytes must be positive")
	}
	return nil
}
