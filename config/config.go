package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ebaylookup/backend/internal/domain"
	"github.com/ebaylookup/backend/internal/infrastructure/ebay"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Ebay   EbayConfig
	Search SearchConfig
	Upload UploadConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EbayConfig holds listings site configuration
type EbayConfig struct {
	BaseURL   string         `mapstructure:"base_url"`
	Timeout   time.Duration  `mapstructure:"timeout"`
	UserAgent string         `mapstructure:"user_agent"` // empty: no User-Agent override
	Debug     bool           `mapstructure:"debug"`
	Selectors ebay.Selectors `mapstructure:"selectors"`
}

// SearchConfig holds search behaviour configuration
type SearchConfig struct {
	DefaultLimit       int  `mapstructure:"default_limit"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// UploadConfig holds image upload configuration
type UploadConfig struct {
	MaxBytes int64  `mapstructure:"max_bytes"`
	TempDir  string `mapstructure:"temp_dir"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ebay-lookup/")

	// EBAYLOOKUP_SERVER_PORT -> server.port
	v.SetEnvPrefix("EBAYLOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "45s") // must outlast ebay.timeout
	v.SetDefault("server.shutdown_timeout", "10s")

	// Listings site defaults
	v.SetDefault("ebay.base_url", "https://www.ebay.com")
	v.SetDefault("ebay.timeout", ebay.DefaultTimeout.String())
	v.SetDefault("ebay.user_agent", "")
	v.SetDefault("ebay.debug", false)
	v.SetDefault("ebay.selectors.items", ebay.DefaultSelectors.Items)
	v.SetDefault("ebay.selectors.title", ebay.DefaultSelectors.Title)
	v.SetDefault("ebay.selectors.price", ebay.DefaultSelectors.Price)
	v.SetDefault("ebay.selectors.link", ebay.DefaultSelectors.Link)

	// Search defaults
	v.SetDefault("search.default_limit", domain.DefaultLimit)
	v.SetDefault("search.enable_debug_logging", false)

	// Upload defaults
	v.SetDefault("upload.max_bytes", 10<<20) // 10 MiB
	v.SetDefault("upload.temp_dir", "")
}

// validate validates the configuration
func validate(config *Config) error {
	u, err := url.Parse(config.Ebay.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("eBay base URL must be an absolute http(s) URL, got: %q", config.Ebay.BaseURL)
	}

	if config.Ebay.Timeout <= 0 {
		return fmt.Errorf("eBay timeout must be positive, got: %s", config.Ebay.Timeout)
	}

	if err := config.Ebay.Selectors.Validate(); err != nil {
		return fmt.Errorf("eBay selectors: %w", err)
	}

	if err := domain.ValidateLimit(config.Search.DefaultLimit); err != nil {
		return fmt.Errorf("search default limit: %w", err)
	}

	if config.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive, got: %d", config.Upload.MaxBytes)
	}

	return nil
}
