package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Email provider names accepted in email.provider
const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
	ProviderGmail    = "gmail"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Security SecurityConfig `mapstructure:"security"`
	Email    EmailConfig    `mapstructure:"email"`
	Order    OrderConfig    `mapstructure:"order"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds MongoDB configuration
type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// RedisConfig holds Redis configuration. Redis is only dialed when rate limiting is enabled.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// RateLimitingConfig holds rate limiting configuration
type RateLimitingConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit"`
	DefaultWindow time.Duration `mapstructure:"default_window"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider selects the Notification Gateway: "log", "sendgrid", "smtp" or "gmail"
	Provider string `mapstructure:"provider"`
	// SenderAddress is the "From" address used by every provider
	SenderAddress string `mapstructure:"sender_address"`
	// SenderName is the display name for the sender
	SenderName string              `mapstructure:"sender_name"`
	SendGrid   SendGridEmailConfig `mapstructure:"sendgrid"`
	SMTP       SMTPEmailConfig     `mapstructure:"smtp"`
	Gmail      GmailEmailConfig    `mapstructure:"gmail"`
}

// SendGridEmailConfig holds SendGrid API configuration
type SendGridEmailConfig struct {
	APIKey string `mapstructure:"api_key"`
	// BaseURL overrides the API host, mostly for tests
	BaseURL string `mapstructure:"base_url"`
}

// SMTPEmailConfig holds SMTP relay configuration
type SMTPEmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// TLSPolicy is "mandatory", "opportunistic" or "none"
	TLSPolicy string        `mapstructure:"tls_policy"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// GmailEmailConfig holds Gmail API configuration
type GmailEmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// OrderConfig holds order confirmation settings
type OrderConfig struct {
	StoreName       string        `mapstructure:"store_name"`
	Subject         string        `mapstructure:"subject"`
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
}

// legacyEnv maps the bare environment names used by earlier deployments onto config keys.
var legacyEnv = map[string]string{
	"database.uri":           "MONGO_URI",
	"server.port":            "PORT",
	"email.sendgrid.api_key": "SENDGRID_API_KEY",
	"email.sender_address":   "SENDER_EMAIL",
	"email.smtp.username":    "EMAIL_USER",
	"email.smtp.password":    "EMAIL_PASS",
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadFile reads configuration from an explicit file path plus environment variables
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		// prefixed variables still win because BindEnv checks them first
		if err := v.BindEnv(key, "STOREFRONT_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required options are present for the selected components
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return errors.New("database.uri (MONGO_URI) is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return c.Email.Validate()
}

// Validate checks that the selected provider has its credentials
func (c EmailConfig) Validate() error {
	switch c.Provider {
	case ProviderLog:
		return nil
	case ProviderSendGrid:
		if c.SendGrid.APIKey == "" {
			return errors.New("email.sendgrid.api_key (SENDGRID_API_KEY) is required for the sendgrid provider")
		}
	case ProviderSMTP:
		if c.SMTP.Host == "" {
			return errors.New("email.smtp.host is required for the smtp provider")
		}
		if c.SMTP.Username == "" || c.SMTP.Password == "" {
			return errors.New("email.smtp.username and email.smtp.password (EMAIL_USER, EMAIL_PASS) are required for the smtp provider")
		}
		// the relay account doubles as the sender when none is configured
		return nil
	case ProviderGmail:
		if c.Gmail.CredentialsJSON == "" && c.Gmail.RefreshToken == "" {
			return errors.New("email.gmail.credentials_json or email.gmail.refresh_token is required for the gmail provider")
		}
	default:
		return fmt.Errorf("unknown email provider %q", c.Provider)
	}

	if c.SenderAddress == "" {
		return errors.New("email.sender_address (SENDER_EMAIL) is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "all_data")
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.query_timeout", "0s")
	v.SetDefault("database.max_pool_size", 100)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("security.rate_limiting.enabled", false)
	v.SetDefault("security.rate_limiting.default_limit", 100)
	v.SetDefault("security.rate_limiting.default_window", "1m")

	// Email defaults
	v.SetDefault("email.provider", ProviderLog)
	v.SetDefault("email.sender_address", "")
	v.SetDefault("email.sender_name", "Storefront")
	v.SetDefault("email.sendgrid.api_key", "")
	v.SetDefault("email.sendgrid.base_url", "")
	v.SetDefault("email.smtp.host", "smtp.gmail.com")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.tls_policy", "mandatory")
	v.SetDefault("email.smtp.timeout", "15s")
	v.SetDefault("email.gmail.credentials_json", "")
	v.SetDefault("email.gmail.client_id", "")
	v.SetDefault("email.gmail.client_secret", "")
	v.SetDefault("email.gmail.refresh_token", "")

	// Order defaults
	v.SetDefault("order.store_name", "Storefront")
	v.SetDefault("order.subject", "Order Confirmed")
	v.SetDefault("order.dispatch_timeout", "0s")
}
