package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "all_data", cfg.Database.Name)
	assert.Equal(t, ProviderLog, cfg.Email.Provider)
	assert.False(t, cfg.Security.RateLimiting.Enabled)
	assert.Equal(t, time.Minute, cfg.Security.RateLimiting.DefaultWindow)
	assert.Equal(t, "Order Confirmed", cfg.Order.Subject)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_LegacyEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("PORT", "8080")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("SENDER_EMAIL", "shop@example.com")
	t.Setenv("EMAIL_USER", "smtp-user")
	t.Setenv("EMAIL_PASS", "smtp-pass")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "SG.key", cfg.Email.SendGrid.APIKey)
	assert.Equal(t, "shop@example.com", cfg.Email.SenderAddress)
	assert.Equal(t, "smtp-user", cfg.Email.SMTP.Username)
	assert.Equal(t, "smtp-pass", cfg.Email.SMTP.Password)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONGO_URI", "mongodb://legacy:27017")
	t.Setenv("STOREFRONT_DATABASE_URI", "mongodb://prefixed:27017")
	t.Setenv("STOREFRONT_EMAIL_PROVIDER", "smtp")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://prefixed:27017", cfg.Database.URI)
	assert.Equal(t, ProviderSMTP, cfg.Email.Provider)
}

func TestLoad_SMTPFromLegacyEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("STOREFRONT_EMAIL_PROVIDER", "smtp")
	t.Setenv("EMAIL_USER", "shop@gmail.com")
	t.Setenv("EMAIL_PASS", "app-pass")

	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Email.SenderAddress)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
database:
  uri: mongodb://file:27017
  name: shop
security:
  rate_limiting:
    enabled: true
    default_limit: 10
email:
  provider: sendgrid
  sender_address: orders@example.com
order:
  store_name: Corner Shop
  dispatch_timeout: 5s
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.True(t, cfg.Security.RateLimiting.Enabled)
	assert.Equal(t, 10, cfg.Security.RateLimiting.DefaultLimit)
	assert.Equal(t, ProviderSendGrid, cfg.Email.Provider)
	assert.Equal(t, "Corner Shop", cfg.Order.StoreName)
	assert.Equal(t, 5*time.Second, cfg.Order.DispatchTimeout)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5000},
			Database: DatabaseConfig{URI: "mongodb://localhost:27017"},
			Email:    EmailConfig{Provider: ProviderLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"log provider", func(c *Config) {}, ""},
		{"missing mongo uri", func(c *Config) { c.Database.URI = "" }, "database.uri"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown provider", func(c *Config) { c.Email.Provider = "pigeon" }, "unknown email provider"},
		{"sendgrid without key", func(c *Config) {
			c.Email.Provider = ProviderSendGrid
			c.Email.SenderAddress = "shop@example.com"
		}, "api_key"},
		{"sendgrid without sender", func(c *Config) {
			c.Email.Provider = ProviderSendGrid
			c.Email.SendGrid.APIKey = "SG.key"
		}, "sender_address"},
		{"smtp complete", func(c *Config) {
			c.Email.Provider = ProviderSMTP
			c.Email.SenderAddress = "shop@example.com"
			c.Email.SMTP = SMTPEmailConfig{Host: "smtp.example.com", Username: "u", Password: "p"}
		}, ""},
		{"smtp without sender uses username", func(c *Config) {
			c.Email.Provider = ProviderSMTP
			c.Email.SMTP = SMTPEmailConfig{Host: "smtp.gmail.com", Username: "shop@gmail.com", Password: "app-pass"}
		}, ""},
		{"smtp without password", func(c *Config) {
			c.Email.Provider = ProviderSMTP
			c.Email.SenderAddress = "shop@example.com"
			c.Email.SMTP = SMTPEmailConfig{Host: "smtp.example.com", Username: "u"}
		}, "EMAIL_PASS"},
		{"gmail without credentials", func(c *Config) {
			c.Email.Provider = ProviderGmail
			c.Email.SenderAddress = "shop@example.com"
		}, "refresh_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:5000", ServerConfig{Host: "0.0.0.0", Port: 5000}.Addr())
	assert.Equal(t, "localhost:6379", RedisConfig{Host: "localhost", Port: 6379}.Addr())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
