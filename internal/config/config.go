package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/andessoft/registro-api/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	CORS          CORSConfig          `mapstructure:"cors"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Registration  RegistrationConfig  `mapstructure:"registration"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Hostname     string        `mapstructure:"hostname"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Hostname        string        `mapstructure:"hostname"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// SecurityConfig holds authentication configuration. The JWT secret is shared
// with the identity service that issues the bearer tokens.
type SecurityConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// RateLimitConfig holds the public-endpoint rate limiter configuration
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	Requests  int           `mapstructure:"requests"`
	Window    time.Duration `mapstructure:"window"`
}

// RegistrationConfig holds token issuance settings
type RegistrationConfig struct {
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
	TokenTTLDays    int    `mapstructure:"token_ttl_days"`
}

// StorageConfig holds the object storage collaborator configuration
type StorageConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	PublicBaseURL string        `mapstructure:"public_base_url"`
	ServiceKey    string        `mapstructure:"service_key"`
	Bucket        string        `mapstructure:"bucket"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// NotificationsConfig holds SMTP settings and the per-entity admin mailboxes
type NotificationsConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	SMTPHost string            `mapstructure:"smtp_host"`
	SMTPPort int               `mapstructure:"smtp_port"`
	SMTPUser string            `mapstructure:"smtp_user"`
	SMTPPass string            `mapstructure:"smtp_pass"`
	From     string            `mapstructure:"from"`
	Buzones  map[string]string `mapstructure:"buzones"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default lookup order:
		// 1. ./repository/conf/deployment.yaml (production - relative to binary)
		// 2. ./cmd/server/repository/conf/deployment.yaml (development)
		v.SetConfigName("deployment")
		v.SetConfigType("yaml")
		v.AddConfigPath("./repository/conf")
		v.AddConfigPath("./cmd/server/repository/conf")
		v.AddConfigPath("../repository/conf")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("REGISTRO_MGT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.Hostname == "" {
		return fmt.Errorf("database hostname is required")
	}

	if config.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Security.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if config.Registration.FrontendBaseURL == "" {
		return fmt.Errorf("registration frontend base URL is required")
	}

	if config.Registration.TokenTTLDays <= 0 {
		config.Registration.TokenTTLDays = 3
	}

	if config.RateLimit.Enabled && config.RateLimit.RedisAddr == "" {
		return fmt.Errorf("redis address is required when rate limiting is enabled")
	}

	if config.Notifications.Enabled {
		if config.Notifications.SMTPHost == "" {
			return fmt.Errorf("smtp host is required when notifications are enabled")
		}
		for _, tipo := range []string{models.TipoEmpleado, models.TipoCliente, models.TipoProveedor} {
			if config.Notifications.Buzones[tipo] == "" {
				return fmt.Errorf("notification mailbox for %s is required", tipo)
			}
		}
	}

	return nil
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// SetGlobal sets the global configuration (for testing purposes)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

// GetDSN returns the database connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		d.User,
		d.Password,
		d.Hostname,
		d.Port,
		d.Database,
	)
}

// GetServerAddress returns the server address in host:port format
func (s *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}

// MailboxFor returns the admin mailbox notified for the given entity type
func (n *NotificationsConfig) MailboxFor(tipo string) string {
	return n.Buzones[tipo]
}
