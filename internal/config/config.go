package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/crocobrasseur/website/internal/util"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig configures the persistence layer.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JWTConfig configures admin token signing.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// UploadsConfig configures the file upload pipeline.
type UploadsConfig struct {
	// Dir is the root directory uploaded assets are written under.
	Dir string `yaml:"dir"`
	// PublicBase is the URL prefix stored assets are served from.
	PublicBase string `yaml:"public_base"`
}

// SMTPConfig configures outbound notification mail. Empty host disables mail.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// NotifyTo receives reservation/contact/catering notifications.
	NotifyTo string `yaml:"notify_to"`
}

// LoggingConfig configures logrus output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File enables rotated file logging when set.
	File string `yaml:"file"`
}

// SeedConfig configures the initial super admin account.
type SeedConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	AdminEmail    string `yaml:"admin_email"`
}

// Load reads the config file at path (optional) and applies environment
// overrides on top. A missing file is not an error; env-only setups are
// supported.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errParse := yaml.Unmarshal(data, cfg); errParse != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, errParse)
			}
		case os.IsNotExist(errRead):
			// Fall through to env overrides.
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnv(cfg)

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: jwt secret is required")
	}
	return cfg, nil
}

func defaults() *Config {
	uploadDir := "frontend/assets"
	if writable := util.WritablePath(); writable != "" {
		uploadDir = writable
	}
	return &Config{
		Server:   ServerConfig{Addr: ":3000"},
		Database: DatabaseConfig{DSN: "file:data/croco.db"},
		Uploads:  UploadsConfig{Dir: uploadDir, PublicBase: "/assets"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// applyEnv overrides config values from environment variables.
func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}

	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Uploads.Dir, "UPLOAD_DIR")
	setString(&cfg.Uploads.PublicBase, "UPLOAD_PUBLIC_BASE")
	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Username, "SMTP_USERNAME")
	setString(&cfg.SMTP.Password, "SMTP_PASSWORD")
	setString(&cfg.SMTP.From, "SMTP_FROM")
	setString(&cfg.SMTP.NotifyTo, "SMTP_NOTIFY_TO")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.File, "LOG_FILE")
	setString(&cfg.Seed.AdminUsername, "SEED_ADMIN_USERNAME")
	setString(&cfg.Seed.AdminPassword, "SEED_ADMIN_PASSWORD")
	setString(&cfg.Seed.AdminEmail, "SEED_ADMIN_EMAIL")

	if port, ok := os.LookupEnv("SMTP_PORT"); ok {
		var parsed int
		if _, errScan := fmt.Sscanf(strings.TrimSpace(port), "%d", &parsed); errScan == nil && parsed > 0 {
			cfg.SMTP.Port = parsed
		}
	}
}
