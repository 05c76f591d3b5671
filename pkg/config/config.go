package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for studyhall-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// AI model endpoint configuration
	AI AIConfig `yaml:"ai"`

	// Object storage configuration (MinIO)
	Storage StorageConfig `yaml:"storage"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether JWT tokens are validated.
	// Set to false for local development without the identity provider.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSEndpointsStr is a comma-separated list of issuer=jwks_url pairs.
	// Format: "issuer1=url1,issuer2=url2"
	JWKSEndpointsStr string `yaml:"jwks_endpoints" env:"JWKS_ENDPOINTS" env-default:"https://auth.studyhall.app=https://auth.studyhall.app/.well-known/jwks.json"`

	// JWKSEndpoints is the parsed map from JWKSEndpointsStr (not from config file).
	JWKSEndpoints map[string]string `yaml:"-"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"studyhall"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"studyhall_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`

	// PingTimeout bounds the health-check ping so a stalled pool surfaces
	// as a database timeout instead of hanging the request.
	PingTimeout time.Duration `yaml:"ping_timeout" env:"PGPING_TIMEOUT" env-default:"5s"`
}

// URL builds a PostgreSQL connection URL from the configuration.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// AIConfig holds the generative-AI endpoint configuration.
// The endpoint must be OpenAI-compatible; vision transcription requires the
// chat model to accept image content parts.
type AIConfig struct {
	BaseURL     string `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://api.openai.com/v1"`
	ChatModel   string `yaml:"chat_model" env:"AI_CHAT_MODEL" env-default:"gpt-4o"`
	VisionModel string `yaml:"vision_model" env:"AI_VISION_MODEL" env-default:"gpt-4o"`
	APIKey      string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
}

// StorageConfig holds MinIO object storage configuration.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"-" env:"MINIO_ACCESS_KEY"` // Secret - not in YAML
	SecretKey string `yaml:"-" env:"MINIO_SECRET_KEY"` // Secret - not in YAML
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"studyhall-notes"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`

	// MaxUploadBytes caps the size of uploaded note images.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// Load reads configuration from config.yaml (if present) and environment
// variables. Environment variables take precedence.
func Load(version string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Version = version

	endpoints, err := parseJWKSEndpoints(cfg.Auth.JWKSEndpointsStr)
	if err != nil {
		return nil, err
	}
	cfg.Auth.JWKSEndpoints = endpoints

	return cfg, nil
}

// parseJWKSEndpoints parses "issuer1=url1,issuer2=url2" into a map.
func parseJWKSEndpoints(s string) (map[string]string, error) {
	endpoints := make(map[string]string)
	if s == "" {
		return endpoints, nil
	}

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		issuer, url, found := strings.Cut(pair, "=")
		if !found || issuer == "" || url == "" {
			return nil, fmt.Errorf("invalid JWKS endpoint entry %q (want issuer=url)", pair)
		}
		endpoints[strings.TrimSpace(issuer)] = strings.TrimSpace(url)
	}

	return endpoints, nil
}
