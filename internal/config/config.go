package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"docforensics/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	S3        S3Config
	Auth      AuthConfig
	Log       LogConfig
	Providers ProvidersConfig
	Limits    LimitsConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds result-cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// TTL returns the cache entry lifetime.
func (r *RedisConfig) TTL() time.Duration {
	if r.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(r.TTLHours) * time.Hour
}

// S3Config holds image-archive settings. An empty bucket disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// AuthConfig holds settings for the bearer-token middleware guarding
// credential management routes. Tokens are HS256 JWTs minted by the deployer.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LimitsConfig holds request limits.
type LimitsConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileBytes returns the upload size cap in bytes.
func (l *LimitsConfig) MaxFileBytes() int64 {
	return l.MaxFileSizeMB * 1024 * 1024
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds deployment-level settings for one AI provider. APIKey
// is the deployment default credential; user-supplied keys override it per
// request when well-formed.
type ProviderConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	// Endpoint is the Azure resource URL or the bedrock proxy URL; unused for
	// google and openai.
	Endpoint    string `mapstructure:"endpoint"`
	Deployment  string `mapstructure:"deployment"`
	APIVersion  string `mapstructure:"api_version"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the HTTP client timeout for the provider.
func (p *ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// ProvidersConfig holds per-provider settings.
type ProvidersConfig struct {
	Google  ProviderConfig `mapstructure:"google"`
	OpenAI  ProviderConfig `mapstructure:"openai"`
	Azure   ProviderConfig `mapstructure:"azure"`
	Bedrock ProviderConfig `mapstructure:"bedrock"`
}

// For returns the config block for a provider, or nil for unknown providers.
func (p *ProvidersConfig) For(provider domain.Provider) *ProviderConfig {
	switch provider {
	case domain.ProviderGoogle:
		return &p.Google
	case domain.ProviderOpenAI:
		return &p.OpenAI
	case domain.ProviderAzure:
		return &p.Azure
	case domain.ProviderBedrock:
		return &p.Bedrock
	default:
		return nil
	}
}

// Load reads configuration from environment variables with the DOCFORENSICS_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCFORENSICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docforensics")
	v.SetDefault("db.password", "docforensics_secret")
	v.SetDefault("db.name", "docforensics_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl_hours", 24)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "docforensics")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Limits defaults
	v.SetDefault("limits.max_file_size_mb", 20)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Provider defaults
	v.SetDefault("providers.google.api_key", "")
	v.SetDefault("providers.google.default_model", "gemini-2.5-flash")
	v.SetDefault("providers.google.timeout_secs", 120)
	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.default_model", "gpt-4o")
	v.SetDefault("providers.openai.timeout_secs", 120)
	v.SetDefault("providers.azure.api_key", "")
	v.SetDefault("providers.azure.default_model", "gpt-4o")
	v.SetDefault("providers.azure.endpoint", "")
	v.SetDefault("providers.azure.deployment", "")
	v.SetDefault("providers.azure.api_version", "")
	v.SetDefault("providers.azure.timeout_secs", 120)
	v.SetDefault("providers.bedrock.api_key", "")
	v.SetDefault("providers.bedrock.default_model", "gpt-4o")
	v.SetDefault("providers.bedrock.endpoint", "")
	v.SetDefault("providers.bedrock.timeout_secs", 180)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "DOCFORENSICS_SERVER_PORT",
		"server.read_timeout":             "DOCFORENSICS_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "DOCFORENSICS_SERVER_WRITE_TIMEOUT",
		"server.environment":              "DOCFORENSICS_SERVER_ENVIRONMENT",
		"db.host":                         "DOCFORENSICS_DB_HOST",
		"db.port":                         "DOCFORENSICS_DB_PORT",
		"db.user":                         "DOCFORENSICS_DB_USER",
		"db.password":                     "DOCFORENSICS_DB_PASSWORD",
		"db.name":                         "DOCFORENSICS_DB_NAME",
		"db.sslmode":                      "DOCFORENSICS_DB_SSLMODE",
		"db.max_open":                     "DOCFORENSICS_DB_MAX_OPEN",
		"db.max_idle":                     "DOCFORENSICS_DB_MAX_IDLE",
		"redis.url":                       "DOCFORENSICS_REDIS_URL",
		"redis.ttl_hours":                 "DOCFORENSICS_REDIS_TTL_HOURS",
		"s3.region":                       "DOCFORENSICS_S3_REGION",
		"s3.bucket":                       "DOCFORENSICS_S3_BUCKET",
		"s3.endpoint":                     "DOCFORENSICS_S3_ENDPOINT",
		"s3.access_key":                   "DOCFORENSICS_S3_ACCESS_KEY",
		"s3.secret_key":                   "DOCFORENSICS_S3_SECRET_KEY",
		"s3.presign_expiry":               "DOCFORENSICS_S3_PRESIGN_EXPIRY",
		"auth.secret":                     "DOCFORENSICS_AUTH_SECRET",
		"auth.issuer":                     "DOCFORENSICS_AUTH_ISSUER",
		"log.level":                       "DOCFORENSICS_LOG_LEVEL",
		"log.format":                      "DOCFORENSICS_LOG_FORMAT",
		"limits.max_file_size_mb":         "DOCFORENSICS_LIMITS_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":            "DOCFORENSICS_CORS_ALLOWED_ORIGINS",
		"providers.google.api_key":        "DOCFORENSICS_PROVIDERS_GOOGLE_API_KEY",
		"providers.google.default_model":  "DOCFORENSICS_PROVIDERS_GOOGLE_DEFAULT_MODEL",
		"providers.google.timeout_secs":   "DOCFORENSICS_PROVIDERS_GOOGLE_TIMEOUT_SECS",
		"providers.openai.api_key":        "DOCFORENSICS_PROVIDERS_OPENAI_API_KEY",
		"providers.openai.default_model":  "DOCFORENSICS_PROVIDERS_OPENAI_DEFAULT_MODEL",
		"providers.openai.timeout_secs":   "DOCFORENSICS_PROVIDERS_OPENAI_TIMEOUT_SECS",
		"providers.azure.api_key":         "DOCFORENSICS_PROVIDERS_AZURE_API_KEY",
		"providers.azure.default_model":   "DOCFORENSICS_PROVIDERS_AZURE_DEFAULT_MODEL",
		"providers.azure.endpoint":        "DOCFORENSICS_PROVIDERS_AZURE_ENDPOINT",
		"providers.azure.deployment":      "DOCFORENSICS_PROVIDERS_AZURE_DEPLOYMENT",
		"providers.azure.api_version":     "DOCFORENSICS_PROVIDERS_AZURE_API_VERSION",
		"providers.azure.timeout_secs":    "DOCFORENSICS_PROVIDERS_AZURE_TIMEOUT_SECS",
		"providers.bedrock.api_key":       "DOCFORENSICS_PROVIDERS_BEDROCK_API_KEY",
		"providers.bedrock.default_model": "DOCFORENSICS_PROVIDERS_BEDROCK_DEFAULT_MODEL",
		"providers.bedrock.endpoint":      "DOCFORENSICS_PROVIDERS_BEDROCK_ENDPOINT",
		"providers.bedrock.timeout_secs":  "DOCFORENSICS_PROVIDERS_BEDROCK_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCFORENSICS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCFORENSICS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Redis = RedisConfig{
		URL:      v.GetString("redis.url"),
		TTLHours: v.GetInt("redis.ttl_hours"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Limits = LimitsConfig{
		MaxFileSizeMB: v.GetInt64("limits.max_file_size_mb"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Providers = ProvidersConfig{
		Google: ProviderConfig{
			APIKey:       v.GetString("providers.google.api_key"),
			DefaultModel: v.GetString("providers.google.default_model"),
			TimeoutSecs:  v.GetInt("providers.google.timeout_secs"),
		},
		OpenAI: ProviderConfig{
			APIKey:       v.GetString("providers.openai.api_key"),
			DefaultModel: v.GetString("providers.openai.default_model"),
			TimeoutSecs:  v.GetInt("providers.openai.timeout_secs"),
		},
		Azure: ProviderConfig{
			APIKey:       v.GetString("providers.azure.api_key"),
			DefaultModel: v.GetString("providers.azure.default_model"),
			Endpoint:     v.GetString("providers.azure.endpoint"),
			Deployment:   v.GetString("providers.azure.deployment"),
			APIVersion:   v.GetString("providers.azure.api_version"),
			TimeoutSecs:  v.GetInt("providers.azure.timeout_secs"),
		},
		Bedrock: ProviderConfig{
			APIKey:       v.GetString("providers.bedrock.api_key"),
			DefaultModel: v.GetString("providers.bedrock.default_model"),
			Endpoint:     v.GetString("providers.bedrock.endpoint"),
			TimeoutSecs:  v.GetInt("providers.bedrock.timeout_secs"),
		},
	}

	return cfg, nil
}
