package config

import (
	"LinkGate-Backend/internal/validator"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer   `yaml:"http_server"`
	URLShortener `yaml:"url_shortener"`
	Database     `yaml:"database"`
	Access       `yaml:"access"`
	Sweeper      `yaml:"sweeper"`
	Redis        `yaml:"redis"`
	Admin        `yaml:"admin"`
}

// HTTPServer holds HTTP listener settings.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://localhost:8080"`
}

// URLShortener holds service-specific configuration.
type URLShortener struct {
	AliasLength int `yaml:"alias_length" env:"ALIAS_LENGTH" env-default:"6"`
	// BaseURL prefixes generated short links. Empty means derive it from the request host.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// Database holds the relational store connection settings.
type Database struct {
	Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"linkgate"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	// InMemory replaces the database with the process-local store (useful for local runs).
	InMemory bool `yaml:"in_memory" env:"DB_IN_MEMORY" env-default:"false"`
}

// Access holds password-gate settings.
type Access struct {
	Secret     string        `yaml:"secret" env:"ACCESS_SECRET"`
	Issuer     string        `yaml:"issuer" env:"ACCESS_ISSUER" env-default:"LinkGate-Backend"`
	GrantTTL   time.Duration `yaml:"grant_ttl" env:"ACCESS_GRANT_TTL" env-default:"24h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"ACCESS_BCRYPT_COST" env-default:"12"`
}

// Sweeper holds reclamation schedule settings.
type Sweeper struct {
	Interval   time.Duration `yaml:"interval" env:"SWEEPER_INTERVAL" env-default:"1h"`
	Timeout    time.Duration `yaml:"timeout" env:"SWEEPER_TIMEOUT" env-default:"5m"`
	RunOnStart bool          `yaml:"run_on_start" env:"SWEEPER_RUN_ON_START" env-default:"true"`
	LockTTL    time.Duration `yaml:"lock_ttl" env:"SWEEPER_LOCK_TTL" env-default:"10m"`
}

// Redis is optional; when Addr is empty the sweeper runs without a shared lease.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Admin endpoints are disabled when Token is empty.
type Admin struct {
	Token string `yaml:"token" env:"ADMIN_TOKEN"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the config file at path, or the environment only when the file does not exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
	} else {
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения, которые не выражаются тегами cleanenv
func (c *Config) Validate() error {
	if c.URLShortener.AliasLength < 1 || c.URLShortener.AliasLength > validator.MaxSlugLength {
		return fmt.Errorf("url_shortener.alias_length must be between 1 and %d, got %d",
			validator.MaxSlugLength, c.URLShortener.AliasLength)
	}
	return nil
}
