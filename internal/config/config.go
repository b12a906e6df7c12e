package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"catalog/internal/auth"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DB_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// RabbitMQConfig holds catalog event broker settings. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	// Queue, when set, receives every catalog event and is consumed in-process.
	Queue string
}

// Config holds all configuration.
type Config struct {
	AppPort     string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	JWTSecret   string
	JWTTTL      time.Duration
	RabbitMQ    RabbitMQConfig
	SeedOnStart bool
	Policy      auth.Policy
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment variables")
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "catalog.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "change_me")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
	v.SetDefault("RABBITMQ_QUEUE", "")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("ROLES_CREATE_PRODUCT", auth.RoleAdmin)
	v.SetDefault("ROLES_UPDATE_PRODUCT", auth.RoleAdmin)
	v.SetDefault("ROLES_DELETE_PRODUCT", auth.RoleAdmin)
	v.SetDefault("ROLES_RESET_CATALOG", auth.RoleAdmin)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:     v.GetString("APP_PORT"),
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DATABASE_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
			Queue:    v.GetString("RABBITMQ_QUEUE"),
		},
		SeedOnStart: v.GetBool("SEED_ON_START"),
		Policy: auth.Policy{
			auth.OpCreateProduct: auth.ParseRoles(v.GetString("ROLES_CREATE_PRODUCT")),
			auth.OpUpdateProduct: auth.ParseRoles(v.GetString("ROLES_UPDATE_PRODUCT")),
			auth.OpDeleteProduct: auth.ParseRoles(v.GetString("ROLES_DELETE_PRODUCT")),
			auth.OpResetCatalog:  auth.ParseRoles(v.GetString("ROLES_RESET_CATALOG")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver != DriverMemory && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.Database.Driver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	return nil
}
