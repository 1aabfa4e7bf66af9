package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Dynamo   DynamoConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Reminder ReminderConfig
	Demo     DemoConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Host            string `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigin   string `envconfig:"CORS_ALLOWED_ORIGIN" default:"http://localhost:3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// Store backends and team listing strategies
const (
	StoreBackendPostgres = "postgres"
	StoreBackendDynamoDB = "dynamodb"

	TeamListingIndex = "index"
	TeamListingScan  = "scan"
)

// StoreConfig selects the record/team store and bounds every call to it
type StoreConfig struct {
	Backend       string        `envconfig:"STORE_BACKEND" default:"postgres"`
	Timeout       time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	MeetingsTable string        `envconfig:"MEETINGS_TABLE" default:"meetings"`
	TeamsTable    string        `envconfig:"TEAMS_TABLE" default:"teams"`
	TeamListing   string        `envconfig:"TEAM_LISTING_STRATEGY" default:"index"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"meetingmind"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
}

// DynamoConfig holds DynamoDB configuration (used when STORE_BACKEND=dynamodb)
type DynamoConfig struct {
	Region           string `envconfig:"AWS_REGION" default:"us-east-1"`
	Endpoint         string `envconfig:"AWS_ENDPOINT_URL"`
	StatusIndex      string `envconfig:"DDB_STATUS_INDEX" default:"status-createdAt-index"`
	TeamIndex        string `envconfig:"DDB_TEAM_INDEX" default:"teamId-createdAt-index"`
	InviteCodeIndex  string `envconfig:"DDB_INVITE_CODE_INDEX" default:"inviteCode-index"`
	MembershipsTable string `envconfig:"DDB_MEMBERSHIPS_TABLE" default:"team-memberships"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Notification backends
const (
	NotifyBackendRedis = "redis"
	NotifyBackendLog   = "log"
)

// NotifyConfig holds notification channel configuration
type NotifyConfig struct {
	Backend string `envconfig:"NOTIFY_BACKEND" default:"redis"`
	Channel string `envconfig:"NOTIFY_CHANNEL" default:"meetingmind:reminders"`
}

// StorageConfig holds object storage configuration for audio uploads
type StorageConfig struct {
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"AUDIO_BUCKET" default:"meetingmind-audio"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	UploadExpiry    time.Duration `envconfig:"STORAGE_UPLOAD_EXPIRY" default:"1h"`
}

// JWTConfig holds bearer token verification configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"meetingmind"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
}

// ReminderConfig holds reminder job configuration
type ReminderConfig struct {
	LeadDays          int           `envconfig:"REMINDER_LEAD_DAYS" default:"2"`
	Dedupe            bool          `envconfig:"REMINDER_DEDUPE" default:"false"`
	DedupeTTL         time.Duration `envconfig:"REMINDER_DEDUPE_TTL" default:"48h"`
	PublishMaxElapsed time.Duration `envconfig:"REMINDER_PUBLISH_MAX_ELAPSED" default:"0s"`
	Timeout           time.Duration `envconfig:"REMINDER_TIMEOUT" default:"5m"`
}

// DemoConfig holds demo account configuration
type DemoConfig struct {
	UserID     string        `envconfig:"DEMO_USER_ID"`
	MeetingTTL time.Duration `envconfig:"DEMO_MEETING_TTL" default:"30m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Store,
		&config.Database,
		&config.Dynamo,
		&config.Redis,
		&config.Notify,
		&config.Storage,
		&config.JWT,
		&config.Reminder,
		&config.Demo,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendPostgres, StoreBackendDynamoDB:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendPostgres, StoreBackendDynamoDB, c.Store.Backend)
	}
	switch c.Store.TeamListing {
	case TeamListingIndex, TeamListingScan:
	default:
		return fmt.Errorf("TEAM_LISTING_STRATEGY must be %q or %q, got %q", TeamListingIndex, TeamListingScan, c.Store.TeamListing)
	}
	switch c.Notify.Backend {
	case NotifyBackendRedis, NotifyBackendLog:
	default:
		return fmt.Errorf("NOTIFY_BACKEND must be %q or %q, got %q", NotifyBackendRedis, NotifyBackendLog, c.Notify.Backend)
	}
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required in production")
	}
	if c.Reminder.LeadDays < 0 {
		return fmt.Errorf("REMINDER_LEAD_DAYS must not be negative")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
