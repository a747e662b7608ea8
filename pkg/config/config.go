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
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Storage       StorageConfig
	Assembly      AssemblyAIConfig
	Groq          GroqConfig
	OpenAI        OpenAIConfig
	Transcription TranscriptionConfig
	Recording     RecordingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"projectflow"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. When disabled the completion lock
// falls back to process memory.
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
}

// StorageConfig holds storage configuration for the recording archive
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"recordings"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// AssemblyAIConfig holds speech-to-text credentials
type AssemblyAIConfig struct {
	APIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL string `envconfig:"ASSEMBLYAI_BASE_URL"`
}

// GroqConfig configures the primary chat-completion provider
type GroqConfig struct {
	APIKey  string        `envconfig:"GROQ_API_KEY"`
	BaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model   string        `envconfig:"GROQ_MODEL" default:"mixtral-8x7b-32768"`
	Timeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"30s"`
}

// OpenAIConfig configures the secondary chat-completion provider
type OpenAIConfig struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY"`
	BaseURL string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
}

// TranscriptionConfig bounds status polling
type TranscriptionConfig struct {
	InitialDelay      time.Duration `envconfig:"POLL_INITIAL_DELAY" default:"3s"`
	InitialInterval   time.Duration `envconfig:"POLL_INITIAL_INTERVAL" default:"5s"`
	MaxInterval       time.Duration `envconfig:"POLL_MAX_INTERVAL" default:"30s"`
	Multiplier        float64       `envconfig:"POLL_MULTIPLIER" default:"1.5"`
	MaxWait           time.Duration `envconfig:"POLL_MAX_WAIT" default:"2h"`
	SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	SweepWorkers      int           `envconfig:"SWEEP_WORKERS" default:"2"`
	SweepBatchSize    int           `envconfig:"SWEEP_BATCH_SIZE" default:"50"`
	CompletionLockTTL time.Duration `envconfig:"COMPLETION_LOCK_TTL" default:"5m"`
}

// RecordingConfig bounds captured and uploaded audio
type RecordingConfig struct {
	MaxDuration time.Duration `envconfig:"RECORDING_MAX_DURATION" default:"2h"`
	MaxBytes    int64         `envconfig:"RECORDING_MAX_BYTES" default:"524288000"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration. Missing provider keys are not errors:
// they are reported per request so the rest of the API stays usable.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Transcription.InitialInterval <= 0 || c.Transcription.MaxInterval < c.Transcription.InitialInterval {
		return fmt.Errorf("POLL_MAX_INTERVAL must be >= POLL_INITIAL_INTERVAL > 0")
	}
	if c.Transcription.Multiplier < 1 {
		return fmt.Errorf("POLL_MULTIPLIER must be >= 1")
	}
	if c.Transcription.MaxWait <= 0 {
		return fmt.Errorf("POLL_MAX_WAIT must be positive")
	}
	if c.Recording.MaxDuration <= 0 || c.Recording.MaxBytes <= 0 {
		return fmt.Errorf("RECORDING_MAX_DURATION and RECORDING_MAX_BYTES must be positive")
	}
	return nil
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

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Configured reports whether speech-to-text credentials are present
func (c AssemblyAIConfig) Configured() bool {
	return c.APIKey != ""
}
