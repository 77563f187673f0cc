package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server `json:"server"`

	// MongoDB Configuration
	Mongo Mongo `json:"mongo"`

	// JWT Configuration (user tokens + short-lived agent tokens)
	Auth Auth `json:"auth"`

	// Realtime gateway tuning
	Gateway Gateway `json:"gateway"`

	// Media Configuration
	Media Media `json:"media"`

	// Logging Configuration
	Logging Logging `json:"logging"`
}

// Server contains HTTP server configuration
type Server struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// Mongo contains document store connection configuration
type Mongo struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// Auth contains the two credential schemes: user access tokens and
// the short-lived tokens issued to the automated agent.
type Auth struct {
	JWTSecret     string        `json:"-"`
	AgentTokenTTL time.Duration `json:"agent_token_ttl"`
	UserTokenTTL  time.Duration `json:"user_token_ttl"`
}

// Gateway contains realtime connection tuning
type Gateway struct {
	SendBufferSize    int           `json:"send_buffer_size"`    // per-connection outbound buffer
	PingInterval      time.Duration `json:"ping_interval"`       // websocket keepalive ping
	PongWait          time.Duration `json:"pong_wait"`           // read deadline extension on pong
	MaxUploadBytes    int64         `json:"max_upload_bytes"`    // hard cap for a reassembled file
	UploadIdleTimeout time.Duration `json:"upload_idle_timeout"` // reclaim sessions with no chunk activity
}

// Media contains media file serving configuration
type Media struct {
	Port          string `json:"port"`
	PublicBaseURL string `json:"public_base_url"` // prefix for generated media URLs
}

// Logging contains logging configuration
type Logging struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
}

// LoadConfig reads configuration from the environment. A .env file is
// loaded first when present so local development works out of the box.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: Server{
			Port:         getEnvOrDefault("SERVER_PORT", "4000"),
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Mongo: Mongo{
			URI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnvOrDefault("MONGO_DATABASE", "kisaanchat"),
		},
		Auth: Auth{
			JWTSecret:     getEnvOrDefault("JWT_SECRET", ""),
			AgentTokenTTL: getEnvDuration("AGENT_TOKEN_TTL", 5*time.Minute),
			UserTokenTTL:  getEnvDuration("USER_TOKEN_TTL", 24*time.Hour),
		},
		Gateway: Gateway{
			SendBufferSize:    getEnvInt("GATEWAY_SEND_BUFFER", 64),
			PingInterval:      getEnvDuration("GATEWAY_PING_INTERVAL", 25*time.Second),
			PongWait:          getEnvDuration("GATEWAY_PONG_WAIT", 60*time.Second),
			MaxUploadBytes:    int64(getEnvInt("GATEWAY_MAX_UPLOAD_BYTES", 50*1024*1024)),
			UploadIdleTimeout: getEnvDuration("GATEWAY_UPLOAD_IDLE_TIMEOUT", 2*time.Minute),
		},
		Media: Media{
			Port:          getEnvOrDefault("MEDIA_PORT", "8080"),
			PublicBaseURL: getEnvOrDefault("MEDIA_PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Logging: Logging{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
		},
	}
}

// MongoURI returns the connection string for the document store.
func (cfg *Config) MongoURI() string {
	if cfg.Mongo.URI != "" {
		return cfg.Mongo.URI
	}
	return fmt.Sprintf("mongodb://localhost:27017/%s", cfg.Mongo.Database)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
