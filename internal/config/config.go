package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

type AI struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
}

type Image struct {
	BaseURL string
	APIKey  string
	Model   string
}

type Voice struct {
	BaseURL string
	APIKey  string
	GroupID string
}

type RateLimit struct {
	PerMinute int
	Burst     int
}

type Dispatch struct {
	Enabled   bool
	Spec      string
	BatchSize int
}

// Client configures the CLI subcommands that talk to a running server.
type Client struct {
	APIURL string
	Token  string
}

type Config struct {
	ServerPort        int
	LogLevel          string
	DB                DB
	MinIO             MinIO
	AI                AI
	Image             Image
	Voice             Voice
	UploadPostBaseURL string
	RateLimit         RateLimit
	Dispatch          Dispatch
	Client            Client
	AuthJWTSecret     string
	SecretsKey        string
	MaxUploadSize     int64
	UpstreamTimeout   time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "clover"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "clover-media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:  parseDuration(getEnv("MINIO_URL_EXPIRY", "1h"), time.Hour),
	}
}

func LoadAI() AI {
	return AI{
		BaseURL:     getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:      getEnv("AI_API_KEY", ""),
		Model:       getEnv("AI_MODEL", "gpt-4o-mini"),
		VisionModel: getEnv("AI_VISION_MODEL", "gpt-4o"),
	}
}

func LoadConfig() *Config {
	// a missing .env is fine, the environment is used as is
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		AI:         LoadAI(),
		Image: Image{
			BaseURL: getEnv("IMAGE_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("IMAGE_API_KEY", getEnv("AI_API_KEY", "")),
			Model:   getEnv("IMAGE_MODEL", "dall-e-3"),
		},
		Voice: Voice{
			BaseURL: getEnv("VOICE_BASE_URL", "https://api.minimax.io"),
			APIKey:  getEnv("VOICE_API_KEY", ""),
			GroupID: getEnv("VOICE_GROUP_ID", ""),
		},
		UploadPostBaseURL: getEnv("UPLOAD_POST_BASE_URL", "https://api.upload-post.com"),
		RateLimit: RateLimit{
			PerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 20),
			Burst:     getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
		Dispatch: Dispatch{
			Enabled:   getEnvBool("DISPATCH_ENABLED", true),
			Spec:      getEnv("DISPATCH_SPEC", "@every 1m"),
			BatchSize: getEnvAsInt("DISPATCH_BATCH_SIZE", 20),
		},
		Client: Client{
			APIURL: getEnv("CLOVER_API_URL", "http://localhost:8080"),
			Token:  getEnv("CLOVER_TOKEN", ""),
		},
		AuthJWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
		SecretsKey:      getEnv("SECRETS_KEY", ""),
		MaxUploadSize:   parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "52428800")),
		UpstreamTimeout: parseDuration(getEnv("UPSTREAM_TIMEOUT", "120s"), 120*time.Second),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 50 * 1024 * 1024
	}
	return size
}
