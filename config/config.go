package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Conversation policies for SendMessage.
const (
	ConversationPolicyReuse     = "reuse"
	ConversationPolicyAlwaysNew = "always_new"
)

// Realtime delivery modes.
const (
	RealtimeModeLocal = "local"
	RealtimeModeRedis = "redis"
)

type Config struct {
	AppPort        string
	AppMode        string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	JWTSecret      string
	JWTExpiryHours int
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int

	ConversationPolicy string
	RealtimeMode       string
	MessageRateLimit   int
	AuthRateLimit      int

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PresignTTL time.Duration

	CORSOrigins []string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		AppMode:        getEnv("APP_MODE", "debug"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "mun_chits"),
		DBPort:         getEnv("DB_PORT", "5432"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		JWTExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24*15),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),

		ConversationPolicy: getEnvOneOf("CONVERSATION_POLICY", ConversationPolicyReuse, ConversationPolicyAlwaysNew),
		RealtimeMode:       getEnvOneOf("REALTIME_MODE", RealtimeModeLocal, RealtimeModeRedis),
		MessageRateLimit:   getEnvAsInt("MESSAGE_RATE_LIMIT", 30),
		AuthRateLimit:      getEnvAsInt("AUTH_RATE_LIMIT", 10),

		S3Region:     getEnv("S3_REGION", "us-east-1"),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PresignTTL: time.Duration(getEnvAsInt("S3_PRESIGN_TTL_MIN", 60)) * time.Minute,

		CORSOrigins: getEnvAsList("CORS_ORIGINS", "http://localhost:5173"),
	}
}

// IsProduction reports whether the service runs in release mode.
func (c *Config) IsProduction() bool {
	return c.AppMode == "release" || c.AppMode == "production"
}

// ArchiveEnabled reports whether committee archives can be exported.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvOneOf returns the value of key when it is one of allowed, otherwise
// the first allowed value.
func getEnvOneOf(key string, allowed ...string) string {
	value := getEnv(key, allowed[0])
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	log.Printf("Invalid %s=%q, falling back to %q", key, value, allowed[0])
	return allowed[0]
}
