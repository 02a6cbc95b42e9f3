package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Best-effort: local development keeps settings in a .env file.
	_ = godotenv.Load()
	ServiceConfig = Load()
}

var ServiceConfig *Config

type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Consul      ConsulConfig
	RateLimit   RateLimitConfig
	Idempotency IdempotencyConfig
	Bulk        BulkConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ServiceName    string
	ServiceID      string
	Version        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	LogDir         string
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type ConsulConfig struct {
	Address        string
	ServiceAddress string
	Enabled        bool
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type IdempotencyConfig struct {
	TTL time.Duration
}

type BulkConfig struct {
	MaxBatchSize int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           getEnv("HOST", "0.0.0.0"),
			Port:           getEnv("PORT", "8000"),
			ServiceName:    getEnv("SERVICE_NAME", "question-bank-service"),
			ServiceID:      getEnv("SERVICE_NAME", "question-bank-service") + "-" + getEnv("HOSTNAME", "local"),
			Version:        getEnv("SERVICE_VERSION", "2.0.0"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			LogDir:         getEnv("LOG_DIR", "/var/log"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "question_bank"),
			PoolSize: getEnvAsUint64("MONGODB_POOL_SIZE", 100),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "question-bank.events"),
		},
		Consul: ConsulConfig{
			Address:        getEnv("CONSUL_ADDR", "localhost:8500"),
			ServiceAddress: getEnv("SERVICE_ADDRESS", "localhost"),
			Enabled:        getEnvAsBool("CONSUL_ENABLED", false),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		},
		Idempotency: IdempotencyConfig{
			TTL: getEnvAsDuration("IDEMPOTENCY_TTL", 1*time.Hour),
		},
		Bulk: BulkConfig{
			MaxBatchSize: getEnvAsInt("MAX_BULK_SIZE", 10000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieve int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			log.Printf("error retrieve uint64 env var %s: %s", key, err)
			return defaultValue
		}
		return uintVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieve duration env var %s: %s", key, err)
			return defaultValue
		}
		return duration
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("error retrieve bool env var %s: %s", key, err)
			return defaultValue
		}
		return boolVal
	}
	return defaultValue
}
