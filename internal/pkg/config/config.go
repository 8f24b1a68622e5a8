package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET,  required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=30m"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	Workers    int           `env:"INGEST_WORKERS, default=4"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	GenAI GenAIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hydrai"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type GenAIConfig struct {
	URL     string        `env:"GENAI_URL"`
	APIKey  string        `env:"GENAI_API_KEY"`
	Timeout time.Duration `env:"GENAI_TIMEOUT, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
// Configuration is immutable after this point; nothing reads the environment
// at request time.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
