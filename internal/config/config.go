package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cache    CacheConfig
	Tasks    TasksConfig
	Kafka    KafkaConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Host        string        `env:"REDIS_HOST" env-required:"true"`
	Port        int           `env:"REDIS_PORT" env-default:"6379"`
	Password    string        `env:"REDIS_PASSWORD" env-default:""`
	DB          int           `env:"REDIS_DB" env-default:"0"`
	PingTimeout time.Duration `env:"REDIS_PING_TIMEOUT" env-default:"10s"`
}

type JWTConfig struct {
	Issuer         string        `env:"JWT_ISSUER" env-default:"go-task-api"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"30m"`
}

type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL" env-default:"30s"`
}

type TasksConfig struct {
	DefaultPageSize    int `env:"TASKS_DEFAULT_PAGE_SIZE" env-default:"100"`
	MaxPageSize        int `env:"TASKS_MAX_PAGE_SIZE" env-default:"1000"`
	TopPriorityDefault int `env:"TASKS_TOP_PRIORITY_DEFAULT" env-default:"5"`
}

// KafkaConfig is optional: an empty broker disables audit events.
type KafkaConfig struct {
	Broker string `env:"KAFKA_BROKER" env-default:""`
	Topic  string `env:"KAFKA_TOPIC" env-default:"task-events"`
}
