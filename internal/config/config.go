package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/the247care/clinic-api/internal/email"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Outbox   OutboxConfig
	Email    email.Config
	Admin    AdminConfig
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	TimeoutSeconds int     `mapstructure:"timeoutSeconds"`
	RateLimitRPS   float64 `mapstructure:"rateLimitRPS"`
	RateLimitBurst int     `mapstructure:"rateLimitBurst"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

func (c JWTConfig) RefreshExpiry() time.Duration {
	return time.Duration(c.RefreshExpiryHours) * time.Hour
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type OutboxConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
	RetainFor    time.Duration `mapstructure:"retain_for"`
}

// AdminConfig seeds the default admin login at startup.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// envOverrides are secrets that should come from the environment rather than
// the yaml file. A missing variable leaves the file value in place.
type envOverrides struct {
	DBPassword       string `envconfig:"DB_PASSWORD"`
	JWTSecret        string `envconfig:"JWT_SECRET"`
	JWTRefreshSecret string `envconfig:"JWT_REFRESH_SECRET"`
	RedisURL         string `envconfig:"REDIS_URL"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
	AdminPassword    string `envconfig:"ADMIN_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; absence is the normal case outside local dev.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}
	applyOverrides(&config, env)

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeoutSeconds", 30)
	viper.SetDefault("server.rateLimitRPS", 50)
	viper.SetDefault("server.rateLimitBurst", 100)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.name", "clinic")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("jwt.refresh_expiry_hours", 168)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.min_idle_conns", 2)

	viper.SetDefault("outbox.poll_interval", 5*time.Second)
	viper.SetDefault("outbox.batch_size", 50)
	viper.SetDefault("outbox.max_retries", 3)
	viper.SetDefault("outbox.retry_delay", time.Second)
	viper.SetDefault("outbox.retain_for", 24*time.Hour)

	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.port", 587)

	viper.SetDefault("admin.email", "admin@the247care.com")
	viper.SetDefault("admin.password", "admin123")
}

func applyOverrides(cfg *Config, env envOverrides) {
	if env.DBPassword != "" {
		cfg.Database.Password = env.DBPassword
	}
	if env.JWTSecret != "" {
		cfg.JWT.Secret = env.JWTSecret
	}
	if env.JWTRefreshSecret != "" {
		cfg.JWT.RefreshSecret = env.JWTRefreshSecret
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
	}
	if env.SMTPPassword != "" {
		cfg.Email.Password = env.SMTPPassword
	}
	if env.AdminPassword != "" {
		cfg.Admin.Password = env.AdminPassword
	}
}
