package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	SeedData bool
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
	AutoMigrate bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig backs the login throttle. When Enabled is false the service
// runs without Redis and login attempts are not throttled.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	Algorithm    string
	AccessExpiry time.Duration
}

// SecurityConfig groups password hashing and login throttling settings.
type SecurityConfig struct {
	BcryptCost         int
	LoginMaxAttempts   int
	LoginLockoutWindow time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	TrustProxy        bool
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return loadFromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_DATA", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)

	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 10)
	v.SetDefault("LOGIN_LOCKOUT_WINDOW", "15m")

	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)
}

func loadFromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Older deployments used SECRET_KEY / ALGORITHM.
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		secret = v.GetString("SECRET_KEY")
	}
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	algorithm := v.GetString("JWT_ALGORITHM")
	if algorithm == "" {
		algorithm = v.GetString("ALGORITHM")
	}
	if algorithm == "" {
		algorithm = "HS256"
	}

	expireMinutes := v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	if expireMinutes <= 0 {
		expireMinutes = 30
	}

	lockoutWindow, err := time.ParseDuration(v.GetString("LOGIN_LOCKOUT_WINDOW"))
	if err != nil {
		lockoutWindow = 15 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
			SeedData: v.GetBool("SEED_DATA"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),

			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       secret,
			Algorithm:    algorithm,
			AccessExpiry: time.Duration(expireMinutes) * time.Minute,
		},
		Security: SecurityConfig{
			BcryptCost:         v.GetInt("BCRYPT_COST"),
			LoginMaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
			LoginLockoutWindow: lockoutWindow,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
			TrustProxy:        v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
	}

	return config, nil
}
