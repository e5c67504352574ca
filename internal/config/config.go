package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Email    EmailConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // в секундах
	WriteTimeout   int      `mapstructure:"write_timeout"` // в секундах
	UploadDir      string   `mapstructure:"upload_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт) для всех режимов
	Addrs []string `mapstructure:"addrs"`

	// Addr используется, если Addrs пустой
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: имя мастера (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// AuthConfig содержит настройки аутентификации
type AuthConfig struct {
	// LoginRateLimit - попыток входа с одного IP за LoginRateWindow секунд
	LoginRateLimit  int `mapstructure:"login_rate_limit"`
	LoginRateWindow int `mapstructure:"login_rate_window"`
}

// CacheConfig содержит настройки кеширования
type CacheConfig struct {
	LeaderboardTTL int `mapstructure:"leaderboard_ttl"` // в секундах
}

// EmailConfig содержит настройки отправки писем через Resend
type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
	AppURL  string `mapstructure:"app_url"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// MigrationURL формирует URL для golang-migrate
func (d *DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// LeaderboardTTLDuration возвращает TTL кеша лидерборда
func (c CacheConfig) LeaderboardTTLDuration() time.Duration {
	return time.Duration(c.LeaderboardTTL) * time.Second
}

// LoginRateWindowDuration возвращает окно лимита попыток входа
func (a AuthConfig) LoginRateWindowDuration() time.Duration {
	return time.Duration(a.LoginRateWindow) * time.Second
}

// Path возвращает путь к файлу конфигурации из CONFIG_PATH или путь по умолчанию
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}

// Load загружает конфигурацию из файла
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Отдельный экземпляр Viper без глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.upload_dir", "uploads")
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")
	vip.SetDefault("jwt.expirationHrs", 672)
	vip.SetDefault("auth.login_rate_limit", 5)
	vip.SetDefault("auth.login_rate_window", 60)
	vip.SetDefault("cache.leaderboard_ttl", 60)
	vip.SetDefault("email.from", "Quiz <no-reply@quiz.local>")

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.upload_dir", "UPLOAD_DIR")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("auth.login_rate_limit", "AUTH_LOGIN_RATE_LIMIT")
	vip.BindEnv("cache.leaderboard_ttl", "CACHE_LEADERBOARD_TTL")

	vip.BindEnv("email.enabled", "EMAIL_ENABLED")
	vip.BindEnv("email.api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("email.app_url", "APP_URL")

	// 3. Файл конфигурации не обязателен, переменные окружения уже привязаны
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Viper объединит значения из файла и привязанных env vars
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s (mode: %s)", cfg.Redis.Addr, cfg.Redis.Mode)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Email Enabled: %t", cfg.Email.Enabled)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Email.Enabled && c.Email.APIKey == "" {
		return fmt.Errorf("email is enabled but RESEND_API_KEY is empty")
	}
	return nil
}
