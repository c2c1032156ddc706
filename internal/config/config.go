package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	DB       DBConfig
	Server   ServerConfig
	Redis    RedisConfig
	Fetch    FetchConfig
	Import   ImportConfig
	Telegram TelegramConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type LoggerConfig struct {
	Env   string
	Level string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	// Path is the database file for the sqlite driver.
	Path string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// RedisConfig configures the reconstructed-text cache. An empty address disables it.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type FetchConfig struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

type ImportConfig struct {
	// SourceDelay is the pause between catalog sources, BatchDelay between URLs of a list.
	SourceDelay  time.Duration
	BatchDelay   time.Duration
	TextCacheTTL time.Duration
}

// TelegramConfig enables the import summary notification when both Token and ChatID are set.
type TelegramConfig struct {
	Token       string
	ChatID      int64
	APIEndpoint string
}

func setDefaults() {
	viper.SetDefault("app.name", "exam-ingest")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("db.driver", DriverSQLite)
	viper.SetDefault("db.path", "exam-ingest.db")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "5m")
	viper.SetDefault("server.body_limit", 1<<20)
	viper.SetDefault("fetch.timeout", "60s")
	viper.SetDefault("fetch.max_bytes", 64<<20)
	viper.SetDefault("fetch.user_agent", "exam-ingest/1.0")
	viper.SetDefault("import.source_delay", "500ms")
	viper.SetDefault("import.batch_delay", "300ms")
	viper.SetDefault("import.text_cache_ttl", "24h")
	viper.SetDefault("telegram.api_endpoint", "https://api.telegram.org/bot%s/%s")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	logEnv := viper.GetString("logger.env")
	if logEnv == "" {
		logEnv = viper.GetString("app.env")
	}

	config := &Config{
		App: AppConfig{
			Name: viper.GetString("app.name"),
			Env:  viper.GetString("app.env"),
		},
		Logger: LoggerConfig{
			Env:   logEnv,
			Level: viper.GetString("logger.level"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(viper.GetString("db.driver")),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			Path:     viper.GetString("db.path"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Fetch: FetchConfig{
			Timeout:   viper.GetDuration("fetch.timeout"),
			MaxBytes:  viper.GetInt64("fetch.max_bytes"),
			UserAgent: viper.GetString("fetch.user_agent"),
		},
		Import: ImportConfig{
			SourceDelay:  viper.GetDuration("import.source_delay"),
			BatchDelay:   viper.GetDuration("import.batch_delay"),
			TextCacheTTL: viper.GetDuration("import.text_cache_ttl"),
		},
		Telegram: TelegramConfig{
			Token:       viper.GetString("telegram.token"),
			ChatID:      viper.GetInt64("telegram.chat_id"),
			APIEndpoint: viper.GetString("telegram.api_endpoint"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the services cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverOracle, DriverPostgres:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return fmt.Errorf("db.host and db.name are required for the %s driver", c.DB.Driver)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.Fetch.MaxBytes <= 0 {
		return errors.New("fetch.max_bytes must be positive")
	}
	return nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case DriverOracle:
		return go_ora.BuildUrl(c.DB.Host, c.DB.Port, c.DB.DBName, c.DB.User, c.DB.Password, nil)
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DB.User, c.DB.Password),
			Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
			Path:     "/" + c.DB.DBName,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	default:
		return c.DB.Path
	}
}

// TelegramEnabled reports whether import summaries should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}
