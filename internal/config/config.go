package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	App      AppConfig      `yaml:"app"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	CSV      CSVConfig      `yaml:"csv"`
	Names    NamesConfig    `yaml:"names"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AppConfig represents application identity configuration
type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
}

// StoreConfig selects the market data backend
type StoreConfig struct {
	// Backend is one of "postgres", "mongo", "csv".
	Backend string `yaml:"backend"`
}

// DatabaseConfig represents PostgreSQL configuration
type DatabaseConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	DBName         string        `yaml:"dbname"`
	SSLMode        string        `yaml:"sslmode"`
	MaxOpen        int           `yaml:"max_open"`
	MaxIdle        int           `yaml:"max_idle"`
	Timeout        time.Duration `yaml:"timeout"`
	MigrationsPath string        `yaml:"migrations_path"`
}

// MongoConfig represents document store configuration
type MongoConfig struct {
	URI     string        `yaml:"uri"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// CSVConfig represents file-backed store configuration
type CSVConfig struct {
	Dir string `yaml:"dir"`
}

// NamesConfig selects the index-name directory
type NamesConfig struct {
	// Source is one of "static", "postgres", "redis".
	Source string `yaml:"source"`
	// RedisKey overrides the hash key for the redis source.
	RedisKey string `yaml:"redis_key"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size"`
	MaxAgeDays int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Load loads configuration from a YAML file and applies environment
// variable overrides.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv(NewEnvManager(""))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the selected backends are known and configured.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "postgres", "mongo":
	case "csv":
		if c.CSV.Dir == "" {
			return fmt.Errorf("csv backend selected but csv.dir is empty")
		}
	case "":
		return fmt.Errorf("store.backend is required")
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Names.Source {
	case "", "static", "postgres", "redis":
	default:
		return fmt.Errorf("unknown names source %q", c.Names.Source)
	}
	return nil
}

func (c *Config) applyEnv(env *EnvManager) {
	c.Store.Backend = env.GetString("store_backend", c.Store.Backend)

	c.Database.Host = env.GetString("db_host", c.Database.Host)
	c.Database.Port = env.GetInt("db_port", c.Database.Port)
	c.Database.User = env.GetString("db_user", c.Database.User)
	c.Database.Password = env.GetString("db_password", c.Database.Password)
	c.Database.DBName = env.GetString("db_name", c.Database.DBName)
	c.Database.SSLMode = env.GetString("db_sslmode", c.Database.SSLMode)
	c.Database.Timeout = env.GetDuration("db_timeout", c.Database.Timeout)

	c.Mongo.URI = env.GetString("mongo_uri", c.Mongo.URI)
	c.Mongo.Timeout = env.GetDuration("mongo_timeout", c.Mongo.Timeout)

	c.Redis.Addr = env.GetString("redis_addr", c.Redis.Addr)
	c.Redis.Password = env.GetString("redis_password", c.Redis.Password)
	c.Redis.DB = env.GetInt("redis_db", c.Redis.DB)

	c.CSV.Dir = env.GetString("csv_dir", c.CSV.Dir)

	c.Logging.Level = env.GetString("log_level", c.Logging.Level)
	c.Logging.Format = env.GetString("log_format", c.Logging.Format)
}
